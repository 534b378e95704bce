package memory

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

var _ repository.BookRepository = (*bookRepo)(nil)

type bookRepo struct{ v *view }

func (r *bookRepo) Create(_ context.Context, book *entity.Book) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.books[book.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, b := range st.books {
			if b.ISBN == book.ISBN {
				return domain.ErrDuplicate
			}
		}
		st.books[book.ID] = copyBook(book)
		st.bookOrder = append(st.bookOrder, book.ID)
		return nil
	})
}

func (r *bookRepo) GetByID(_ context.Context, id string) (*entity.Book, error) {
	var out *entity.Book
	err := r.v.do(func(st *state) error {
		out = copyBook(st.books[id])
		return nil
	})
	return out, err
}

func (r *bookRepo) GetByISBN(_ context.Context, isbn string) (*entity.Book, error) {
	var out *entity.Book
	err := r.v.do(func(st *state) error {
		for _, b := range st.books {
			if b.ISBN == isbn {
				out = copyBook(b)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *bookRepo) Search(_ context.Context, f repository.BookFilter) ([]*entity.Book, error) {
	m := newMatcher()
	out := make([]*entity.Book, 0)
	err := r.v.do(func(st *state) error {
		for _, id := range st.bookOrder {
			b := st.books[id]
			if !m.matchBook(b, f) {
				continue
			}
			out = append(out, copyBook(b))
		}
		return nil
	})
	return out, err
}

func (r *bookRepo) Update(_ context.Context, book *entity.Book) error {
	return r.v.do(func(st *state) error {
		cur, ok := st.books[book.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Title = book.Title
		cur.Author = book.Author
		cur.Publisher = book.Publisher
		cur.RetailPrice = book.RetailPrice
		cur.UpdatedAt = book.UpdatedAt
		return nil
	})
}

func (r *bookRepo) AdjustStock(_ context.Context, id string, delta int) (*entity.Book, error) {
	var out *entity.Book
	err := r.v.do(func(st *state) error {
		cur, ok := st.books[id]
		if !ok {
			return domain.ErrNotFound
		}
		if cur.StockQuantity+delta < 0 {
			return domain.ErrInsufficientStock
		}
		cur.StockQuantity += delta
		out = copyBook(cur)
		return nil
	})
	return out, err
}

func (r *bookRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.books[id]; !ok {
			return domain.ErrNotFound
		}
		for _, s := range st.sales {
			if s.BookID == id {
				return domain.ErrReferenced
			}
		}
		delete(st.books, id)
		st.bookOrder = removeID(st.bookOrder, id)
		return nil
	})
}

// matcher compara subcadenas sin distinguir mayúsculas (case folding Unicode).
// cases.Caser no es seguro entre goroutines: uno por búsqueda.
type matcher struct{ fold cases.Caser }

func newMatcher() *matcher { return &matcher{fold: cases.Fold()} }

func (m *matcher) contains(s, sub string) bool {
	if sub == "" {
		return true
	}
	return strings.Contains(m.fold.String(s), m.fold.String(sub))
}

func (m *matcher) matchBook(b *entity.Book, f repository.BookFilter) bool {
	if !m.contains(b.ISBN, f.ISBN) || !m.contains(b.Title, f.Title) ||
		!m.contains(b.Author, f.Author) || !m.contains(b.Publisher, f.Publisher) {
		return false
	}
	if f.Query == "" {
		return true
	}
	return m.contains(b.ISBN, f.Query) || m.contains(b.Title, f.Query) ||
		m.contains(b.Author, f.Query) || m.contains(b.Publisher, f.Query)
}

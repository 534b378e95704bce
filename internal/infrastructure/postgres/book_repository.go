package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

var _ repository.BookRepository = (*BookRepo)(nil)

// BookRepo implementación del puerto BookRepository sobre PostgreSQL (usable con pool o tx).
type BookRepo struct {
	q Querier
}

// NewBookRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewBookRepository(q Querier) *BookRepo {
	return &BookRepo{q: q}
}

const bookColumns = `id, isbn, title, author, publisher, retail_price, stock_quantity, created_at, updated_at`

func scanBook(row pgx.Row) (*entity.Book, error) {
	var b entity.Book
	err := row.Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Publisher, &b.RetailPrice, &b.StockQuantity, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste un libro nuevo. ISBN duplicado → ErrDuplicate.
func (r *BookRepo) Create(ctx context.Context, b *entity.Book) error {
	query := `
		INSERT INTO books (` + bookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.ISBN, b.Title, b.Author, b.Publisher, b.RetailPrice, b.StockQuantity, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert book", err)
	}
	return nil
}

// GetByID obtiene un libro por ID; (nil, nil) si no existe.
func (r *BookRepo) GetByID(ctx context.Context, id string) (*entity.Book, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get book", `SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
}

// GetByISBN obtiene un libro por ISBN; (nil, nil) si no existe.
func (r *BookRepo) GetByISBN(ctx context.Context, isbn string) (*entity.Book, error) {
	return r.getOne(ctx, "get book by isbn", `SELECT `+bookColumns+` FROM books WHERE isbn = $1`, isbn)
}

func (r *BookRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Book, error) {
	b, err := scanBook(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

// Search filtra con ILIKE: columnas con AND, Query con OR sobre las cuatro.
func (r *BookRepo) Search(ctx context.Context, f repository.BookFilter) ([]*entity.Book, error) {
	var (
		conds []string
		args  []any
	)
	like := func(s string) string {
		args = append(args, "%"+escapeLike(s)+"%")
		return fmt.Sprintf("$%d", len(args))
	}
	for _, c := range []struct{ col, val string }{
		{"isbn", f.ISBN}, {"title", f.Title}, {"author", f.Author}, {"publisher", f.Publisher},
	} {
		if c.val != "" {
			conds = append(conds, fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, c.col, like(c.val)))
		}
	}
	if f.Query != "" {
		p := like(f.Query)
		conds = append(conds, fmt.Sprintf(
			`(isbn ILIKE %[1]s ESCAPE '\' OR title ILIKE %[1]s ESCAPE '\' OR author ILIKE %[1]s ESCAPE '\' OR publisher ILIKE %[1]s ESCAPE '\')`, p))
	}

	query := `SELECT ` + bookColumns + ` FROM books`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Update persiste los campos editables. No toca isbn ni stock_quantity.
func (r *BookRepo) Update(ctx context.Context, b *entity.Book) error {
	if !isUUID(b.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE books SET title = $2, author = $3, publisher = $4, retail_price = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, b.ID, b.Title, b.Author, b.Publisher, b.RetailPrice, b.UpdatedAt)
	if err != nil {
		return mapWriteError("update book", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock suma delta con un UPDATE condicionado: la verificación y el descuento son una
// sola sentencia, así dos ventas concurrentes no pueden dejar el stock negativo.
func (r *BookRepo) AdjustStock(ctx context.Context, id string, delta int) (*entity.Book, error) {
	if !isUUID(id) {
		return nil, domain.ErrNotFound
	}
	query := `
		UPDATE books SET stock_quantity = stock_quantity + $2
		WHERE id = $1 AND stock_quantity + $2 >= 0
		RETURNING ` + bookColumns
	b, err := scanBook(r.q.QueryRow(ctx, query, id, delta))
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapWriteError("adjust stock", err)
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return nil, domain.ErrInsufficientStock
}

// Delete elimina un libro. Si tiene ventas registradas → ErrReferenced.
func (r *BookRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete book", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// escapeLike escapa los comodines de LIKE para buscar el texto literal.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

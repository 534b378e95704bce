package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/access"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

// BookUseCase casos de uso del catálogo. El stock no se edita aquí: solo cambia vía compras y ventas.
type BookUseCase struct {
	repo repository.BookRepository
}

// NewBookUseCase construye el caso de uso.
func NewBookUseCase(repo repository.BookRepository) *BookUseCase {
	return &BookUseCase{repo: repo}
}

// Create agrega un libro al catálogo. Devuelve ErrDuplicate si el ISBN ya existe.
func (uc *BookUseCase) Create(ctx context.Context, in dto.CreateBookRequest) (*dto.BookResponse, error) {
	in.ISBN = strings.TrimSpace(in.ISBN)
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Publisher = strings.TrimSpace(in.Publisher)
	if in.ISBN == "" || in.Title == "" || in.Author == "" || in.Publisher == "" {
		return nil, fmt.Errorf("%w: isbn, title, author y publisher son obligatorios", domain.ErrMissingField)
	}
	if !entity.ValidPrice(in.RetailPrice) {
		return nil, fmt.Errorf("%w: retail_price debe ser mayor que 0 y con a lo sumo 2 decimales", domain.ErrInvalidInput)
	}
	if in.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock_quantity no puede ser negativo", domain.ErrInvalidInput)
	}

	existing, err := uc.repo.GetByISBN(ctx, in.ISBN)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: isbn %s", domain.ErrDuplicate, in.ISBN)
	}
	now := time.Now().UTC()
	book := &entity.Book{
		ID:            uuid.New().String(),
		ISBN:          in.ISBN,
		Title:         in.Title,
		Author:        in.Author,
		Publisher:     in.Publisher,
		RetailPrice:   in.RetailPrice,
		StockQuantity: in.StockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return dto.ToBookResponse(book), nil
}

// GetByID obtiene un libro por ID.
func (uc *BookUseCase) GetByID(ctx context.Context, id string) (*dto.BookResponse, error) {
	book, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToBookResponse(book), nil
}

// Search filtra por ISBN, título, autor y editorial (subcadena, sin distinguir mayúsculas, AND).
// Sin filtros devuelve todo el catálogo.
func (uc *BookUseCase) Search(ctx context.Context, in dto.BookSearchRequest) ([]dto.BookResponse, error) {
	return uc.search(ctx, repository.BookFilter{
		ISBN:      strings.TrimSpace(in.ISBN),
		Title:     strings.TrimSpace(in.Title),
		Author:    strings.TrimSpace(in.Author),
		Publisher: strings.TrimSpace(in.Publisher),
	})
}

// QuickSearch busca q en cualquiera de los cuatro campos. q vacío devuelve una lista vacía.
func (uc *BookUseCase) QuickSearch(ctx context.Context, q string) ([]dto.BookResponse, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []dto.BookResponse{}, nil
	}
	return uc.search(ctx, repository.BookFilter{Query: q})
}

func (uc *BookUseCase) search(ctx context.Context, f repository.BookFilter) ([]dto.BookResponse, error) {
	list, err := uc.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BookResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *dto.ToBookResponse(b))
	}
	return out, nil
}

// Update modifica título, autor, editorial y precio. ISBN y stock no se tocan.
func (uc *BookUseCase) Update(ctx context.Context, id string, in dto.UpdateBookRequest) (*dto.BookResponse, error) {
	book, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrNotFound
	}
	if in.Title != nil {
		book.Title = strings.TrimSpace(*in.Title)
	}
	if in.Author != nil {
		book.Author = strings.TrimSpace(*in.Author)
	}
	if in.Publisher != nil {
		book.Publisher = strings.TrimSpace(*in.Publisher)
	}
	if book.Title == "" || book.Author == "" || book.Publisher == "" {
		return nil, fmt.Errorf("%w: title, author y publisher no pueden quedar vacíos", domain.ErrMissingField)
	}
	if in.RetailPrice != nil {
		if !entity.ValidPrice(*in.RetailPrice) {
			return nil, fmt.Errorf("%w: retail_price debe ser mayor que 0 y con a lo sumo 2 decimales", domain.ErrInvalidInput)
		}
		book.RetailPrice = *in.RetailPrice
	}
	book.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return dto.ToBookResponse(book), nil
}

// Delete elimina un libro. Solo super admin.
func (uc *BookUseCase) Delete(ctx context.Context, c access.Caller, id string) error {
	if err := access.Require(c, access.CapDeleteBook); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

package repository

import (
	"context"

	"github.com/jhoicas/Libreria-api/internal/domain/entity"
)

// BookFilter filtros del catálogo. Los campos por columna se combinan con AND (coincidencia
// parcial sin distinguir mayúsculas); Query busca en las cuatro columnas con OR.
type BookFilter struct {
	ISBN      string
	Title     string
	Author    string
	Publisher string
	Query     string
}

// BookRepository puerto de persistencia del catálogo.
type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*entity.Book, error)
	Search(ctx context.Context, f BookFilter) ([]*entity.Book, error)
	// Update persiste título, autor, editorial, precio y updated_at. Nunca el stock.
	Update(ctx context.Context, book *entity.Book) error
	// AdjustStock suma delta al stock en una sola operación condicionada a que el resultado
	// no sea negativo. Devuelve ErrInsufficientStock o ErrNotFound.
	AdjustStock(ctx context.Context, id string, delta int) (*entity.Book, error)
	Delete(ctx context.Context, id string) error
}

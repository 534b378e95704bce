package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Libreria-api/internal/domain/entity"
)

// BookSalesTotal unidades e ingreso acumulados de un libro en un período.
type BookSalesTotal struct {
	BookID   string
	Quantity int
	Revenue  decimal.Decimal
}

// SaleRepository puerto de persistencia de ventas. Sin Update ni Delete: las ventas son inmutables.
type SaleRepository interface {
	Create(ctx context.Context, s *entity.BookSale) error
	GetByID(ctx context.Context, id string) (*entity.BookSale, error)
	List(ctx context.Context) ([]*entity.BookSale, error)
	// TopBooks los `limit` libros con mayor ingreso entre from y to (inclusivos).
	TopBooks(ctx context.Context, from, to time.Time, limit int) ([]BookSalesTotal, error)
}

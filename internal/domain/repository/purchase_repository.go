package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Libreria-api/internal/domain/entity"
)

// PurchaseRepository puerto de persistencia de órdenes de compra.
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.BookPurchase) error
	GetByID(ctx context.Context, id string) (*entity.BookPurchase, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.BookPurchase, error)
	// List devuelve las órdenes, filtradas por estado si status no es nil.
	List(ctx context.Context, status *entity.PurchaseStatus) ([]*entity.BookPurchase, error)
	UpdateStatus(ctx context.Context, id string, status entity.PurchaseStatus, at time.Time) error
}

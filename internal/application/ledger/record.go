// Package ledger registra y consulta el libro contable (ingresos por ventas, egresos por compras).
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

// Entry datos de un asiento a registrar. Source/SourceID son opcionales.
type Entry struct {
	Type        entity.TransactionType
	Description string
	Amount      decimal.Decimal
	UserID      string
	Source      entity.SourceType
	SourceID    string
}

// Record agrega un asiento al libro. Se llama dentro de la transacción de la compra o venta
// que lo origina, con el repositorio atado a esa transacción.
func Record(ctx context.Context, repo repository.LedgerRepository, e Entry, at time.Time) (*entity.FinancialTransaction, error) {
	switch e.Type {
	case entity.TransactionIncome, entity.TransactionExpense:
	default:
		return nil, fmt.Errorf("%w: tipo de asiento %q", domain.ErrInvalidInput, e.Type)
	}
	if !entity.ValidPrice(e.Amount) {
		return nil, fmt.Errorf("%w: el monto del asiento debe ser mayor que 0 y con a lo sumo 2 decimales", domain.ErrInvalidInput)
	}
	if e.UserID == "" {
		return nil, fmt.Errorf("%w: user_id", domain.ErrMissingField)
	}

	t := &entity.FinancialTransaction{
		ID:          uuid.New().String(),
		Type:        e.Type,
		Description: e.Description,
		Amount:      e.Amount,
		UserID:      e.UserID,
		CreatedAt:   at,
	}
	if e.Source != "" && e.SourceID != "" {
		src, id := e.Source, e.SourceID
		t.SourceType = &src
		t.SourceID = &id
	}
	if err := repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// PurchaseDescription texto del egreso al pagar una compra. El formato se usa para conciliar.
func PurchaseDescription(quantity int, title string) string {
	return fmt.Sprintf("Book purchase: %d copies of %s", quantity, title)
}

// SaleDescription texto del ingreso de una venta.
func SaleDescription(quantity int, title string) string {
	return fmt.Sprintf("Book sale: %d copies of %s", quantity, title)
}

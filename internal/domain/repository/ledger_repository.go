package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LedgerFilter filtros del libro contable. Campos nil no filtran; From/To son inclusivos.
type LedgerFilter struct {
	Type *entity.TransactionType
	From *time.Time
	To   *time.Time
}

// LedgerTotals sumas por tipo para un filtro dado.
type LedgerTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// LedgerRepository puerto del libro contable: solo inserción y consulta.
type LedgerRepository interface {
	Create(ctx context.Context, t *entity.FinancialTransaction) error
	// List ordena por created_at descendente.
	List(ctx context.Context, f LedgerFilter) ([]*entity.FinancialTransaction, error)
	// Totals suma los montos que cumplen el filtro (ignora f.Type).
	Totals(ctx context.Context, f LedgerFilter) (LedgerTotals, error)
}

package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tipo de asiento del libro contable.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"  // venta de libros
	TransactionExpense TransactionType = "expense" // pago de compra a proveedor
)

// ParseTransactionType valida el texto del tipo (sin distinguir mayúsculas).
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(s))
	switch t {
	case TransactionIncome, TransactionExpense:
		return t, nil
	}
	return "", fmt.Errorf("tipo de transacción desconocido %q", s)
}

// SourceType origen estructural de un asiento (opcional).
type SourceType string

const (
	SourcePurchase SourceType = "purchase"
	SourceSale     SourceType = "sale"
)

// FinancialTransaction asiento del libro contable. Solo se agrega; nunca se actualiza ni se borra.
type FinancialTransaction struct {
	ID          string
	Type        TransactionType
	Description string
	Amount      decimal.Decimal // > 0
	UserID      string
	SourceType  *SourceType // referencia opcional a la compra/venta que lo originó
	SourceID    *string
	CreatedAt   time.Time
}

// Signed devuelve el monto con signo: positivo para ingresos, negativo para egresos.
func (t *FinancialTransaction) Signed() decimal.Decimal {
	switch t.Type {
	case TransactionIncome:
		return t.Amount
	case TransactionExpense:
		return t.Amount.Neg()
	}
	return decimal.Zero
}

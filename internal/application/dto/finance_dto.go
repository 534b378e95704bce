package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerQuery filtros de consulta del libro contable (query string).
type LedgerQuery struct {
	Type      string `query:"type"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// TransactionResponse salida de un asiento contable.
type TransactionResponse struct {
	ID              string          `json:"id"`
	TransactionType string          `json:"transaction_type"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	UserID          string          `json:"user_id"`
	SourceType      *string         `json:"source_type,omitempty"`
	SourceID        *string         `json:"source_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	User            *UserSummary    `json:"user"`
}

// FinancialSummaryResponse totales del período.
type FinancialSummaryResponse struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetProfit    decimal.Decimal `json:"net_profit"`
}

// TopBookResponse libro más vendido del período.
type TopBookResponse struct {
	BookID       string          `json:"book_id"`
	ISBN         string          `json:"isbn"`
	Title        string          `json:"title"`
	QuantitySold int             `json:"quantity_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// DashboardSummaryResponse resumen del día y del mes en curso.
type DashboardSummaryResponse struct {
	Today     FinancialSummaryResponse `json:"today"`
	Month     FinancialSummaryResponse `json:"month"`
	TopBooks  []TopBookResponse        `json:"top_books"`
	DateLabel string                   `json:"date_label"` // ej: "Octubre 2026"
}

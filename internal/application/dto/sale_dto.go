package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest un ítem de venta. UnitPrice vacío toma el precio de venta actual del libro.
type SaleItemRequest struct {
	BookID    string           `json:"book_id" validate:"required,uuid"`
	Quantity  int              `json:"quantity" validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest venta por lote (Items) o de un solo libro (BookID + Quantity).
type CreateSaleRequest struct {
	Items    []SaleItemRequest `json:"items" validate:"omitempty,dive"`
	BookID   string            `json:"book_id" validate:"omitempty,uuid"`
	Quantity int               `json:"quantity" validate:"gte=0"`
}

// Normalize devuelve los ítems del lote, convirtiendo la forma de un solo libro en un lote de uno.
func (r CreateSaleRequest) Normalize() []SaleItemRequest {
	if len(r.Items) > 0 {
		return r.Items
	}
	if r.BookID != "" {
		return []SaleItemRequest{{BookID: r.BookID, Quantity: r.Quantity}}
	}
	return nil
}

// CreateSaleResponse ids de las ventas creadas, en el orden recibido.
type CreateSaleResponse struct {
	Message string   `json:"message"`
	SaleIDs []string `json:"sale_ids"`
}

// SaleResponse salida de una venta con resumen de libro y vendedor.
type SaleResponse struct {
	ID         string          `json:"id"`
	BookID     string          `json:"book_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	UserID     string          `json:"user_id"`
	CreatedAt  time.Time       `json:"created_at"`
	Book       *BookSummary    `json:"book"`
	User       *UserSummary    `json:"user"`
}

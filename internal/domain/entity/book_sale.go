package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookSale venta al detalle. Inmutable una vez creada.
type BookSale struct {
	ID         string
	BookID     string
	Quantity   int
	UnitPrice  decimal.Decimal // precio unitario al momento de la venta
	TotalPrice decimal.Decimal // Quantity × UnitPrice
	UserID     string
	CreatedAt  time.Time
}

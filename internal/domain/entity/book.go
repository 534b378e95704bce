package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book entrada del catálogo. StockQuantity nunca es negativo; solo cambia vía compras y ventas.
type Book struct {
	ID            string
	ISBN          string // único
	Title         string
	Author        string
	Publisher     string
	RetailPrice   decimal.Decimal // precio de venta al público, > 0
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Snapshot copia los datos descriptivos del libro tal como están ahora.
func (b *Book) Snapshot() BookSnapshot {
	return BookSnapshot{
		ISBN:      b.ISBN,
		Title:     b.Title,
		Author:    b.Author,
		Publisher: b.Publisher,
	}
}

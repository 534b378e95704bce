package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBookRequest entrada para crear un libro en el catálogo.
type CreateBookRequest struct {
	ISBN          string          `json:"isbn" validate:"required,max=20"`
	Title         string          `json:"title" validate:"required,max=200"`
	Author        string          `json:"author" validate:"required,max=100"`
	Publisher     string          `json:"publisher" validate:"required,max=100"`
	RetailPrice   decimal.Decimal `json:"retail_price"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
}

// UpdateBookRequest campos editables del libro (sin ISBN ni stock).
type UpdateBookRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Author      *string          `json:"author" validate:"omitempty,min=1,max=100"`
	Publisher   *string          `json:"publisher" validate:"omitempty,min=1,max=100"`
	RetailPrice *decimal.Decimal `json:"retail_price"`
}

// BookSearchRequest filtros de búsqueda del catálogo (query string).
type BookSearchRequest struct {
	ISBN      string `query:"isbn"`
	Title     string `query:"title"`
	Author    string `query:"author"`
	Publisher string `query:"publisher"`
}

// BookResponse salida de un libro.
type BookResponse struct {
	ID            string          `json:"id"`
	ISBN          string          `json:"isbn"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	Publisher     string          `json:"publisher"`
	RetailPrice   decimal.Decimal `json:"retail_price"`
	StockQuantity int             `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BookSummary datos mínimos del libro embebidos en una venta.
type BookSummary struct {
	ID    string `json:"id"`
	ISBN  string `json:"isbn"`
	Title string `json:"title"`
}

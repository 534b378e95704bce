package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLineRequest una línea de la orden: book_id de un libro existente o los datos completos de uno nuevo.
type PurchaseLineRequest struct {
	BookID        string          `json:"book_id" validate:"omitempty,uuid"`
	ISBN          string          `json:"isbn" validate:"omitempty,max=20"`
	Title         string          `json:"title" validate:"omitempty,max=200"`
	Author        string          `json:"author" validate:"omitempty,max=100"`
	Publisher     string          `json:"publisher" validate:"omitempty,max=100"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      int             `json:"quantity" validate:"gt=0"`
}

// CreatePurchaseRequest orden de compra con una o más líneas; se crea completa o no se crea.
type CreatePurchaseRequest struct {
	Books []PurchaseLineRequest `json:"books" validate:"required,min=1,dive"`
}

// CreatePurchaseResponse ids de las líneas creadas, en el orden recibido.
type CreatePurchaseResponse struct {
	Message     string   `json:"message"`
	PurchaseIDs []string `json:"purchase_ids"`
}

// AddToInventoryRequest precio de venta opcional (obligatorio si el ISBN no está en el catálogo).
type AddToInventoryRequest struct {
	RetailPrice *decimal.Decimal `json:"retail_price"`
}

// AddToInventoryResponse resultado de ingresar una compra pagada al inventario.
type AddToInventoryResponse struct {
	Message       string          `json:"message"`
	IsNewBook     bool            `json:"is_new_book"`
	BookID        string          `json:"book_id"`
	RetailPrice   decimal.Decimal `json:"retail_price"`
	StockQuantity int             `json:"stock_quantity"`
}

// PurchaseResponse salida de una línea de compra.
type PurchaseResponse struct {
	ID            string          `json:"id"`
	ISBN          string          `json:"isbn"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	Publisher     string          `json:"publisher"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      int             `json:"quantity"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Status        string          `json:"status"`
	UserID        string          `json:"user_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

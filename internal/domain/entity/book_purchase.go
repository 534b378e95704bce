package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus estado de una orden de compra a proveedor.
//
//	PENDING → PAID → ADDED_TO_INVENTORY
//	PENDING → CANCELLED
type PurchaseStatus string

const (
	PurchaseStatusPending          PurchaseStatus = "pending"
	PurchaseStatusPaid             PurchaseStatus = "paid"
	PurchaseStatusCancelled        PurchaseStatus = "cancelled"
	PurchaseStatusAddedToInventory PurchaseStatus = "added_to_inventory"
)

// ParsePurchaseStatus valida el texto de un estado.
func ParsePurchaseStatus(s string) (PurchaseStatus, error) {
	st := PurchaseStatus(s)
	switch st {
	case PurchaseStatusPending, PurchaseStatusPaid, PurchaseStatusCancelled, PurchaseStatusAddedToInventory:
		return st, nil
	}
	return "", fmt.Errorf("estado de compra desconocido %q", s)
}

// CanTransitionTo indica si el paso s → next está permitido.
func (s PurchaseStatus) CanTransitionTo(next PurchaseStatus) bool {
	switch s {
	case PurchaseStatusPending:
		return next == PurchaseStatusPaid || next == PurchaseStatusCancelled
	case PurchaseStatusPaid:
		return next == PurchaseStatusAddedToInventory
	case PurchaseStatusCancelled, PurchaseStatusAddedToInventory:
		return false
	}
	return false
}

// IsTerminal indica si ya no admite transiciones.
func (s PurchaseStatus) IsTerminal() bool {
	switch s {
	case PurchaseStatusCancelled, PurchaseStatusAddedToInventory:
		return true
	case PurchaseStatusPending, PurchaseStatusPaid:
		return false
	}
	return false
}

// BookSnapshot datos del libro copiados al crear la orden. No siguen los cambios posteriores del catálogo.
type BookSnapshot struct {
	ISBN      string
	Title     string
	Author    string
	Publisher string
}

// Complete indica si todos los campos descriptivos están presentes.
func (s BookSnapshot) Complete() bool {
	return s.ISBN != "" && s.Title != "" && s.Author != "" && s.Publisher != ""
}

// BookPurchase línea de una orden de compra a proveedor.
type BookPurchase struct {
	ID            string
	Book          BookSnapshot
	PurchasePrice decimal.Decimal // costo unitario, > 0
	Quantity      int             // > 0
	Status        PurchaseStatus
	UserID        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TotalCost costo total de la línea (precio × cantidad).
func (p *BookPurchase) TotalCost() decimal.Decimal {
	return p.PurchasePrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

package dto

import "github.com/jhoicas/Libreria-api/internal/domain/entity"

// ToBookResponse convierte la entidad en su salida JSON.
func ToBookResponse(b *entity.Book) *BookResponse {
	if b == nil {
		return nil
	}
	return &BookResponse{
		ID:            b.ID,
		ISBN:          b.ISBN,
		Title:         b.Title,
		Author:        b.Author,
		Publisher:     b.Publisher,
		RetailPrice:   b.RetailPrice,
		StockQuantity: b.StockQuantity,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ToPurchaseResponse convierte la línea de compra en su salida JSON.
func ToPurchaseResponse(p *entity.BookPurchase) *PurchaseResponse {
	if p == nil {
		return nil
	}
	return &PurchaseResponse{
		ID:            p.ID,
		ISBN:          p.Book.ISBN,
		Title:         p.Book.Title,
		Author:        p.Book.Author,
		Publisher:     p.Book.Publisher,
		PurchasePrice: p.PurchasePrice,
		Quantity:      p.Quantity,
		TotalCost:     p.TotalCost(),
		Status:        string(p.Status),
		UserID:        p.UserID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToUserResponse convierte el usuario en su salida JSON (nunca incluye el hash).
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		RealName:     u.RealName,
		EmployeeID:   u.EmployeeID,
		Gender:       u.Gender,
		Age:          u.Age,
		Role:         string(u.Role),
		IsSuperAdmin: u.Role.IsSuperAdmin(),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// ToUserSummary datos mínimos del usuario; nil si no existe.
func ToUserSummary(u *entity.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Username: u.Username, RealName: u.RealName}
}

// ToBookSummary datos mínimos del libro; nil si fue eliminado.
func ToBookSummary(b *entity.Book) *BookSummary {
	if b == nil {
		return nil
	}
	return &BookSummary{ID: b.ID, ISBN: b.ISBN, Title: b.Title}
}

// ToSaleResponse convierte la venta; book y user pueden ser nil.
func ToSaleResponse(s *entity.BookSale, book *entity.Book, user *entity.User) *SaleResponse {
	if s == nil {
		return nil
	}
	return &SaleResponse{
		ID:         s.ID,
		BookID:     s.BookID,
		Quantity:   s.Quantity,
		UnitPrice:  s.UnitPrice,
		TotalPrice: s.TotalPrice,
		UserID:     s.UserID,
		CreatedAt:  s.CreatedAt,
		Book:       ToBookSummary(book),
		User:       ToUserSummary(user),
	}
}

// ToTransactionResponse convierte el asiento; user puede ser nil.
func ToTransactionResponse(t *entity.FinancialTransaction, user *entity.User) *TransactionResponse {
	if t == nil {
		return nil
	}
	out := &TransactionResponse{
		ID:              t.ID,
		TransactionType: string(t.Type),
		Description:     t.Description,
		Amount:          t.Amount,
		UserID:          t.UserID,
		SourceID:        t.SourceID,
		CreatedAt:       t.CreatedAt,
		User:            ToUserSummary(user),
	}
	if t.SourceType != nil {
		st := string(*t.SourceType)
		out.SourceType = &st
	}
	return out
}

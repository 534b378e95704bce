package memory

import "github.com/jhoicas/Libreria-api/internal/domain/entity"

// state tablas en memoria. Los slices *Order conservan el orden de inserción.
type state struct {
	books      map[string]*entity.Book
	bookOrder  []string
	purchases  map[string]*entity.BookPurchase
	purchOrder []string
	sales      map[string]*entity.BookSale
	saleOrder  []string
	ledger     []*entity.FinancialTransaction
	users      map[string]*entity.User
	userOrder  []string
}

func newState() *state {
	return &state{
		books:     make(map[string]*entity.Book),
		purchases: make(map[string]*entity.BookPurchase),
		sales:     make(map[string]*entity.BookSale),
		users:     make(map[string]*entity.User),
	}
}

// clone copia profunda: ninguna entidad queda compartida entre el estado publicado y la copia.
func (s *state) clone() *state {
	c := &state{
		books:      make(map[string]*entity.Book, len(s.books)),
		bookOrder:  append([]string(nil), s.bookOrder...),
		purchases:  make(map[string]*entity.BookPurchase, len(s.purchases)),
		purchOrder: append([]string(nil), s.purchOrder...),
		sales:      make(map[string]*entity.BookSale, len(s.sales)),
		saleOrder:  append([]string(nil), s.saleOrder...),
		ledger:     make([]*entity.FinancialTransaction, 0, len(s.ledger)),
		users:      make(map[string]*entity.User, len(s.users)),
		userOrder:  append([]string(nil), s.userOrder...),
	}
	for k, v := range s.books {
		c.books[k] = copyBook(v)
	}
	for k, v := range s.purchases {
		c.purchases[k] = copyPurchase(v)
	}
	for k, v := range s.sales {
		c.sales[k] = copySale(v)
	}
	for _, t := range s.ledger {
		c.ledger = append(c.ledger, copyTransaction(t))
	}
	for k, v := range s.users {
		c.users[k] = copyUser(v)
	}
	return c
}

func copyBook(b *entity.Book) *entity.Book {
	if b == nil {
		return nil
	}
	cp := *b
	return &cp
}

func copyPurchase(p *entity.BookPurchase) *entity.BookPurchase {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func copySale(s *entity.BookSale) *entity.BookSale {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

func copyUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

func copyTransaction(t *entity.FinancialTransaction) *entity.FinancialTransaction {
	if t == nil {
		return nil
	}
	cp := *t
	if t.SourceType != nil {
		st := *t.SourceType
		cp.SourceType = &st
	}
	if t.SourceID != nil {
		id := *t.SourceID
		cp.SourceID = &id
	}
	return &cp
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

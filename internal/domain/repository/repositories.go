package repository

import "context"

// Repositories agrupa los puertos de persistencia atados a una misma conexión o transacción.
type Repositories struct {
	Books     BookRepository
	Purchases PurchaseRepository
	Sales     SaleRepository
	Ledger    LedgerRepository
	Users     UserRepository
}

// TxRunner ejecuta fn dentro de una unidad de trabajo atómica.
// Si fn devuelve error se hace Rollback de todo; si no, un único Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}

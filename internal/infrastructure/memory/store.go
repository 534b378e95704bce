// Package memory implementa los puertos de persistencia en memoria.
//
// Cada unidad de trabajo (Run) toma el candado del store, trabaja sobre una copia del estado
// y la publica solo si fn termina sin error; así el rollback es descartar la copia.
// Las lecturas fuera de Run toman el mismo candado por operación.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

// Store estado completo del back office en memoria.
type Store struct {
	mu   sync.Mutex
	data *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{data: newState()}
}

// Repositories devuelve repositorios fuera de transacción (cada operación es atómica por sí sola).
func (s *Store) Repositories() repository.Repositories {
	return s.bind(&view{store: s})
}

// Run ejecuta fn sobre una copia del estado y la confirma si no hay error.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(s.bind(&view{store: s, tx: work})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.data = work
	return nil
}

func (s *Store) bind(v *view) repository.Repositories {
	return repository.Repositories{
		Books:     &bookRepo{v},
		Purchases: &purchaseRepo{v},
		Sales:     &saleRepo{v},
		Ledger:    &ledgerRepo{v},
		Users:     &userRepo{v},
	}
}

// view resuelve sobre qué estado opera un repositorio: la copia de la transacción
// o el estado publicado (bajo candado).
type view struct {
	store *Store
	tx    *state
}

func (v *view) do(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.data)
}

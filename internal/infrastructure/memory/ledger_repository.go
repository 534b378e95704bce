package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.LedgerRepository = (*ledgerRepo)(nil)

type ledgerRepo struct{ v *view }

func (r *ledgerRepo) Create(_ context.Context, t *entity.FinancialTransaction) error {
	return r.v.do(func(st *state) error {
		st.ledger = append(st.ledger, copyTransaction(t))
		return nil
	})
}

func (r *ledgerRepo) List(_ context.Context, f repository.LedgerFilter) ([]*entity.FinancialTransaction, error) {
	out := make([]*entity.FinancialTransaction, 0)
	err := r.v.do(func(st *state) error {
		for i := len(st.ledger) - 1; i >= 0; i-- {
			t := st.ledger[i]
			if f.Type != nil && t.Type != *f.Type {
				continue
			}
			if !inRange(t, f) {
				continue
			}
			out = append(out, copyTransaction(t))
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

func (r *ledgerRepo) Totals(_ context.Context, f repository.LedgerFilter) (repository.LedgerTotals, error) {
	totals := repository.LedgerTotals{Income: decimal.Zero, Expense: decimal.Zero}
	err := r.v.do(func(st *state) error {
		for _, t := range st.ledger {
			if !inRange(t, f) {
				continue
			}
			switch t.Type {
			case entity.TransactionIncome:
				totals.Income = totals.Income.Add(t.Amount)
			case entity.TransactionExpense:
				totals.Expense = totals.Expense.Add(t.Amount)
			}
		}
		return nil
	})
	return totals, err
}

func inRange(t *entity.FinancialTransaction, f repository.LedgerFilter) bool {
	if f.From != nil && t.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && t.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

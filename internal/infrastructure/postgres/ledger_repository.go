package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo libro contable sobre PostgreSQL. Sin UPDATE ni DELETE.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = `id, transaction_type, description, amount, user_id, source_type, source_id, created_at`

func scanTransaction(row pgx.Row) (*entity.FinancialTransaction, error) {
	var (
		t          entity.FinancialTransaction
		typ        string
		sourceType *string
	)
	if err := row.Scan(&t.ID, &typ, &t.Description, &t.Amount, &t.UserID, &sourceType, &t.SourceID, &t.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if t.Type, err = entity.ParseTransactionType(typ); err != nil {
		return nil, err
	}
	if sourceType != nil {
		st := entity.SourceType(*sourceType)
		t.SourceType = &st
	}
	return &t, nil
}

func (r *LedgerRepo) Create(ctx context.Context, t *entity.FinancialTransaction) error {
	var sourceType *string
	if t.SourceType != nil {
		s := string(*t.SourceType)
		sourceType = &s
	}
	query := `INSERT INTO financial_transactions (` + ledgerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, t.ID, string(t.Type), t.Description, t.Amount, t.UserID, sourceType, t.SourceID, t.CreatedAt)
	if err != nil {
		return mapWriteError("insert financial transaction", err)
	}
	return nil
}

// List asientos filtrados, ordenados por created_at descendente.
func (r *LedgerRepo) List(ctx context.Context, f repository.LedgerFilter) ([]*entity.FinancialTransaction, error) {
	where, args := ledgerWhere(f, true)
	rows, err := r.q.Query(ctx, `SELECT `+ledgerColumns+` FROM financial_transactions`+where+` ORDER BY created_at DESC, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list financial transactions: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.FinancialTransaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan financial transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Totals suma ingresos y egresos del período con SUM; nada se guarda precalculado.
func (r *LedgerRepo) Totals(ctx context.Context, f repository.LedgerFilter) (repository.LedgerTotals, error) {
	where, args := ledgerWhere(f, false)
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'expense'), 0)
		FROM financial_transactions` + where
	var totals repository.LedgerTotals
	if err := r.q.QueryRow(ctx, query, args...).Scan(&totals.Income, &totals.Expense); err != nil {
		return totals, fmt.Errorf("sum financial transactions: %w", err)
	}
	return totals, nil
}

func ledgerWhere(f repository.LedgerFilter, withType bool) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if withType && f.Type != nil {
		args = append(args, string(*f.Type))
		conds = append(conds, fmt.Sprintf("transaction_type = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

// UseCase consultas del libro contable. Los saldos siempre se calculan; nunca se guardan.
type UseCase struct {
	ledger repository.LedgerRepository
	users  repository.UserRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(ledger repository.LedgerRepository, users repository.UserRepository) *UseCase {
	return &UseCase{ledger: ledger, users: users}
}

// List asientos que cumplen el filtro, del más reciente al más antiguo, con el resumen del usuario.
func (uc *UseCase) List(ctx context.Context, q dto.LedgerQuery) ([]dto.TransactionResponse, error) {
	f, err := ParseFilter(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.ledger.List(ctx, f)
	if err != nil {
		return nil, err
	}
	users := make(map[string]*entity.User)
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		u, ok := users[t.UserID]
		if !ok {
			if u, err = uc.users.GetByID(ctx, t.UserID); err != nil {
				return nil, err
			}
			users[t.UserID] = u
		}
		out = append(out, *dto.ToTransactionResponse(t, u))
	}
	return out, nil
}

// Summary totales de ingresos y egresos y la utilidad neta del período (el tipo no filtra).
func (uc *UseCase) Summary(ctx context.Context, q dto.LedgerQuery) (*dto.FinancialSummaryResponse, error) {
	f, err := ParseFilter(q)
	if err != nil {
		return nil, err
	}
	totals, err := uc.ledger.Totals(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.FinancialSummaryResponse{
		TotalIncome:  totals.Income,
		TotalExpense: totals.Expense,
		NetProfit:    totals.Income.Sub(totals.Expense),
	}, nil
}

// ParseFilter convierte la query HTTP en filtro. Fechas en RFC3339, "2006-01-02T15:04:05"
// o "2006-01-02"; una fecha final sin hora cubre el día completo.
func ParseFilter(q dto.LedgerQuery) (repository.LedgerFilter, error) {
	var f repository.LedgerFilter
	if s := strings.TrimSpace(q.Type); s != "" {
		t, err := entity.ParseTransactionType(s)
		if err != nil {
			return f, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		f.Type = &t
	}
	if s := strings.TrimSpace(q.StartDate); s != "" {
		from, _, err := parseDate(s)
		if err != nil {
			return f, err
		}
		f.From = &from
	}
	if s := strings.TrimSpace(q.EndDate); s != "" {
		to, dateOnly, err := parseDate(s)
		if err != nil {
			return f, err
		}
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = &to
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, fmt.Errorf("%w: start_date posterior a end_date", domain.ErrInvalidInput)
	}
	return f, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, false, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("%w: fecha inválida %q", domain.ErrInvalidInput, s)
}

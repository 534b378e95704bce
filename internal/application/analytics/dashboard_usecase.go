// Package analytics contiene el dashboard financiero: totales del día, del mes en curso
// y los libros más vendidos del mes.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

const dashboardTopBooks = 5 // número de libros en el widget del dashboard

// DashboardUseCase genera el resumen financiero del día y del mes en curso.
//
// Fuente de datos: libro contable (totales) y ventas (ranking). Solo lectura.
type DashboardUseCase struct {
	ledger repository.LedgerRepository
	sales  repository.SaleRepository
	books  repository.BookRepository
	now    func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(ledger repository.LedgerRepository, sales repository.SaleRepository, books repository.BookRepository) *DashboardUseCase {
	return &DashboardUseCase{
		ledger: ledger,
		sales:  sales,
		books:  books,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// GetSummary construye el DashboardSummaryResponse.
//
// Tres llamadas en paralelo:
//  1. Totals(hoy)
//  2. Totals(mes)
//  3. TopBooks(mes, top 5)
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	now := uc.now()

	// Hoy: 00:00:00 – 23:59:59.999999999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	// Mes en curso: día 1 a las 00:00 – fin de hoy
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type totalsResult struct {
		totals repository.LedgerTotals
		err    error
	}
	type topResult struct {
		top []repository.BookSalesTotal
		err error
	}

	todayCh := make(chan totalsResult, 1)
	monthCh := make(chan totalsResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		t, err := uc.ledger.Totals(ctx, repository.LedgerFilter{From: &todayStart, To: &todayEnd})
		todayCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.ledger.Totals(ctx, repository.LedgerFilter{From: &monthStart, To: &todayEnd})
		monthCh <- totalsResult{t, err}
	}()
	go func() {
		top, err := uc.sales.TopBooks(ctx, monthStart, todayEnd, dashboardTopBooks)
		topCh <- topResult{top, err}
	}()

	today := <-todayCh
	month := <-monthCh
	top := <-topCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: totales de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: totales del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top libros: %w", top.err)
	}

	topBooks := make([]dto.TopBookResponse, 0, len(top.top))
	for _, t := range top.top {
		item := dto.TopBookResponse{BookID: t.BookID, QuantitySold: t.Quantity, TotalRevenue: t.Revenue}
		b, err := uc.books.GetByID(ctx, t.BookID)
		if err != nil {
			return nil, fmt.Errorf("dashboard: libro %s: %w", t.BookID, err)
		}
		if b != nil {
			item.ISBN, item.Title = b.ISBN, b.Title
		}
		topBooks = append(topBooks, item)
	}

	return &dto.DashboardSummaryResponse{
		Today:     summarize(today.totals),
		Month:     summarize(month.totals),
		TopBooks:  topBooks,
		DateLabel: monthLabel(now),
	}, nil
}

func summarize(t repository.LedgerTotals) dto.FinancialSummaryResponse {
	return dto.FinancialSummaryResponse{
		TotalIncome:  t.Income,
		TotalExpense: t.Expense,
		NetProfit:    t.Income.Sub(t.Expense),
	}
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

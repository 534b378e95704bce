package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/application/ledger"
	"github.com/jhoicas/Libreria-api/internal/application/purchasing"
	"github.com/jhoicas/Libreria-api/internal/application/sales"
	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/access"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedUser(t *testing.T, store *memory.Store) access.Caller {
	t.Helper()
	now := time.Now().UTC()
	u := &entity.User{ID: "u-1", Username: "ana", EmployeeID: "E1", RealName: "Ana", Role: entity.RoleAdmin, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Repositories().Users.Create(context.Background(), u))
	return access.Caller{UserID: u.ID, Role: u.Role}
}

// ─── Record ───

func TestRecord_RechazaMontoNoPositivo(t *testing.T) {
	repos := memory.New().Repositories()
	ctx := context.Background()

	for _, amount := range []string{"0", "-5", "1.005"} {
		_, err := ledger.Record(ctx, repos.Ledger, ledger.Entry{
			Type: entity.TransactionIncome, Description: "x", Amount: dec(amount), UserID: "u-1",
		}, time.Now())
		assert.ErrorIs(t, err, domain.ErrInvalidInput, amount)
	}

	_, err := ledger.Record(ctx, repos.Ledger, ledger.Entry{Type: "refund", Amount: dec("1"), UserID: "u-1"}, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ledger.Record(ctx, repos.Ledger, ledger.Entry{Type: entity.TransactionExpense, Amount: dec("1")}, time.Now())
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestRecord_ReferenciaOpcional(t *testing.T) {
	repos := memory.New().Repositories()
	tx, err := ledger.Record(context.Background(), repos.Ledger, ledger.Entry{
		Type: entity.TransactionIncome, Description: "manual", Amount: dec("3"), UserID: "u-1",
	}, time.Now())
	require.NoError(t, err)
	assert.Nil(t, tx.SourceType)
	assert.Nil(t, tx.SourceID)
}

// ─── Resumen ───

func TestSummary_NetoCoincideConVentasMenosComprasPagadas(t *testing.T) {
	store := memory.New()
	repos := store.Repositories()
	caller := seedUser(t, store)
	ctx := context.Background()

	purchases := purchasing.NewUseCase(store, repos, zerolog.Nop())
	sellers := sales.NewUseCase(store, repos, zerolog.Nop())
	uc := ledger.NewUseCase(repos.Ledger, repos.Users)

	created, err := purchases.Create(ctx, caller, dto.CreatePurchaseRequest{Books: []dto.PurchaseLineRequest{
		{ISBN: "Y", Title: "T", Author: "A", Publisher: "P", PurchasePrice: dec("10"), Quantity: 5},
		{ISBN: "Z", Title: "T2", Author: "A", Publisher: "P", PurchasePrice: dec("7.25"), Quantity: 2},
	}})
	require.NoError(t, err)
	_, err = purchases.Pay(ctx, caller, created.PurchaseIDs[0])
	require.NoError(t, err)
	price := dec("25")
	added, err := purchases.AddToInventory(ctx, caller, created.PurchaseIDs[0], dto.AddToInventoryRequest{RetailPrice: &price})
	require.NoError(t, err)

	_, err = sellers.Create(ctx, caller, dto.CreateSaleRequest{BookID: added.BookID, Quantity: 3})
	require.NoError(t, err)

	sum, err := uc.Summary(ctx, dto.LedgerQuery{})
	require.NoError(t, err)
	assert.True(t, sum.TotalIncome.Equal(dec("75")), sum.TotalIncome.String())
	assert.True(t, sum.TotalExpense.Equal(dec("50")), "la compra sin pagar no cuenta")
	assert.True(t, sum.NetProfit.Equal(dec("25")))

	list, err := uc.List(ctx, dto.LedgerQuery{Type: "INCOME"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "income", list[0].TransactionType)
	require.NotNil(t, list[0].User)
	assert.Equal(t, "ana", list[0].User.Username)
}

func TestListYSummary_FiltranPorPeriodo(t *testing.T) {
	store := memory.New()
	repos := store.Repositories()
	ctx := context.Background()
	uc := ledger.NewUseCase(repos.Ledger, repos.Users)

	jan := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 18, 30, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for _, e := range []struct {
		at     time.Time
		typ    entity.TransactionType
		amount string
	}{
		{jan, entity.TransactionIncome, "100"},
		{feb, entity.TransactionExpense, "40"},
		{feb, entity.TransactionIncome, "10"},
		{mar, entity.TransactionIncome, "999"},
	} {
		_, err := ledger.Record(ctx, repos.Ledger, ledger.Entry{Type: e.typ, Description: "x", Amount: dec(e.amount), UserID: "u-1"}, e.at)
		require.NoError(t, err)
	}

	q := dto.LedgerQuery{StartDate: "2024-02-01", EndDate: "2024-02-10"}
	list, err := uc.List(ctx, q)
	require.NoError(t, err)
	assert.Len(t, list, 2, "la fecha final sin hora incluye todo el día")

	sum, err := uc.Summary(ctx, q)
	require.NoError(t, err)
	assert.True(t, sum.TotalIncome.Equal(dec("10")))
	assert.True(t, sum.TotalExpense.Equal(dec("40")))
	assert.True(t, sum.NetProfit.Equal(dec("-30")))

	all, err := uc.List(ctx, dto.LedgerQuery{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, mar, all[0].CreatedAt, "orden descendente por fecha")
	assert.Equal(t, jan, all[3].CreatedAt)
}

func TestParseFilter(t *testing.T) {
	f, err := ledger.ParseFilter(dto.LedgerQuery{Type: "expense", StartDate: "2024-01-01T00:00:00", EndDate: "2024-01-31T23:59:59Z"})
	require.NoError(t, err)
	require.NotNil(t, f.Type)
	assert.Equal(t, entity.TransactionExpense, *f.Type)
	require.NotNil(t, f.From)
	require.NotNil(t, f.To)

	_, err = ledger.ParseFilter(dto.LedgerQuery{StartDate: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ledger.ParseFilter(dto.LedgerQuery{Type: "transfer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ledger.ParseFilter(dto.LedgerQuery{StartDate: "2024-02-01", EndDate: "2024-01-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDescripciones(t *testing.T) {
	assert.Equal(t, "Book purchase: 5 copies of Rayuela", ledger.PurchaseDescription(5, "Rayuela"))
	assert.Equal(t, "Book sale: 1 copies of Rayuela", ledger.SaleDescription(1, "Rayuela"))
}

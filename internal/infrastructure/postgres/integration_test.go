//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/application/purchasing"
	"github.com/jhoicas/Libreria-api/internal/application/sales"
	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/access"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
	"github.com/jhoicas/Libreria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Libreria-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Contenedor PostgreSQL por test (go test -tags integration ./...)
// ──────────────────────────────────────────────────────────────────────────────

type testDB struct {
	pool  *pgxpool.Pool
	tx    *postgres.TxRunner
	repos repository.Repositories
}

func newTestDB(t *testing.T) *testDB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("library_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "no se pudo iniciar el contenedor PostgreSQL")
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	version, changed, err := postgres.Migrate(dsn)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, uint(1), version)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 10, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return &testDB{pool: pool, tx: postgres.NewTxRunner(pool), repos: postgres.NewRepositories(pool)}
}

func (db *testDB) seedUser(t *testing.T) access.Caller {
	t.Helper()
	now := time.Now().UTC()
	u := &entity.User{ID: uuid.NewString(), Username: "ana", EmployeeID: "E1", RealName: "Ana", Age: 30, Role: entity.RoleAdmin, PasswordHash: "x", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, db.repos.Users.Create(context.Background(), u))
	return access.Caller{UserID: u.ID, Role: u.Role}
}

func (db *testDB) seedBook(t *testing.T, isbn string, stock int) *entity.Book {
	t.Helper()
	now := time.Now().UTC()
	b := &entity.Book{ID: uuid.NewString(), ISBN: isbn, Title: "Libro " + isbn, Author: "A", Publisher: "P",
		RetailPrice: decimal.RequireFromString("20.00"), StockQuantity: stock, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, db.repos.Books.Create(context.Background(), b))
	return b
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestIntegration_ISBNDuplicado(t *testing.T) {
	db := newTestDB(t)
	db.seedBook(t, "978-1", 0)
	now := time.Now().UTC()
	err := db.repos.Books.Create(context.Background(), &entity.Book{ID: uuid.NewString(), ISBN: "978-1", Title: "T", Author: "A", Publisher: "P",
		RetailPrice: decimal.NewFromInt(1), CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestIntegration_AdjustStockCondicionado(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	b := db.seedBook(t, "978-1", 2)

	_, err := db.repos.Books.AdjustStock(ctx, b.ID, -3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	updated, err := db.repos.Books.AdjustStock(ctx, b.ID, -2)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.StockQuantity)

	_, err = db.repos.Books.AdjustStock(ctx, uuid.NewString(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = db.repos.Books.AdjustStock(ctx, "no-es-uuid", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIntegration_BusquedaILike(t *testing.T) {
	db := newTestDB(t)
	db.seedBook(t, "978-1", 0)
	db.seedBook(t, "100_%", 0)

	list, err := db.repos.Books.Search(context.Background(), repository.BookFilter{Title: "LIBRO"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = db.repos.Books.Search(context.Background(), repository.BookFilter{Query: "_%"})
	require.NoError(t, err)
	require.Len(t, list, 1, "los comodines se buscan literalmente")
	assert.Equal(t, "100_%", list[0].ISBN)
}

func TestIntegration_VentasConcurrentesNoSobregiran(t *testing.T) {
	db := newTestDB(t)
	caller := db.seedUser(t)
	b := db.seedBook(t, "978-1", 5)
	uc := sales.NewUseCase(db.tx, db.repos, zerolog.Nop())

	const workers = 12
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Create(context.Background(), caller, dto.CreateSaleRequest{BookID: b.ID, Quantity: 1})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, workers-5, rejected)
	got, err := db.repos.Books.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)

	totals, err := db.repos.Ledger.Totals(context.Background(), repository.LedgerFilter{})
	require.NoError(t, err)
	assert.True(t, totals.Income.Equal(decimal.RequireFromString("100.00")), totals.Income.String())
}

func TestIntegration_CompraCicloYRollback(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	caller := db.seedUser(t)
	uc := purchasing.NewUseCase(db.tx, db.repos, zerolog.Nop())

	created, err := uc.Create(ctx, caller, dto.CreatePurchaseRequest{Books: []dto.PurchaseLineRequest{
		{ISBN: "Y", Title: "T", Author: "A", Publisher: "P", PurchasePrice: decimal.NewFromInt(10), Quantity: 5},
	}})
	require.NoError(t, err)
	id := created.PurchaseIDs[0]

	_, err = uc.Pay(ctx, caller, id)
	require.NoError(t, err)
	_, err = uc.Pay(ctx, caller, id)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.AddToInventory(ctx, caller, id, dto.AddToInventoryRequest{})
	assert.ErrorIs(t, err, domain.ErrMissingField)
	p, err := uc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "paid", p.Status, "el rollback deja la compra en PAID")

	price := decimal.RequireFromString("25.00")
	res, err := uc.AddToInventory(ctx, caller, id, dto.AddToInventoryRequest{RetailPrice: &price})
	require.NoError(t, err)
	assert.True(t, res.IsNewBook)

	entries, err := db.repos.Ledger.List(ctx, repository.LedgerFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.TransactionExpense, entries[0].Type)
	require.NotNil(t, entries[0].SourceType)
	assert.Equal(t, entity.SourcePurchase, *entries[0].SourceType)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(50)))
}

func TestIntegration_BorrarUsuarioConMovimientos(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	caller := db.seedUser(t)
	b := db.seedBook(t, "978-1", 5)
	_, err := sales.NewUseCase(db.tx, db.repos, zerolog.Nop()).Create(ctx, caller, dto.CreateSaleRequest{BookID: b.ID, Quantity: 1})
	require.NoError(t, err)

	assert.ErrorIs(t, db.repos.Users.Delete(ctx, caller.UserID), domain.ErrReferenced)
	assert.ErrorIs(t, db.repos.Books.Delete(ctx, b.ID), domain.ErrReferenced)
}

func TestIntegration_TopBooksPorIngreso(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	caller := db.seedUser(t)
	a := db.seedBook(t, "978-A", 10)
	b := db.seedBook(t, "978-B", 10)
	uc := sales.NewUseCase(db.tx, db.repos, zerolog.Nop())

	for _, req := range []dto.CreateSaleRequest{
		{BookID: a.ID, Quantity: 1},
		{BookID: b.ID, Quantity: 2},
		{BookID: b.ID, Quantity: 1},
	} {
		_, err := uc.Create(ctx, caller, req)
		require.NoError(t, err)
	}

	now := time.Now().UTC()
	top, err := db.repos.Sales.TopBooks(ctx, now.Add(-time.Hour), now.Add(time.Hour), 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, b.ID, top[0].BookID)
	assert.Equal(t, 3, top[0].Quantity)
	assert.True(t, top[0].Revenue.Equal(decimal.NewFromInt(60)), top[0].Revenue.String())
	assert.Equal(t, a.ID, top[1].BookID)

	top, err = db.repos.Sales.TopBooks(ctx, now.Add(-time.Hour), now.Add(time.Hour), 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

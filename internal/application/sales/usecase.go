// Package sales registra ventas al detalle contra el stock del catálogo.
package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/application/ledger"
	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/access"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

// UseCase casos de uso de ventas.
type UseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repositories
	log      zerolog.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner repository.TxRunner, repos repository.Repositories, log zerolog.Logger) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		repos:    repos,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create registra un lote de ventas en una sola transacción. Por ítem: descuenta stock
// (verificación y descuento atómicos), crea la venta con el precio del momento y registra
// el ingreso. Si un ítem falla no queda nada del lote.
func (uc *UseCase) Create(ctx context.Context, c access.Caller, in dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
	if err := access.Authenticated(c); err != nil {
		return nil, err
	}
	items := in.Normalize()
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: la venta no tiene ítems", domain.ErrInvalidInput)
	}
	for i, it := range items {
		if it.BookID == "" {
			return nil, fmt.Errorf("%w: ítem %d: book_id", domain.ErrMissingField, i+1)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: ítem %d: quantity debe ser mayor que 0", domain.ErrInvalidInput, i+1)
		}
		if it.UnitPrice != nil && !entity.ValidPrice(*it.UnitPrice) {
			return nil, fmt.Errorf("%w: ítem %d: unit_price debe ser mayor que 0 y con a lo sumo 2 decimales", domain.ErrInvalidInput, i+1)
		}
	}

	now := uc.now()
	var (
		ids   []string
		total decimal.Decimal
	)
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		ids = make([]string, 0, len(items))
		total = decimal.Zero
		for i, it := range items {
			sale, err := sellOne(ctx, repos, c.UserID, i, it, now)
			if err != nil {
				return err
			}
			ids = append(ids, sale.ID)
			total = total.Add(sale.TotalPrice)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", c.UserID).Int("items", len(ids)).Str("total", total.StringFixed(2)).Msg("venta registrada")
	return &dto.CreateSaleResponse{Message: "Venta registrada", SaleIDs: ids}, nil
}

func sellOne(ctx context.Context, repos repository.Repositories, userID string, i int, it dto.SaleItemRequest, now time.Time) (*entity.BookSale, error) {
	book, err := repos.Books.GetByID(ctx, it.BookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, fmt.Errorf("%w: ítem %d: libro %s", domain.ErrNotFound, i+1, it.BookID)
	}
	if _, err := repos.Books.AdjustStock(ctx, book.ID, -it.Quantity); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: ítem %d: %q, se piden %d", domain.ErrInsufficientStock, i+1, book.Title, it.Quantity)
		}
		return nil, err
	}

	unitPrice := book.RetailPrice
	if it.UnitPrice != nil {
		unitPrice = *it.UnitPrice
	}
	sale := &entity.BookSale{
		ID:         uuid.New().String(),
		BookID:     book.ID,
		Quantity:   it.Quantity,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
		UserID:     userID,
		CreatedAt:  now,
	}
	if err := repos.Sales.Create(ctx, sale); err != nil {
		return nil, err
	}
	_, err = ledger.Record(ctx, repos.Ledger, ledger.Entry{
		Type:        entity.TransactionIncome,
		Description: ledger.SaleDescription(it.Quantity, book.Title),
		Amount:      sale.TotalPrice,
		UserID:      userID,
		Source:      entity.SourceSale,
		SourceID:    sale.ID,
	}, now)
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// Get obtiene una venta con el resumen del libro (nil si fue eliminado) y del vendedor.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.repos.Sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	book, err := uc.repos.Books.GetByID(ctx, s.BookID)
	if err != nil {
		return nil, err
	}
	user, err := uc.repos.Users.GetByID(ctx, s.UserID)
	if err != nil {
		return nil, err
	}
	return dto.ToSaleResponse(s, book, user), nil
}

// List ventas de la más reciente a la más antigua.
func (uc *UseCase) List(ctx context.Context) ([]dto.SaleResponse, error) {
	list, err := uc.repos.Sales.List(ctx)
	if err != nil {
		return nil, err
	}
	books := make(map[string]*entity.Book)
	users := make(map[string]*entity.User)
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		b, ok := books[s.BookID]
		if !ok {
			if b, err = uc.repos.Books.GetByID(ctx, s.BookID); err != nil {
				return nil, err
			}
			books[s.BookID] = b
		}
		u, ok := users[s.UserID]
		if !ok {
			if u, err = uc.repos.Users.GetByID(ctx, s.UserID); err != nil {
				return nil, err
			}
			users[s.UserID] = u
		}
		out = append(out, *dto.ToSaleResponse(s, b, u))
	}
	return out, nil
}

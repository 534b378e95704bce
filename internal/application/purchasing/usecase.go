// Package purchasing gestiona las órdenes de compra a proveedores:
//
//	PENDING → PAID → ADDED_TO_INVENTORY
//	PENDING → CANCELLED
//
// Cada operación que muta estado corre en una sola transacción (TxRunner.Run): cambio de estado,
// asiento contable y stock se confirman juntos o no se confirma nada.
package purchasing

import (
	"context"
	"fmt"
	"strings"
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

// UseCase casos de uso de compras.
type UseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repositories // lecturas fuera de transacción
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

// Create registra una orden con una o más líneas, todas en PENDING. Es un lote: si una línea
// falla no se crea ninguna.
func (uc *UseCase) Create(ctx context.Context, c access.Caller, in dto.CreatePurchaseRequest) (*dto.CreatePurchaseResponse, error) {
	if err := access.Authenticated(c); err != nil {
		return nil, err
	}
	if len(in.Books) == 0 {
		return nil, fmt.Errorf("%w: la orden no tiene libros", domain.ErrInvalidInput)
	}
	for i, line := range in.Books {
		if err := validateLine(i, line); err != nil {
			return nil, err
		}
	}

	now := uc.now()
	var ids []string
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		ids = make([]string, 0, len(in.Books))
		for i, line := range in.Books {
			snap, err := snapshotFor(ctx, repos.Books, i, line)
			if err != nil {
				return err
			}
			p := &entity.BookPurchase{
				ID:            uuid.New().String(),
				Book:          snap,
				PurchasePrice: line.PurchasePrice,
				Quantity:      line.Quantity,
				Status:        entity.PurchaseStatusPending,
				UserID:        c.UserID,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := repos.Purchases.Create(ctx, p); err != nil {
				return err
			}
			ids = append(ids, p.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", c.UserID).Int("lines", len(ids)).Msg("orden de compra creada")
	return &dto.CreatePurchaseResponse{Message: "Orden de compra creada", PurchaseIDs: ids}, nil
}

func validateLine(i int, line dto.PurchaseLineRequest) error {
	if !entity.ValidPrice(line.PurchasePrice) {
		return fmt.Errorf("%w: línea %d: purchase_price debe ser mayor que 0 y con a lo sumo 2 decimales", domain.ErrInvalidInput, i+1)
	}
	if line.Quantity <= 0 {
		return fmt.Errorf("%w: línea %d: quantity debe ser mayor que 0", domain.ErrInvalidInput, i+1)
	}
	if line.BookID != "" {
		return nil
	}
	var missing []string
	if strings.TrimSpace(line.ISBN) == "" {
		missing = append(missing, "isbn")
	}
	if strings.TrimSpace(line.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(line.Author) == "" {
		missing = append(missing, "author")
	}
	if strings.TrimSpace(line.Publisher) == "" {
		missing = append(missing, "publisher")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: línea %d: %s", domain.ErrMissingField, i+1, strings.Join(missing, ", "))
	}
	return nil
}

// snapshotFor copia los datos del libro existente o toma los de la línea. La copia no sigue
// los cambios posteriores del catálogo.
func snapshotFor(ctx context.Context, books repository.BookRepository, i int, line dto.PurchaseLineRequest) (entity.BookSnapshot, error) {
	if line.BookID == "" {
		return entity.BookSnapshot{
			ISBN:      strings.TrimSpace(line.ISBN),
			Title:     strings.TrimSpace(line.Title),
			Author:    strings.TrimSpace(line.Author),
			Publisher: strings.TrimSpace(line.Publisher),
		}, nil
	}
	book, err := books.GetByID(ctx, line.BookID)
	if err != nil {
		return entity.BookSnapshot{}, err
	}
	if book == nil {
		return entity.BookSnapshot{}, fmt.Errorf("%w: línea %d: libro %s", domain.ErrNotFound, i+1, line.BookID)
	}
	return book.Snapshot(), nil
}

// Get obtiene una línea de compra por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.repos.Purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToPurchaseResponse(p), nil
}

// List lista las compras; status vacío no filtra.
func (uc *UseCase) List(ctx context.Context, status string) ([]dto.PurchaseResponse, error) {
	var filter *entity.PurchaseStatus
	if s := strings.TrimSpace(status); s != "" {
		st, err := entity.ParsePurchaseStatus(strings.ToLower(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		filter = &st
	}
	list, err := uc.repos.Purchases.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *dto.ToPurchaseResponse(p))
	}
	return out, nil
}

// Pay PENDING → PAID y registra el egreso precio × cantidad en la misma transacción.
// Un segundo pago de la misma compra falla con ErrInvalidTransition.
func (uc *UseCase) Pay(ctx context.Context, c access.Caller, id string) (*dto.PurchaseResponse, error) {
	if err := access.Authenticated(c); err != nil {
		return nil, err
	}
	var out *entity.BookPurchase
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := uc.transition(ctx, repos, id, entity.PurchaseStatusPaid)
		if err != nil {
			return err
		}
		_, err = ledger.Record(ctx, repos.Ledger, ledger.Entry{
			Type:        entity.TransactionExpense,
			Description: ledger.PurchaseDescription(p.Quantity, p.Book.Title),
			Amount:      p.TotalCost(),
			UserID:      c.UserID,
			Source:      entity.SourcePurchase,
			SourceID:    p.ID,
		}, p.UpdatedAt)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("purchase_id", id).Str("user_id", c.UserID).Str("amount", out.TotalCost().StringFixed(2)).Msg("compra pagada")
	return dto.ToPurchaseResponse(out), nil
}

// Cancel PENDING → CANCELLED. Sin efecto en stock ni en el libro contable.
func (uc *UseCase) Cancel(ctx context.Context, c access.Caller, id string) (*dto.PurchaseResponse, error) {
	if err := access.Authenticated(c); err != nil {
		return nil, err
	}
	var out *entity.BookPurchase
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := uc.transition(ctx, repos, id, entity.PurchaseStatusCancelled)
		out = p
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("purchase_id", id).Str("user_id", c.UserID).Msg("compra cancelada")
	return dto.ToPurchaseResponse(out), nil
}

// AddToInventory PAID → ADDED_TO_INVENTORY. Si el ISBN ya está en el catálogo suma la cantidad
// al stock (y sobrescribe el precio si viene); si no, crea el libro con los datos de la orden
// y exige retail_price. No genera asiento: el egreso ya se registró al pagar.
func (uc *UseCase) AddToInventory(ctx context.Context, c access.Caller, id string, in dto.AddToInventoryRequest) (*dto.AddToInventoryResponse, error) {
	if err := access.Authenticated(c); err != nil {
		return nil, err
	}
	if in.RetailPrice != nil && !entity.ValidPrice(*in.RetailPrice) {
		return nil, fmt.Errorf("%w: retail_price debe ser mayor que 0 y con a lo sumo 2 decimales", domain.ErrInvalidInput)
	}

	var (
		book  *entity.Book
		isNew bool
	)
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := uc.transition(ctx, repos, id, entity.PurchaseStatusAddedToInventory)
		if err != nil {
			return err
		}
		existing, err := repos.Books.GetByISBN(ctx, p.Book.ISBN)
		if err != nil {
			return err
		}
		if existing != nil {
			book, err = restock(ctx, repos.Books, existing.ID, p.Quantity, in.RetailPrice, p.UpdatedAt)
			return err
		}
		if in.RetailPrice == nil {
			return fmt.Errorf("%w: retail_price es obligatorio para un libro nuevo (isbn %s)", domain.ErrMissingField, p.Book.ISBN)
		}
		book = &entity.Book{
			ID:            uuid.New().String(),
			ISBN:          p.Book.ISBN,
			Title:         p.Book.Title,
			Author:        p.Book.Author,
			Publisher:     p.Book.Publisher,
			RetailPrice:   *in.RetailPrice,
			StockQuantity: p.Quantity,
			CreatedAt:     p.UpdatedAt,
			UpdatedAt:     p.UpdatedAt,
		}
		isNew = true
		return repos.Books.Create(ctx, book)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("purchase_id", id).
		Str("book_id", book.ID).
		Bool("is_new_book", isNew).
		Int("stock_quantity", book.StockQuantity).
		Msg("compra ingresada al inventario")
	return &dto.AddToInventoryResponse{
		Message:       "Compra ingresada al inventario",
		IsNewBook:     isNew,
		BookID:        book.ID,
		RetailPrice:   book.RetailPrice,
		StockQuantity: book.StockQuantity,
	}, nil
}

func restock(ctx context.Context, books repository.BookRepository, bookID string, qty int, price *decimal.Decimal, at time.Time) (*entity.Book, error) {
	book, err := books.AdjustStock(ctx, bookID, qty)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return book, nil
	}
	book.RetailPrice = *price
	book.UpdatedAt = at
	if err := books.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// transition bloquea la fila (GetForUpdate), valida el paso y persiste el nuevo estado.
func (uc *UseCase) transition(ctx context.Context, repos repository.Repositories, id string, next entity.PurchaseStatus) (*entity.BookPurchase, error) {
	p, err := repos.Purchases.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !p.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, p.Status, next)
	}
	now := uc.now()
	if err := repos.Purchases.UpdateStatus(ctx, p.ID, next, now); err != nil {
		return nil, err
	}
	p.Status = next
	p.UpdatedAt = now
	return p, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo órdenes de compra sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, isbn, title, author, publisher, purchase_price, quantity, status, user_id, created_at, updated_at`

func scanPurchase(row pgx.Row) (*entity.BookPurchase, error) {
	var (
		p      entity.BookPurchase
		status string
	)
	err := row.Scan(&p.ID, &p.Book.ISBN, &p.Book.Title, &p.Book.Author, &p.Book.Publisher,
		&p.PurchasePrice, &p.Quantity, &status, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.Status, err = entity.ParsePurchaseStatus(status); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserta una línea de compra con su snapshot del libro.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.BookPurchase) error {
	query := `
		INSERT INTO book_purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Book.ISBN, p.Book.Title, p.Book.Author, p.Book.Publisher,
		p.PurchasePrice, p.Quantity, string(p.Status), p.UserID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert purchase", err)
	}
	return nil
}

// GetByID obtiene una compra; (nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.BookPurchase, error) {
	return r.getOne(ctx, `SELECT `+purchaseColumns+` FROM book_purchases WHERE id = $1`, id)
}

// GetForUpdate obtiene la compra y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.BookPurchase, error) {
	return r.getOne(ctx, `SELECT `+purchaseColumns+` FROM book_purchases WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseRepo) getOne(ctx context.Context, query, id string) (*entity.BookPurchase, error) {
	if !isUUID(id) {
		return nil, nil
	}
	p, err := scanPurchase(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

// List lista las compras por fecha de creación, opcionalmente filtradas por estado.
func (r *PurchaseRepo) List(ctx context.Context, status *entity.PurchaseStatus) ([]*entity.BookPurchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM book_purchases`
	var args []any
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.BookPurchase, 0)
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateStatus persiste el nuevo estado. La validez del paso la decide el caso de uso.
func (r *PurchaseRepo) UpdateStatus(ctx context.Context, id string, status entity.PurchaseStatus, at time.Time) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `UPDATE book_purchases SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
	if err != nil {
		return mapWriteError("update purchase status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

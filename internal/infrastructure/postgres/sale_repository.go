package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas sobre PostgreSQL. Solo inserción y lectura.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, book_id, quantity, unit_price, total_price, user_id, created_at`

func scanSale(row pgx.Row) (*entity.BookSale, error) {
	var s entity.BookSale
	if err := row.Scan(&s.ID, &s.BookID, &s.Quantity, &s.UnitPrice, &s.TotalPrice, &s.UserID, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.BookSale) error {
	query := `INSERT INTO book_sales (` + saleColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, s.ID, s.BookID, s.Quantity, s.UnitPrice, s.TotalPrice, s.UserID, s.CreatedAt)
	if err != nil {
		return mapWriteError("insert sale", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.BookSale, error) {
	if !isUUID(id) {
		return nil, nil
	}
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM book_sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// List ventas de la más reciente a la más antigua.
func (r *SaleRepo) List(ctx context.Context) ([]*entity.BookSale, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM book_sales ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.BookSale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// TopBooks agrupa por libro; empate en ingreso se resuelve por unidades y luego por id.
func (r *SaleRepo) TopBooks(ctx context.Context, from, to time.Time, limit int) ([]repository.BookSalesTotal, error) {
	const query = `
	SELECT
	    book_id,
	    SUM(quantity)    AS quantity_sold,
	    SUM(total_price) AS total_revenue
	FROM book_sales
	WHERE created_at BETWEEN $1 AND $2
	GROUP BY book_id
	ORDER BY total_revenue DESC, quantity_sold DESC, book_id
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("sales.TopBooks: %w", err)
	}
	defer rows.Close()

	out := make([]repository.BookSalesTotal, 0)
	for rows.Next() {
		var item repository.BookSalesTotal
		if err := rows.Scan(&item.BookID, &item.Quantity, &item.Revenue); err != nil {
			return nil, fmt.Errorf("sales.TopBooks scan: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales.TopBooks rows: %w", err)
	}
	return out, nil
}

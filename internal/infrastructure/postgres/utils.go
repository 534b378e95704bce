package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Libreria-api/internal/domain"
)

// Querier lo que los repositorios necesitan de la conexión: *pgxpool.Pool o pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// isUUID las columnas id son UUID: un id mal formado no puede existir y se trata como no encontrado.
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// mapWriteError traduce violaciones de constraints a errores de dominio; el resto se envuelve con op.
func mapWriteError(op string, err error) error {
	switch pgCode(err) {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, constraintName(err))
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", domain.ErrReferenced, constraintName(err))
	case codeCheckViolation:
		if constraintName(err) == "books_stock_non_negative" {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, constraintName(err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

package repository

import (
	"context"

	"github.com/jhoicas/Libreria-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	// Update persiste username, employee_id, real_name, gender, age y updated_at.
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role entity.Role) (int, error)
}

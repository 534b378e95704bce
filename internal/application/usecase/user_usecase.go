package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/access"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

// PasswordHasher hashea y verifica contraseñas (pkg/password).
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, stored string) (bool, error)
}

// UserUseCase aplica reglas de negocio para usuarios. Las reglas de permiso viven en access.
type UserUseCase struct {
	repo   repository.UserRepository
	hasher PasswordHasher
	log    zerolog.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, hasher PasswordHasher, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, hasher: hasher, log: log}
}

// List lista todos los usuarios. Solo super admin.
func (uc *UserUseCase) List(ctx context.Context, c access.Caller) ([]dto.UserResponse, error) {
	if err := access.Require(c, access.CapListUsers); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *dto.ToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario. Cada usuario ve su perfil; ver otros requiere super admin.
func (uc *UserUseCase) GetByID(ctx context.Context, c access.Caller, id string) (*dto.UserResponse, error) {
	if err := access.RequireSelfOr(c, id, access.CapManageOtherUsers); err != nil {
		return nil, err
	}
	user, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Create crea un usuario (rol admin por defecto). Solo super admin.
func (uc *UserUseCase) Create(ctx context.Context, c access.Caller, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := access.Require(c, access.CapCreateUser); err != nil {
		return nil, err
	}
	role := entity.RoleAdmin
	if in.Role != "" {
		r, err := entity.ParseRole(in.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		role = r
	}
	user, err := NewUser(ctx, uc.repo, uc.hasher, NewUserInput{
		Username:   in.Username,
		Password:   in.Password,
		EmployeeID: in.EmployeeID,
		RealName:   in.RealName,
		Gender:     in.Gender,
		Age:        in.Age,
		Role:       role,
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("created_by", c.UserID).Str("role", string(role)).Msg("usuario creado")
	return dto.ToUserResponse(user), nil
}

// NewUserInput datos para dar de alta un usuario (también lo usa el bootstrap del super admin).
type NewUserInput struct {
	Username   string
	Password   string
	EmployeeID string
	RealName   string
	Gender     string
	Age        int
	Role       entity.Role
}

// NewUser valida unicidad, hashea la contraseña y persiste el usuario.
func NewUser(ctx context.Context, repo repository.UserRepository, hasher PasswordHasher, in NewUserInput) (*entity.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.EmployeeID = strings.TrimSpace(in.EmployeeID)
	if in.Username == "" || in.EmployeeID == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, employee_id y password son obligatorios", domain.ErrMissingField)
	}
	if in.Age < 0 {
		return nil, fmt.Errorf("%w: age", domain.ErrInvalidInput)
	}
	if err := checkUnique(ctx, repo, "", in.Username, in.EmployeeID); err != nil {
		return nil, err
	}
	hash, err := hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		EmployeeID:   in.EmployeeID,
		RealName:     strings.TrimSpace(in.RealName),
		Gender:       strings.TrimSpace(in.Gender),
		Age:          in.Age,
		Role:         in.Role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update modifica el perfil de un usuario. Cambiar username o employee_id exige super admin.
func (uc *UserUseCase) Update(ctx context.Context, c access.Caller, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := access.RequireSelfOr(c, id, access.CapManageOtherUsers); err != nil {
		return nil, err
	}
	user, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	username, employeeID := user.Username, user.EmployeeID
	if in.Username != nil {
		username = strings.TrimSpace(*in.Username)
	}
	if in.EmployeeID != nil {
		employeeID = strings.TrimSpace(*in.EmployeeID)
	}
	if username == "" || employeeID == "" {
		return nil, fmt.Errorf("%w: username y employee_id no pueden quedar vacíos", domain.ErrMissingField)
	}
	// Repetir los valores actuales no es un cambio de identidad.
	if username != user.Username || employeeID != user.EmployeeID {
		if err := access.Require(c, access.CapManageOtherUsers); err != nil {
			return nil, err
		}
		if err := checkUnique(ctx, uc.repo, user.ID, username, employeeID); err != nil {
			return nil, err
		}
	}
	user.Username, user.EmployeeID = username, employeeID
	applyProfile(user, in.RealName, in.Gender, in.Age)
	return uc.save(ctx, user)
}

// UpdateProfile el usuario autenticado modifica su propio perfil.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, c access.Caller, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if err := access.Authenticated(c); err != nil {
		return nil, err
	}
	user, err := uc.load(ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	applyProfile(user, in.RealName, in.Gender, in.Age)
	return uc.save(ctx, user)
}

// Delete elimina un usuario. Solo super admin; nunca la propia cuenta ni una cuenta super admin.
func (uc *UserUseCase) Delete(ctx context.Context, c access.Caller, id string) error {
	if err := access.Require(c, access.CapDeleteUser); err != nil {
		return err
	}
	target, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if err := access.CanDeleteUser(c, target); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", id).Str("deleted_by", c.UserID).Msg("usuario eliminado")
	return nil
}

// ResetPassword fija la contraseña de otro usuario. Solo super admin.
func (uc *UserUseCase) ResetPassword(ctx context.Context, c access.Caller, id string, in dto.ResetPasswordRequest) error {
	if err := access.Require(c, access.CapResetPassword); err != nil {
		return err
	}
	if in.NewPassword == "" {
		return fmt.Errorf("%w: new_password", domain.ErrMissingField)
	}
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	hash, err := uc.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	if err := uc.repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", id).Str("reset_by", c.UserID).Msg("contraseña restablecida")
	return nil
}

func (uc *UserUseCase) load(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *UserUseCase) save(ctx context.Context, user *entity.User) (*dto.UserResponse, error) {
	user.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

func applyProfile(u *entity.User, realName, gender *string, age *int) {
	if realName != nil {
		u.RealName = strings.TrimSpace(*realName)
	}
	if gender != nil {
		u.Gender = strings.TrimSpace(*gender)
	}
	if age != nil {
		u.Age = *age
	}
}

// checkUnique verifica username y employee_id contra otros usuarios (selfID se excluye).
func checkUnique(ctx context.Context, repo repository.UserRepository, selfID, username, employeeID string) error {
	u, err := repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u != nil && u.ID != selfID {
		return fmt.Errorf("%w: username %q", domain.ErrDuplicate, username)
	}
	u, err = repo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return err
	}
	if u != nil && u.ID != selfID {
		return fmt.Errorf("%w: employee_id %q", domain.ErrDuplicate, employeeID)
	}
	return nil
}

package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/application/usecase"
	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/access"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
	"github.com/jhoicas/Libreria-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// BootstrapConfig datos de la cuenta super admin inicial.
type BootstrapConfig struct {
	Username   string
	Password   string
	EmployeeID string
	RealName   string
}

// AuthUseCase casos de uso de autenticación: login, perfil propio, cambio de contraseña
// y alta del super admin inicial.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher usecase.PasswordHasher
	jwtCfg JWTConfig
	log    zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, hasher usecase.PasswordHasher, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, jwtCfg: jwtCfg, log: log}
}

// Login verifica usuario/contraseña, genera JWT y retorna token + usuario.
// Usuario inexistente y contraseña errada devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Verificación señuelo: mismo costo que con un usuario existente.
		_, _ = uc.hasher.Verify(in.Password, uc.decoyHash())
		return nil, domain.ErrInvalidCredentials
	}
	ok, err := uc.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("hash de contraseña ilegible")
		return nil, domain.ErrInvalidCredentials
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *dto.ToUserResponse(user),
	}, nil
}

// decoyHash hash calculado una vez con los parámetros vigentes del hasher.
func (uc *AuthUseCase) decoyHash() string {
	uc.dummyOnce.Do(func() {
		h, err := uc.hasher.Hash("libreria-login-decoy")
		if err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo generar el hash señuelo")
			return
		}
		uc.dummyHash = h
	})
	return uc.dummyHash
}

// Resolve carga el usuario del token y arma el Caller con el rol vigente en base de datos
// (no el del token). Un usuario eliminado deja de estar autenticado.
func (uc *AuthUseCase) Resolve(ctx context.Context, userID string) (access.Caller, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return access.Caller{}, err
	}
	if user == nil {
		return access.Caller{}, domain.ErrUnauthorized
	}
	return access.Caller{UserID: user.ID, Role: user.Role}, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, c access.Caller) (*dto.UserResponse, error) {
	if err := access.Authenticated(c); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(user), nil
}

// ChangePassword cambia la contraseña propia verificando la actual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, c access.Caller, in dto.ChangePasswordRequest) error {
	if err := access.Authenticated(c); err != nil {
		return err
	}
	if in.NewPassword == "" {
		return fmt.Errorf("%w: new_password", domain.ErrMissingField)
	}
	user, err := uc.users.GetByID(ctx, c.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	ok, err := uc.hasher.Verify(in.CurrentPassword, user.PasswordHash)
	if err != nil || !ok {
		return domain.ErrInvalidCredentials
	}
	hash, err := uc.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	if err := uc.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("contraseña cambiada")
	return nil
}

// BootstrapSuperAdmin crea la cuenta super admin inicial si no existe ninguna.
// Devuelve true si la creó.
func (uc *AuthUseCase) BootstrapSuperAdmin(ctx context.Context, cfg BootstrapConfig) (bool, error) {
	n, err := uc.users.CountByRole(ctx, entity.RoleSuperAdmin)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	user, err := usecase.NewUser(ctx, uc.users, uc.hasher, usecase.NewUserInput{
		Username:   cfg.Username,
		Password:   cfg.Password,
		EmployeeID: cfg.EmployeeID,
		RealName:   cfg.RealName,
		Role:       entity.RoleSuperAdmin,
	})
	if err != nil {
		return false, fmt.Errorf("bootstrap super admin: %w", err)
	}
	uc.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("super admin inicial creado")
	return true, nil
}

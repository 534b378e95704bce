package auth_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Libreria-api/internal/application/auth"
	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/access"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
	"github.com/jhoicas/Libreria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Libreria-api/pkg/jwt"
	"github.com/jhoicas/Libreria-api/pkg/password"
)

const testSecret = "test-secret-key-for-unit-tests"

var bootstrap = auth.BootstrapConfig{Username: "admin", Password: "admin123", EmployeeID: "ADMIN001", RealName: "Super Admin"}

func newAuth(t *testing.T) (*auth.AuthUseCase, repository.UserRepository) {
	t.Helper()
	users := memory.New().Repositories().Users
	uc := auth.NewAuthUseCase(users, password.NewHasher(1000), auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "libreria-test"}, zerolog.Nop())
	return uc, users
}

func TestBootstrap_CreaSuperAdminUnaSolaVez(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()

	created, err := uc.BootstrapSuperAdmin(ctx, bootstrap)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.BootstrapSuperAdmin(ctx, bootstrap)
	require.NoError(t, err)
	assert.False(t, created)

	n, err := users.CountByRole(ctx, entity.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLogin_TokenConRolYUsuario(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.BootstrapSuperAdmin(ctx, bootstrap)
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.True(t, out.User.IsSuperAdmin)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, "super_admin", claims.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.BootstrapSuperAdmin(ctx, bootstrap)
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "admin123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "mismo error para usuario inexistente")
}

// spyHasher cuenta las verificaciones delegando en el hasher real.
type spyHasher struct {
	*password.Hasher
	verifies int
}

func (s *spyHasher) Verify(plain, stored string) (bool, error) {
	s.verifies++
	return s.Hasher.Verify(plain, stored)
}

func TestLogin_UsuarioInexistenteIgualVerificaHash(t *testing.T) {
	users := memory.New().Repositories().Users
	spy := &spyHasher{Hasher: password.NewHasher(1000)}
	uc := auth.NewAuthUseCase(users, spy, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "libreria-test"}, zerolog.Nop())
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "admin123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, 1, spy.verifies)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "otro", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, 2, spy.verifies)
}

func TestResolve_UsaRolDeLaBase(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()
	_, err := uc.BootstrapSuperAdmin(ctx, bootstrap)
	require.NoError(t, err)
	u, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)

	c, err := uc.Resolve(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, access.Caller{UserID: u.ID, Role: entity.RoleSuperAdmin}, c)

	_, err = uc.Resolve(ctx, "borrado")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()
	_, err := uc.BootstrapSuperAdmin(ctx, bootstrap)
	require.NoError(t, err)
	u, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	caller := access.Caller{UserID: u.ID, Role: u.Role}

	err = uc.ChangePassword(ctx, caller, dto.ChangePasswordRequest{CurrentPassword: "mala", NewPassword: "otra456"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	require.NoError(t, uc.ChangePassword(ctx, caller, dto.ChangePasswordRequest{CurrentPassword: "admin123", NewPassword: "otra456"}))
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "otra456"})
	require.NoError(t, err)

	me, err := uc.Me(ctx, caller)
	require.NoError(t, err)
	assert.Equal(t, "ADMIN001", me.EmployeeID)
}

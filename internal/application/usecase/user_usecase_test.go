package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/application/usecase"
	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/access"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
	"github.com/jhoicas/Libreria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Libreria-api/pkg/password"
)

type userFixture struct {
	repo   repository.UserRepository
	hasher *password.Hasher
	uc     *usecase.UserUseCase
}

// newUserFixture deja cargados u-root (super admin) y u-admin (admin).
func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	repo := memory.New().Repositories().Users
	hasher := password.NewHasher(1000)
	now := time.Now().UTC()
	for _, u := range []*entity.User{
		{ID: superAdmin.UserID, Username: "admin", EmployeeID: "ADMIN001", RealName: "Super Admin", Role: entity.RoleSuperAdmin, CreatedAt: now, UpdatedAt: now},
		{ID: admin.UserID, Username: "ana", EmployeeID: "E1", RealName: "Ana", Role: entity.RoleAdmin, CreatedAt: now, UpdatedAt: now},
	} {
		require.NoError(t, repo.Create(context.Background(), u))
	}
	return &userFixture{repo: repo, hasher: hasher, uc: usecase.NewUserUseCase(repo, hasher, zerolog.Nop())}
}

func newUserReq(username, employeeID string) dto.CreateUserRequest {
	return dto.CreateUserRequest{Username: username, Password: "secreto1", RealName: "Luis", EmployeeID: employeeID, Gender: "M", Age: 30}
}

// ─── Create / List ───

func TestUserCreate_SoloSuperAdminYRolAdminPorDefecto(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, admin, newUserReq("luis", "E2"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	created, err := f.uc.Create(ctx, superAdmin, newUserReq("luis", "E2"))
	require.NoError(t, err)
	assert.Equal(t, "admin", created.Role)
	assert.False(t, created.IsSuperAdmin)

	stored, err := f.repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secreto1", stored.PasswordHash, "nunca se guarda el texto plano")
	ok, err := f.hasher.Verify("secreto1", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserCreate_Duplicados(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, superAdmin, newUserReq("ana", "E9"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.uc.Create(ctx, superAdmin, newUserReq("luis", "E1"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	req := newUserReq("luis", "E2")
	req.Role = "owner"
	_, err = f.uc.Create(ctx, superAdmin, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserList_SoloSuperAdmin(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	_, err := f.uc.List(ctx, admin)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := f.uc.List(ctx, superAdmin)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

// ─── Perfil ───

func TestUserGet_PropioUOtroConPermiso(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	me, err := f.uc.GetByID(ctx, admin, admin.UserID)
	require.NoError(t, err)
	assert.Equal(t, "ana", me.Username)

	_, err = f.uc.GetByID(ctx, admin, superAdmin.UserID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	other, err := f.uc.GetByID(ctx, superAdmin, admin.UserID)
	require.NoError(t, err)
	assert.Equal(t, "E1", other.EmployeeID)

	_, err = f.uc.GetByID(ctx, superAdmin, "nada")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserUpdate_UsernameSoloSuperAdmin(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	age := 41

	out, err := f.uc.Update(ctx, admin, admin.UserID, dto.UpdateUserRequest{RealName: strPtr("Ana María"), Age: &age})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", out.RealName)
	assert.Equal(t, 41, out.Age)

	_, err = f.uc.Update(ctx, admin, admin.UserID, dto.UpdateUserRequest{Username: strPtr("ana2")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Update(ctx, superAdmin, admin.UserID, dto.UpdateUserRequest{Username: strPtr("admin")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	out, err = f.uc.Update(ctx, superAdmin, admin.UserID, dto.UpdateUserRequest{Username: strPtr("ana2"), EmployeeID: strPtr("E77")})
	require.NoError(t, err)
	assert.Equal(t, "ana2", out.Username)
	assert.Equal(t, "E77", out.EmployeeID)
}

// Un admin que reenvía su username y employee_id actuales sólo edita su perfil.
func TestUserUpdate_MismosIdentificadoresSinPermisoExtra(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	out, err := f.uc.Update(ctx, admin, admin.UserID, dto.UpdateUserRequest{
		Username:   strPtr("ana"),
		EmployeeID: strPtr(" E1 "),
		RealName:   strPtr("Ana Lucía"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Lucía", out.RealName)
	assert.Equal(t, "ana", out.Username)
	assert.Equal(t, "E1", out.EmployeeID)

	_, err = f.uc.Update(ctx, admin, admin.UserID, dto.UpdateUserRequest{Username: strPtr("ana"), EmployeeID: strPtr("E9")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserUpdateProfile_Propio(t *testing.T) {
	f := newUserFixture(t)
	out, err := f.uc.UpdateProfile(context.Background(), admin, dto.UpdateProfileRequest{Gender: strPtr("F")})
	require.NoError(t, err)
	assert.Equal(t, "F", out.Gender)

	_, err = f.uc.UpdateProfile(context.Background(), access.Caller{}, dto.UpdateProfileRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ─── Delete ───

func TestUserDelete_Reglas(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	victim, err := f.uc.Create(ctx, superAdmin, newUserReq("luis", "E2"))
	require.NoError(t, err)
	other, err := f.uc.Create(ctx, superAdmin, dto.CreateUserRequest{
		Username: "root2", Password: "secreto1", RealName: "Root", EmployeeID: "E3", Gender: "F", Age: 50, Role: "super_admin",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.uc.Delete(ctx, admin, victim.ID), domain.ErrForbidden)
	assert.ErrorIs(t, f.uc.Delete(ctx, superAdmin, superAdmin.UserID), domain.ErrSelfDelete)
	assert.ErrorIs(t, f.uc.Delete(ctx, superAdmin, other.ID), domain.ErrProtectedUser)
	assert.ErrorIs(t, f.uc.Delete(ctx, superAdmin, "nada"), domain.ErrUserNotFound)

	require.NoError(t, f.uc.Delete(ctx, superAdmin, victim.ID))
	u, err := f.repo.GetByID(ctx, victim.ID)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserResetPassword(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	err := f.uc.ResetPassword(ctx, admin, superAdmin.UserID, dto.ResetPasswordRequest{NewPassword: "nueva123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, f.uc.ResetPassword(ctx, superAdmin, admin.UserID, dto.ResetPasswordRequest{NewPassword: "nueva123"}))
	u, err := f.repo.GetByID(ctx, admin.UserID)
	require.NoError(t, err)
	ok, err := f.hasher.Verify("nueva123", u.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/access"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
)

var (
	root  = access.Caller{UserID: "root", Role: entity.RoleSuperAdmin}
	clerk = access.Caller{UserID: "clerk", Role: entity.RoleAdmin}
	anon  = access.Caller{}
)

var allCaps = []access.Capability{
	access.CapDeleteBook,
	access.CapCreateUser,
	access.CapListUsers,
	access.CapDeleteUser,
	access.CapResetPassword,
	access.CapManageOtherUsers,
}

func TestRequire_SuperAdminTieneTodas(t *testing.T) {
	for _, c := range allCaps {
		assert.NoError(t, access.Require(root, c), c.String())
	}
}

func TestRequire_AdminNoTieneNinguna(t *testing.T) {
	for _, c := range allCaps {
		assert.ErrorIs(t, access.Require(clerk, c), domain.ErrForbidden, c.String())
	}
}

func TestRequire_SinAutenticar(t *testing.T) {
	assert.ErrorIs(t, access.Require(anon, access.CapDeleteBook), domain.ErrUnauthorized)
	assert.ErrorIs(t, access.Authenticated(anon), domain.ErrUnauthorized)
	assert.NoError(t, access.Authenticated(clerk))
}

func TestRequire_RolDesconocidoNoOtorga(t *testing.T) {
	ghost := access.Caller{UserID: "x", Role: entity.Role("owner")}
	assert.ErrorIs(t, access.Require(ghost, access.CapListUsers), domain.ErrForbidden)
}

func TestRequireSelfOr(t *testing.T) {
	assert.NoError(t, access.RequireSelfOr(clerk, "clerk", access.CapManageOtherUsers))
	assert.ErrorIs(t, access.RequireSelfOr(clerk, "root", access.CapManageOtherUsers), domain.ErrForbidden)
	assert.NoError(t, access.RequireSelfOr(root, "clerk", access.CapManageOtherUsers))
	assert.ErrorIs(t, access.RequireSelfOr(anon, "", access.CapManageOtherUsers), domain.ErrUnauthorized)
}

func TestCanDeleteUser(t *testing.T) {
	plain := &entity.User{ID: "u-9", Role: entity.RoleAdmin}
	other := &entity.User{ID: "root-2", Role: entity.RoleSuperAdmin}
	self := &entity.User{ID: "root", Role: entity.RoleSuperAdmin}

	assert.NoError(t, access.CanDeleteUser(root, plain))
	assert.ErrorIs(t, access.CanDeleteUser(root, self), domain.ErrSelfDelete)
	assert.ErrorIs(t, access.CanDeleteUser(root, other), domain.ErrProtectedUser)
	assert.ErrorIs(t, access.CanDeleteUser(clerk, plain), domain.ErrForbidden)
	assert.ErrorIs(t, access.CanDeleteUser(clerk, &entity.User{ID: "clerk", Role: entity.RoleAdmin}), domain.ErrForbidden)
}

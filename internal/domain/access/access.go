// Package access concentra las reglas de autorización del back office.
// No hace I/O: recibe el usuario autenticado (Caller) y responde si puede ejecutar una operación.
package access

import (
	"fmt"

	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
)

// Capability permiso con nombre que se verifica al inicio de cada operación protegida.
type Capability int

const (
	CapDeleteBook Capability = iota + 1
	CapCreateUser
	CapListUsers
	CapDeleteUser
	CapResetPassword
	CapManageOtherUsers // ver o modificar el perfil de otro usuario
)

func (c Capability) String() string {
	switch c {
	case CapDeleteBook:
		return "delete_book"
	case CapCreateUser:
		return "create_user"
	case CapListUsers:
		return "list_users"
	case CapDeleteUser:
		return "delete_user"
	case CapResetPassword:
		return "reset_password"
	case CapManageOtherUsers:
		return "manage_other_users"
	}
	return fmt.Sprintf("capability(%d)", int(c))
}

// Caller identidad del usuario que invoca la operación.
type Caller struct {
	UserID string
	Role   entity.Role
}

// Has indica si el rol del caller otorga la capacidad.
func (c Caller) Has(capability Capability) bool {
	switch c.Role {
	case entity.RoleSuperAdmin:
		return true
	case entity.RoleAdmin:
		// Todas las capacidades con nombre son exclusivas de super admin.
		return false
	}
	return false
}

// Authenticated exige un caller identificado; no pide ninguna capacidad.
func Authenticated(c Caller) error {
	if c.UserID == "" {
		return domain.ErrUnauthorized
	}
	return nil
}

// Require devuelve ErrForbidden si el caller no tiene la capacidad.
func Require(c Caller, capability Capability) error {
	if err := Authenticated(c); err != nil {
		return err
	}
	if !c.Has(capability) {
		return fmt.Errorf("%w: requiere %s", domain.ErrForbidden, capability)
	}
	return nil
}

// RequireSelfOr permite la operación si el caller actúa sobre sí mismo o tiene la capacidad.
func RequireSelfOr(c Caller, targetUserID string, capability Capability) error {
	if err := Authenticated(c); err != nil {
		return err
	}
	if c.UserID == targetUserID {
		return nil
	}
	return Require(c, capability)
}

// CanDeleteUser aplica las reglas de borrado de cuentas: solo super admin,
// nunca la propia cuenta y nunca una cuenta super admin.
func CanDeleteUser(c Caller, target *entity.User) error {
	if err := Require(c, CapDeleteUser); err != nil {
		return err
	}
	if target.ID == c.UserID {
		return domain.ErrSelfDelete
	}
	if target.Role.IsSuperAdmin() {
		return domain.ErrProtectedUser
	}
	return nil
}

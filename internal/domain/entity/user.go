package entity

import (
	"fmt"
	"time"
)

// Role rol de un usuario del back office. Conjunto cerrado: admin | super_admin.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole convierte el texto persistido o recibido por la API en un Role válido.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleAdmin, RoleSuperAdmin:
		return r, nil
	}
	return "", fmt.Errorf("rol desconocido %q", s)
}

// IsSuperAdmin indica si el rol es super admin.
func (r Role) IsSuperAdmin() bool {
	switch r {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		return false
	}
	return false
}

// User representa un empleado con acceso al back office.
type User struct {
	ID           string
	Username     string // único
	EmployeeID   string // único
	RealName     string
	Gender       string
	Age          int
	Role         Role
	PasswordHash string // PBKDF2 con sal por contraseña; nunca el texto plano
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

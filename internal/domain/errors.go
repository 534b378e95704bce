package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a códigos de estado en un único lugar.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrMissingField       = errors.New("campo requerido ausente")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrUnauthorized       = errors.New("no autenticado")
	ErrInvalidCredentials = errors.New("usuario o contraseña inválidos")
	ErrForbidden          = errors.New("acceso denegado")
	ErrSelfDelete         = errors.New("no puede eliminar su propia cuenta")
	ErrProtectedUser      = errors.New("no se puede eliminar una cuenta super admin")
	ErrReferenced         = errors.New("el recurso está referenciado por otros registros")
)

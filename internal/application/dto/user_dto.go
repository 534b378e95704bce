package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en el caso de uso).
type CreateUserRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=80"`
	Password   string `json:"password" validate:"required,min=6"`
	RealName   string `json:"real_name" validate:"required,max=100"`
	EmployeeID string `json:"employee_id" validate:"required,max=50"`
	Gender     string `json:"gender" validate:"required,max=10"`
	Age        int    `json:"age" validate:"required,gt=0,lt=150"`
	Role       string `json:"role" validate:"omitempty,oneof=admin super_admin"`
}

// UpdateUserRequest campos editables. Username y EmployeeID solo los cambia un super admin.
type UpdateUserRequest struct {
	RealName   *string `json:"real_name" validate:"omitempty,min=1,max=100"`
	Gender     *string `json:"gender" validate:"omitempty,min=1,max=10"`
	Age        *int    `json:"age" validate:"omitempty,gt=0,lt=150"`
	Username   *string `json:"username" validate:"omitempty,min=3,max=80"`
	EmployeeID *string `json:"employee_id" validate:"omitempty,min=1,max=50"`
}

// UpdateProfileRequest campos que cualquier usuario puede cambiar de su propio perfil.
type UpdateProfileRequest struct {
	RealName *string `json:"real_name" validate:"omitempty,min=1,max=100"`
	Gender   *string `json:"gender" validate:"omitempty,min=1,max=10"`
	Age      *int    `json:"age" validate:"omitempty,gt=0,lt=150"`
}

// ResetPasswordRequest nueva contraseña fijada por un super admin.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// ChangePasswordRequest cambio de la propia contraseña.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	RealName     string    `json:"real_name"`
	EmployeeID   string    `json:"employee_id"`
	Gender       string    `json:"gender"`
	Age          int       `json:"age"`
	Role         string    `json:"role"`
	IsSuperAdmin bool      `json:"is_super_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT y datos del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

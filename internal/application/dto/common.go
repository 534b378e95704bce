package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserSummary datos mínimos del usuario embebidos en ventas y asientos.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	RealName string `json:"real_name"`
}

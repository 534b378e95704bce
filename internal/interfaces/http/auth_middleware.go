package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Libreria-api/internal/domain/access"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/pkg/jwt"
)

// LocalCaller key en c.Locals del usuario autenticado.
const LocalCaller = "caller"

// CallerResolver carga el usuario del token. Lo implementa *auth.AuthUseCase.
type CallerResolver interface {
	Resolve(ctx context.Context, userID string) (access.Caller, error)
}

// AuthMiddleware valida el Bearer Token JWT y carga el caller en c.Locals.
// El rol se lee del usuario persistido, no del token: un usuario borrado deja de estar autenticado.
func AuthMiddleware(jwtSecret string, resolver CallerResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized("MISSING_TOKEN", "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized("INVALID_TOKEN", "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized("MISSING_TOKEN", "token vacío")
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return unauthorized("INVALID_TOKEN", "token inválido o expirado")
		}
		caller, err := resolver.Resolve(c.UserContext(), claims.UserID)
		if err != nil {
			return err
		}
		c.Locals(LocalCaller, caller)
		return c.Next()
	}
}

// GetCaller devuelve el caller del contexto (después del middleware de auth).
// Sin middleware devuelve un Caller vacío, que las reglas de acceso rechazan.
func GetCaller(c *fiber.Ctx) access.Caller {
	caller, _ := c.Locals(LocalCaller).(access.Caller)
	return caller
}

// RequireRole corta la petición con 403 si el rol del caller no está en la lista.
// Las reglas finas viven en los casos de uso; esto solo protege grupos de rutas completos.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := GetCaller(c)
		if err := access.Authenticated(caller); err != nil {
			return err
		}
		for _, r := range roles {
			if caller.Role == r {
				return c.Next()
			}
		}
		return &apiError{Status: fiber.StatusForbidden, Code: "FORBIDDEN", Message: "rol sin permiso para esta ruta"}
	}
}

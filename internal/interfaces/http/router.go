package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/Libreria-api/internal/application/analytics"
	"github.com/jhoicas/Libreria-api/internal/application/auth"
	"github.com/jhoicas/Libreria-api/internal/application/ledger"
	"github.com/jhoicas/Libreria-api/internal/application/purchasing"
	"github.com/jhoicas/Libreria-api/internal/application/sales"
	"github.com/jhoicas/Libreria-api/internal/application/usecase"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
)

// AppConfig parámetros de la aplicación Fiber.
type AppConfig struct {
	Name        string
	CORSOrigins []string
}

// NewApp construye la aplicación Fiber con el manejo de errores y middlewares comunes.
func NewApp(cfg AppConfig, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	if len(cfg.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		}))
	}
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	BookUC     *usecase.BookUseCase
	UserUC     *usecase.UserUseCase
	PurchaseUC *purchasing.UseCase
	SaleUC     *sales.UseCase
	LedgerUC   *ledger.UseCase
	Dashboard  *appanalytics.DashboardUseCase
	JWTSecret  string
	Service    string
	DB         Pinger // nil con el store en memoria
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health(deps.Service, deps.DB))

	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	superAdmin := RequireRole(entity.RoleSuperAdmin)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/change-password", authHandler.ChangePassword)

	// Catálogo
	books := protected.Group("/books")
	bookHandler := NewBookHandler(deps.BookUC)
	books.Get("/", bookHandler.List)
	books.Post("/", bookHandler.Create)
	books.Get("/search", bookHandler.QuickSearch)
	books.Get("/:id", bookHandler.GetByID)
	books.Put("/:id", bookHandler.Update)
	books.Delete("/:id", bookHandler.Delete)

	// Compras a proveedor
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Get("/", purchaseHandler.List)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/pay", purchaseHandler.Pay)
	purchases.Post("/:id/cancel", purchaseHandler.Cancel)
	purchases.Post("/:id/add-to-inventory", purchaseHandler.AddToInventory)

	// Ventas
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Create)
	sales.Get("/:id", saleHandler.GetByID)

	// Libro contable
	finance := protected.Group("/finance")
	financeHandler := NewFinanceHandler(deps.LedgerUC)
	finance.Get("/transactions", financeHandler.Transactions)
	finance.Get("/summary", financeHandler.Summary)
	finance.Get("/dashboard", NewDashboardHandler(deps.Dashboard).GetSummary)

	// Usuarios; /profile antes de /:id
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", superAdmin, userHandler.List)
	users.Post("/", superAdmin, userHandler.Create)
	users.Put("/profile", userHandler.UpdateProfile)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", superAdmin, userHandler.Delete)
	users.Post("/:id/reset-password", superAdmin, userHandler.ResetPassword)
}

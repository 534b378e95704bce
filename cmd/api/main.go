package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Libreria-api/docs"
	appanalytics "github.com/jhoicas/Libreria-api/internal/application/analytics"
	"github.com/jhoicas/Libreria-api/internal/application/auth"
	"github.com/jhoicas/Libreria-api/internal/application/ledger"
	"github.com/jhoicas/Libreria-api/internal/application/purchasing"
	"github.com/jhoicas/Libreria-api/internal/application/sales"
	"github.com/jhoicas/Libreria-api/internal/application/usecase"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
	"github.com/jhoicas/Libreria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Libreria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Libreria-api/internal/interfaces/http"
	"github.com/jhoicas/Libreria-api/pkg/config"
	"github.com/jhoicas/Libreria-api/pkg/logger"
	"github.com/jhoicas/Libreria-api/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	// Montos como números JSON, no strings.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	var (
		txRunner repository.TxRunner
		repos    repository.Repositories
		db       httpRouter.Pinger
	)
	switch cfg.DB.Driver {
	case "memory":
		store := memory.New()
		txRunner, repos = store, store.Repositories()
		log.Warn().Msg("store en memoria: los datos se pierden al detener el proceso")
	default:
		if cfg.DB.AutoMigrate {
			version, changed, err := postgres.Migrate(cfg.DB.ConnectionString())
			if err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Uint("version", version).Bool("changed", changed).Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner, repos, db = postgres.NewTxRunner(pool), postgres.NewRepositories(pool), pool
	}

	hasher := password.NewHasher(cfg.Security.PBKDF2Rounds)
	authUC := auth.NewAuthUseCase(repos.Users, hasher, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))

	if cfg.Bootstrap.Enabled {
		created, err := authUC.BootstrapSuperAdmin(ctx, auth.BootstrapConfig{
			Username:   cfg.Bootstrap.Username,
			Password:   cfg.Bootstrap.Password,
			EmployeeID: cfg.Bootstrap.EmployeeID,
			RealName:   cfg.Bootstrap.RealName,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("bootstrap super admin")
		}
		if created {
			log.Warn().Str("username", cfg.Bootstrap.Username).Msg("super admin inicial creado; cambie la contraseña")
		}
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}, log.Component("http"))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.SwaggerEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath:    "/",
			FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
			Path:        "docs",
			Title:       "Librería API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		BookUC:     usecase.NewBookUseCase(repos.Books),
		UserUC:     usecase.NewUserUseCase(repos.Users, hasher, log.Component("users")),
		PurchaseUC: purchasing.NewUseCase(txRunner, repos, log.Component("purchasing")),
		SaleUC:     sales.NewUseCase(txRunner, repos, log.Component("sales")),
		LedgerUC:   ledger.NewUseCase(repos.Ledger, repos.Users),
		Dashboard:  appanalytics.NewDashboardUseCase(repos.Ledger, repos.Sales, repos.Books),
		JWTSecret:  cfg.JWT.Secret,
		Service:    cfg.App.Name,
		DB:         db,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// seed prepara una base nueva: crea el super admin inicial y, opcionalmente,
// carga el catálogo de libros desde un CSV (UTF-8 o Latin-1).
//
// Uso: go run ./cmd/seed [ruta/catalogo.csv] [separador]
// Columnas: isbn,title,author,publisher,retail_price[,stock_quantity]
// Los ISBN que ya existen en el catálogo se omiten.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/jhoicas/Libreria-api/internal/application/auth"
	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/application/usecase"
	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/infrastructure/csvimport"
	"github.com/jhoicas/Libreria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Libreria-api/pkg/config"
	"github.com/jhoicas/Libreria-api/pkg/logger"
	"github.com/jhoicas/Libreria-api/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	ctx := context.Background()

	version, _, err := postgres.Migrate(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Uint("version", version).Msg("esquema al día")

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	repos := postgres.NewRepositories(pool)

	hasher := password.NewHasher(cfg.Security.PBKDF2Rounds)
	authUC := auth.NewAuthUseCase(repos.Users, hasher, auth.JWTConfig{}, log.Component("auth"))
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
		log.Info().Str("username", cfg.Bootstrap.Username).Msg("super admin creado")
	} else {
		log.Info().Msg("ya existe un super admin; se omite")
	}

	if len(os.Args) < 2 {
		return
	}
	var opts []csvimport.Option
	if len(os.Args) > 2 {
		d, _ := utf8.DecodeRuneInString(os.Args[2])
		opts = append(opts, csvimport.WithDelimiter(d))
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	res, err := csvimport.ReadCatalog(f, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}
	for _, e := range res.Errors {
		log.Warn().Int("line", e.Line).Err(e.Err).Msg("fila descartada")
	}

	books := usecase.NewBookUseCase(repos.Books)
	var inserted, skipped int
	for _, row := range res.Rows {
		_, err := books.Create(ctx, dto.CreateBookRequest{
			ISBN:          row.ISBN,
			Title:         row.Title,
			Author:        row.Author,
			Publisher:     row.Publisher,
			RetailPrice:   row.RetailPrice,
			StockQuantity: row.StockQuantity,
		})
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
		default:
			log.Warn().Int("line", row.Line).Str("isbn", row.ISBN).Err(err).Msg("libro no importado")
		}
	}
	log.Info().
		Int("inserted", inserted).
		Int("skipped", skipped).
		Int("rejected", len(res.Errors)).
		Bool("latin1", res.Latin1).
		Msg("catálogo importado")
}

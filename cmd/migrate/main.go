// migrate aplica o revierte las migraciones embebidas del esquema PostgreSQL.
//
// Uso:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
//	go run ./cmd/migrate steps <n>     (n negativo revierte)
//	go run ./cmd/migrate force <version>
//	go run ./cmd/migrate version
//
// La conexión se toma de DATABASE_URL o de DB_HOST/DB_PORT/... como en la API.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/Libreria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Libreria-api/pkg/config"
	"github.com/jhoicas/Libreria-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	mg, err := postgres.NewMigrator(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir migrador")
	}
	defer mg.Close()

	switch cmd := os.Args[1]; cmd {
	case "up":
		version, changed, err := mg.Up()
		if err != nil {
			log.Fatal().Err(err).Msg("up")
		}
		log.Info().Uint("version", version).Bool("changed", changed).Msg("esquema actualizado")
	case "down":
		if err := mg.Down(); err != nil {
			log.Fatal().Err(err).Msg("down")
		}
		log.Info().Msg("todas las migraciones revertidas")
	case "steps":
		n := intArg(3)
		if err := mg.Steps(n); err != nil {
			log.Fatal().Err(err).Int("steps", n).Msg("steps")
		}
		log.Info().Int("steps", n).Msg("migraciones aplicadas")
	case "force":
		v := intArg(3)
		if err := mg.Force(v); err != nil {
			log.Fatal().Err(err).Int("version", v).Msg("force")
		}
		log.Info().Int("version", v).Msg("versión forzada")
	case "version":
		version, dirty, err := mg.Version()
		if err != nil {
			log.Fatal().Err(err).Msg("version")
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
	default:
		fmt.Fprintf(os.Stderr, "Comando desconocido %q\n", cmd)
		usage()
	}
}

func intArg(pos int) int {
	if len(os.Args) < pos {
		usage()
	}
	n, err := strconv.Atoi(os.Args[pos-1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Número inválido %q\n", os.Args[pos-1])
		os.Exit(2)
	}
	return n
}

func usage() {
	fmt.Fprintln(os.Stderr, "uso: migrate up | down | steps <n> | force <version> | version")
	os.Exit(2)
}

// migrate aplica el esquema embebido de catálogo y pedidos.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/Joyeria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Joyeria-api/pkg/config"
	"github.com/jhoicas/Joyeria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})
	if !cfg.DB.Enabled() {
		log.Fatal().Msg("DATABASE_URL o DB_HOST requerido")
	}

	run := func(fn func(m *migrator, ctx context.Context) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			pool, err := postgres.NewPool(c.Context, cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()
			return fn(&migrator{pool: pool, log: log}, c.Context)
		}
	}

	app := &cli.App{
		Name:  "migrate",
		Usage: "migraciones goose del esquema de joyería",
		Commands: []*cli.Command{
			{Name: "up", Usage: "aplica las migraciones pendientes", Action: run((*migrator).up)},
			{Name: "down", Usage: "revierte la última migración", Action: run((*migrator).down)},
			{Name: "version", Usage: "muestra la versión actual", Action: run((*migrator).version)},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
}

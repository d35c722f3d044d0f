// invoicectl calcula y genera facturas desde la línea de comandos.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/Joyeria-api/internal/app"
	"github.com/jhoicas/Joyeria-api/pkg/config"
	"github.com/jhoicas/Joyeria-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})

	cli := newApp(os.Stdout, cfg.JWT, func(ctx context.Context) (*app.Stack, error) {
		return app.Build(ctx, cfg, log.Zerolog())
	})
	if err := cli.RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("invoicectl")
		os.Exit(1)
	}
}

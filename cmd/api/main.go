package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/Joyeria-api/internal/app"
	httpRouter "github.com/jhoicas/Joyeria-api/internal/interfaces/http"
	"github.com/jhoicas/Joyeria-api/pkg/config"
	"github.com/jhoicas/Joyeria-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	stack, err := app.Build(ctx, cfg, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("armar stack de facturación")
	}
	defer stack.Close()

	log.Info().
		Strs("engines", stack.Engines).
		Bool("orders", stack.Prepare != nil).
		Bool("events", cfg.NATS.URL != "").
		Str("output", cfg.Render.OutputDir).
		Msg("facturación lista")

	fiberApp := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // chrome puede tardar en frío
		IdleTimeout:  time.Second * 60,
	})
	fiberApp.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		fiberApp.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Joyería API",
		}))
	}

	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "engines": stack.Engines})
	})

	httpRouter.Router(fiberApp, httpRouter.RouterDeps{
		RenderUC:  stack.Render,
		PrepareUC: stack.Prepare,
		Defaults:  stack.Defaults,
		JWTSecret: cfg.JWT.Secret,
		Limiter:   httpRouter.NewRenderLimiter(cfg.HTTP.RenderPerSecond, cfg.HTTP.RenderBurst),
		Gatherer:  gatherer(stack),
	})

	go func() {
		if err := fiberApp.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// gatherer evita pasar un *Registry nil dentro de la interfaz.
func gatherer(s *app.Stack) prometheus.Gatherer {
	if s.Registry == nil {
		return nil
	}
	return s.Registry
}

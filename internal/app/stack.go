// Package app arma el stack de facturación a partir de la configuración. Lo
// comparten el servidor HTTP y la CLI.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Joyeria-api/internal/application/billing"
	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/invoice"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/events"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/render"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/template"
	"github.com/jhoicas/Joyeria-api/pkg/config"
)

// Nombres de motor aceptados en RENDER_ENGINES.
const (
	EngineWkhtmltopdf = "wkhtmltopdf"
	EngineChrome      = "chrome"
	EngineMaroto      = "maroto"
)

// Stack casos de uso listos para usar y los recursos que hay que cerrar.
type Stack struct {
	Render   *billing.RenderUseCase
	Prepare  *billing.PrepareDraftUseCase // nil sin base de datos
	Defaults dto.DraftDefaults
	Registry *prometheus.Registry // nil con métricas desactivadas
	Engines  []string

	pool *pgxpool.Pool
	nc   *nats.Conn
}

// Close libera la conexión a PostgreSQL y NATS.
func (s *Stack) Close() {
	if s.nc != nil {
		if err := s.nc.Drain(); err != nil {
			s.nc.Close()
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

// Build conecta las dependencias opcionales (DB, NATS) según la configuración y
// arma los casos de uso.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stack, error) {
	s := &Stack{
		Defaults: dto.DraftDefaults{
			Seller:  Seller(cfg.Shop),
			TaxRate: cfg.Shop.TaxRate,
		},
	}

	engines, err := Engines(cfg.Render, cfg.Shop.Name)
	if err != nil {
		return nil, err
	}
	for _, e := range engines {
		s.Engines = append(s.Engines, e.Name())
	}

	var renderOpts []billing.RenderOption
	var selectorOpts []render.SelectorOption

	// ── Métricas ─────────────────────────────────────────────────────────────
	if cfg.Metrics.Enabled {
		s.Registry = prometheus.NewRegistry()
		s.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m := metrics.New(s.Registry, cfg.Metrics.Namespace)
		selectorOpts = append(selectorOpts, render.WithObserver(m))
		renderOpts = append(renderOpts, billing.WithMetrics(m))
	}

	// ── Eventos ──────────────────────────────────────────────────────────────
	if cfg.NATS.URL != "" {
		nc, err := events.Connect(cfg.NATS.URL, cfg.App.Name, log)
		if err != nil {
			return nil, fmt.Errorf("app: nats: %w", err)
		}
		s.nc = nc
		renderOpts = append(renderOpts, billing.WithPublisher(events.NewPublisher(nc, cfg.NATS.Subject, log)))
	}

	// ── Catálogo y pedidos ───────────────────────────────────────────────────
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("app: postgres: %w", err)
		}
		s.pool = pool
		catalog := postgres.NewCatalogRepository(pool)
		orders := postgres.NewOrderRepository(pool)
		renderOpts = append(renderOpts, billing.WithRateResolver(billing.NewRateResolver(catalog, log)))
		s.Prepare = billing.NewPrepareDraftUseCase(orders, catalog, s.Defaults.Seller, cfg.Shop.TaxRate, log)
	}

	builder := invoice.NewBuilder(Bank(cfg.Shop), Regulatory(cfg.Shop), invoice.WithLogger(log))
	renderer := pdf.NewRenderer(log, pdf.WithTitle(cfg.Render.Title), pdf.WithTerms(cfg.Render.Terms))
	html := pdf.NewHTMLComposer(template.NewFSStore(cfg.Render.TemplateDir), cfg.Render.TemplateHTML, cfg.Render.TemplateCSS)
	selector := render.NewSelector(log, engines, selectorOpts...)

	s.Render = billing.NewRenderUseCase(builder, renderer, html, selector, cfg.Render.OutputDir, log, renderOpts...)
	return s, nil
}

// Engines construye los motores en el orden configurado.
func Engines(cfg config.RenderConfig, author string) ([]render.Engine, error) {
	out := make([]render.Engine, 0, len(cfg.Engines))
	seen := make(map[string]bool, len(cfg.Engines))
	for _, name := range cfg.Engines {
		name = strings.ToLower(strings.TrimSpace(name))
		if seen[name] {
			continue
		}
		seen[name] = true
		switch name {
		case EngineWkhtmltopdf:
			out = append(out, render.NewWkhtmltopdfEngine(cfg.WkhtmltopdfPath))
		case EngineChrome:
			out = append(out, render.NewChromeEngine(cfg.ChromePath, cfg.ChromeTimeout))
		case EngineMaroto:
			out = append(out, pdf.NewMarotoEngine(author))
		default:
			return nil, fmt.Errorf("%w: motor %q", domain.ErrInvalidInput, name)
		}
	}
	return out, nil
}

// Seller vendedor impreso en cada factura.
func Seller(c config.ShopConfig) entity.Party {
	return entity.Party{
		Name:      c.Name,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		StateCode: c.StateCode,
		Pincode:   c.Pincode,
		Phone:     c.Phone,
		Email:     c.Email,
		GSTIN:     c.GSTIN,
		PAN:       c.PAN,
	}
}

// Bank cuenta de liquidación de la tienda.
func Bank(c config.ShopConfig) entity.BankInfo {
	return entity.BankInfo{
		AccountName:   c.BankAccount,
		BankName:      c.BankName,
		Branch:        c.BankBranch,
		AccountNumber: c.BankAccountNo,
		IFSC:          c.BankIFSC,
		UPI:           c.BankUPI,
	}
}

// Regulatory registros de la tienda.
func Regulatory(c config.ShopConfig) entity.Regulatory {
	return entity.Regulatory{
		GSTIN:      c.GSTIN,
		PAN:        c.PAN,
		BISLicence: c.BISLicence,
		StateCode:  c.StateCode,
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/jhoicas/Joyeria-api/internal/application/billing"
	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RenderUC  *billing.RenderUseCase
	PrepareUC *billing.PrepareDraftUseCase // nil sin base de datos
	Defaults  dto.DraftDefaults
	JWTSecret string
	Limiter   *rate.Limiter       // nil = sin límite en renders
	Gatherer  prometheus.Gatherer // nil = sin /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	invoiceHandler := NewInvoiceHandler(deps.RenderUC, deps.PrepareUC, deps.Defaults)
	issuers := RequireRole(jwt.RoleAdmin, jwt.RoleSales)

	// Invoices: cualquier rol ve la vista previa; solo mostrador genera documentos
	invoices := protected.Group("/invoices")
	invoices.Post("/preview", invoiceHandler.Preview)
	invoices.Post("/render", issuers, Throttle(deps.Limiter), invoiceHandler.Render)

	// Orders
	orders := protected.Group("/orders")
	orders.Post("/:id/invoice", issuers, Throttle(deps.Limiter), invoiceHandler.RenderOrder)
}

package billing

import (
	"context"
	"time"

	"github.com/jhoicas/Joyeria-api/internal/infrastructure/render"
)

// DocumentWriter entrega el documento en disco: PDF con fallback entre motores
// o el par HTML+CSS. Lo implementa *render.Selector.
type DocumentWriter interface {
	Render(ctx context.Context, job *render.Job, path string) (render.Outcome, error)
	WriteHTML(ctx context.Context, htmlPath, html, cssPath, css string) (render.Outcome, error)
}

// InvoiceRendered evento publicado tras un render exitoso.
type InvoiceRendered struct {
	JobID      string    `json:"job_id"`
	Number     string    `json:"number"`
	OrderID    string    `json:"order_id,omitempty"`
	Format     string    `json:"format"`
	Engine     string    `json:"engine"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	Checksum   string    `json:"checksum"`
	NetAmount  string    `json:"net_amount"`
	RenderedAt time.Time `json:"rendered_at"`
}

// EventPublisher publica eventos de facturación. Un fallo al publicar no
// invalida el documento ya escrito.
type EventPublisher interface {
	PublishRendered(ctx context.Context, ev InvoiceRendered) error
}

// RenderMetrics registra la duración y el resultado de cada render.
type RenderMetrics interface {
	ObserveRender(format string, ok bool, elapsed time.Duration)
}

type nopPublisher struct{}

func (nopPublisher) PublishRendered(context.Context, InvoiceRendered) error { return nil }

type nopMetrics struct{}

func (nopMetrics) ObserveRender(string, bool, time.Duration) {}

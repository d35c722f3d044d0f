package billing

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/invoice"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/render"
)

// Format formato de salida del documento.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

// ParseFormat acepta "pdf" y "html" (vacío = pdf).
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatHTML:
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownFormat, s)
}

// RenderRequest destino del render. Path vacío escribe en el directorio de
// salida con el número de memo como nombre.
type RenderRequest struct {
	Format Format
	Path   string
}

// RenderResult factura construida y resultado de la escritura.
type RenderResult struct {
	JobID   string
	Invoice *entity.Invoice
	Outcome render.Outcome
	Err     error
}

// RenderUseCase construye la factura, la compone y la entrega en disco.
type RenderUseCase struct {
	builder   *invoice.Builder
	renderer  *pdf.Renderer
	html      *pdf.HTMLComposer
	writer    DocumentWriter
	rates     *RateResolver
	publisher EventPublisher
	metrics   RenderMetrics
	outDir    string
	log       zerolog.Logger
}

// RenderOption configura el RenderUseCase.
type RenderOption func(*RenderUseCase)

// WithRateResolver completa las tarifas que el draft no trae.
func WithRateResolver(r *RateResolver) RenderOption {
	return func(uc *RenderUseCase) { uc.rates = r }
}

// WithPublisher publica InvoiceRendered tras cada éxito.
func WithPublisher(p EventPublisher) RenderOption {
	return func(uc *RenderUseCase) { uc.publisher = p }
}

// WithMetrics registra duración y resultado.
func WithMetrics(m RenderMetrics) RenderOption {
	return func(uc *RenderUseCase) { uc.metrics = m }
}

// NewRenderUseCase construye el caso de uso.
func NewRenderUseCase(
	builder *invoice.Builder,
	renderer *pdf.Renderer,
	html *pdf.HTMLComposer,
	writer DocumentWriter,
	outDir string,
	log zerolog.Logger,
	opts ...RenderOption,
) *RenderUseCase {
	uc := &RenderUseCase{
		builder:   builder,
		renderer:  renderer,
		html:      html,
		writer:    writer,
		publisher: nopPublisher{},
		metrics:   nopMetrics{},
		outDir:    outDir,
		log:       log,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Preview construye la factura sin generar documento.
func (uc *RenderUseCase) Preview(ctx context.Context, d *entity.Draft) (*entity.Invoice, error) {
	d, err := uc.withRates(ctx, d)
	if err != nil {
		return nil, err
	}
	return uc.builder.Build(d)
}

// Render construye, compone y escribe el documento. Un error de entrada corta
// antes de componer; si todos los motores fallan el error es *render.FallbackError
// y el Outcome lleva el motivo.
func (uc *RenderUseCase) Render(ctx context.Context, d *entity.Draft, req RenderRequest) (RenderResult, error) {
	start := time.Now()
	format := req.Format
	if format == "" {
		format = FormatPDF
	}

	res, err := uc.render(ctx, d, format, req.Path)
	uc.metrics.ObserveRender(string(format), err == nil, time.Since(start))
	if err != nil {
		res.Err = err
		return res, err
	}

	uc.publish(ctx, res, format)
	return res, nil
}

// RenderAsync ejecuta Render en su propia goroutine. El canal recibe exactamente
// un resultado y se cierra.
func (uc *RenderUseCase) RenderAsync(ctx context.Context, d *entity.Draft, req RenderRequest) <-chan RenderResult {
	ch := make(chan RenderResult, 1)
	go func() {
		defer close(ch)
		res, err := uc.Render(ctx, d, req)
		res.Err = err
		ch <- res
	}()
	return ch
}

func (uc *RenderUseCase) render(ctx context.Context, d *entity.Draft, format Format, path string) (RenderResult, error) {
	if format != FormatPDF && format != FormatHTML {
		return RenderResult{}, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
	}

	inv, err := uc.Preview(ctx, d)
	if err != nil {
		return RenderResult{}, err
	}
	res := RenderResult{Invoice: inv}

	doc, err := uc.renderer.Compose(inv)
	if err != nil {
		return res, fmt.Errorf("render: componer: %w", err)
	}
	if path == "" {
		path = uc.defaultPath(inv, format)
	}
	cssPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".css"

	page, err := uc.html.Compose(ctx, inv, doc, filepath.Base(cssPath))
	if err != nil {
		return res, fmt.Errorf("render: html: %w", err)
	}

	logger := uc.log.With().Str("invoice", inv.MemoNumber()).Str("format", string(format)).Logger()
	switch format {
	case FormatHTML:
		res.Outcome, err = uc.writer.WriteHTML(ctx, path, page.Linked, cssPath, page.CSS)
	default:
		job := &render.Job{
			ID:       uuid.NewString(),
			Title:    doc.Title(),
			HTML:     page.Inline,
			Document: doc,
		}
		res.JobID = job.ID
		logger = logger.With().Str("job", job.ID).Logger()
		res.Outcome, err = uc.writer.Render(ctx, job, path)
	}
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("no se pudo generar el documento")
		return res, err
	}
	logger.Info().Str("engine", res.Outcome.Engine).Str("path", res.Outcome.Path).Msg("factura generada")
	return res, nil
}

func (uc *RenderUseCase) withRates(ctx context.Context, d *entity.Draft) (*entity.Draft, error) {
	if d == nil || uc.rates == nil || !missingRates(d.Items) {
		return d, nil
	}
	book, err := uc.rates.Resolve(ctx, d.Items, nil)
	if err != nil {
		return nil, err
	}
	cp := *d
	cp.Items = ApplyRates(d.Items, book)
	return &cp, nil
}

func missingRates(items []entity.ItemDraft) bool {
	for _, it := range items {
		if !it.RatePerGram.IsPositive() {
			return true
		}
	}
	return false
}

func (uc *RenderUseCase) publish(ctx context.Context, res RenderResult, format Format) {
	ev := InvoiceRendered{
		JobID:      res.JobID,
		Number:     res.Invoice.MemoNumber(),
		OrderID:    res.Invoice.OrderID,
		Format:     string(format),
		Engine:     res.Outcome.Engine,
		Path:       res.Outcome.Path,
		Size:       res.Outcome.Size,
		Checksum:   res.Outcome.Checksum,
		NetAmount:  res.Invoice.Totals.NetAmount.StringFixed(2),
		RenderedAt: time.Now().UTC(),
	}
	if err := uc.publisher.PublishRendered(ctx, ev); err != nil {
		uc.log.Warn().Err(err).Str("invoice", ev.Number).Msg("no se pudo publicar invoice.rendered")
	}
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func (uc *RenderUseCase) defaultPath(inv *entity.Invoice, format Format) string {
	name := unsafeFileChars.ReplaceAllString(inv.MemoNumber(), "_")
	if name == "" || name == "_" {
		name = "invoice"
	}
	return filepath.Join(uc.outDir, "invoice_"+name+"."+string(format))
}

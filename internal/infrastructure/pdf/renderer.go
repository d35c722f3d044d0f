package pdf

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/layout"
)

// Anchos del bloque a dos columnas: la mayoría para banco y cobro.
const (
	CompositeLeftWidth  = 7
	CompositeRightWidth = layout.GridColumns - CompositeLeftWidth
	compositePadding    = 2
)

// CompositeSection dos columnas compuestas en buffers aislados y colocadas como
// celdas con borde. Una sección omitida no cuenta; si ambas columnas quedan
// vacías el bloque completo se omite.
type CompositeSection struct {
	Left  []Section
	Right []Section
}

func (CompositeSection) Name() string { return "composite" }

func (c CompositeSection) Render(rc *RenderContext, sink layout.Sink) error {
	var left, right layout.Buffer
	leftContent, err := renderInto(rc, &left, c.Left)
	if err != nil {
		return err
	}
	rightContent, err := renderInto(rc, &right, c.Right)
	if err != nil {
		return err
	}
	if !leftContent && !rightContent {
		return ErrSkip
	}
	cells := []layout.Cell{
		{Width: CompositeLeftWidth, Bordered: true, Padding: compositePadding},
		{Width: CompositeRightWidth, Bordered: true, Padding: compositePadding},
	}
	if leftContent {
		cells[0].Elements = left.Elements()
	}
	if rightContent {
		cells[1].Elements = right.Elements()
	}
	return sink.Append(layout.Columns{Cells: cells})
}

// renderInto ejecuta las secciones en el buffer. Devuelve si alguna sección con
// datos propios escribió algo. Un divisor solo se dibuja entre dos secciones con
// contenido; al inicio, al final o junto a una sección omitida no aparece.
func renderInto(rc *RenderContext, buf *layout.Buffer, sections []Section) (bool, error) {
	content := false
	var divider Section
	for _, s := range sections {
		if _, ok := s.(DividerSection); ok {
			if content {
				divider = s
			}
			continue
		}

		var part layout.Buffer
		err := s.Render(rc, &part)
		if errors.Is(err, ErrSkip) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("sección %s: %w", s.Name(), err)
		}
		if part.Len() == 0 {
			continue
		}
		if divider != nil {
			if err := divider.Render(rc, buf); err != nil {
				return false, fmt.Errorf("sección %s: %w", divider.Name(), err)
			}
			divider = nil
		}
		for _, el := range part.Elements() {
			if err := buf.Append(el); err != nil {
				return false, fmt.Errorf("sección %s: %w", s.Name(), err)
			}
		}
		content = true
	}
	return content, nil
}

// DefaultSections orden fijo del documento:
// cabecera → partes → piezas → [banco, separador, cobro ‖ cambio, impuestos] → totales.
func DefaultSections() []Section {
	return []Section{
		HeaderSection{},
		PartiesSection{},
		ItemsSection{},
		CompositeSection{
			Left:  []Section{BankSection{}, DividerSection{}, PaymentSection{}},
			Right: []Section{ExchangeSection{}, TaxSummarySection{}},
		},
		TotalsSection{},
	}
}

// Renderer ejecuta las secciones sobre un Flow y devuelve el documento cerrado.
type Renderer struct {
	sections []Section
	title    string
	terms    []string
	log      zerolog.Logger
}

// RendererOption configura el Renderer.
type RendererOption func(*Renderer)

// WithSections reemplaza el orden por defecto (tests).
func WithSections(s ...Section) RendererOption {
	return func(r *Renderer) { r.sections = s }
}

// WithTitle título impreso en la cabecera.
func WithTitle(t string) RendererOption {
	return func(r *Renderer) { r.title = t }
}

// WithTerms condiciones impresas al pie.
func WithTerms(terms []string) RendererOption {
	return func(r *Renderer) { r.terms = append([]string(nil), terms...) }
}

// NewRenderer crea el renderizador con las secciones por defecto.
func NewRenderer(log zerolog.Logger, opts ...RendererOption) *Renderer {
	r := &Renderer{sections: DefaultSections(), title: "TAX INVOICE", log: log}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Compose renderiza la factura. Una sección que devuelve ErrSkip se omite; cualquier
// otro error aborta el documento completo.
func (r *Renderer) Compose(inv *entity.Invoice) (*layout.Document, error) {
	if inv == nil {
		return nil, errors.New("pdf: factura nula")
	}
	rc := &RenderContext{Invoice: inv, Title: r.title, Terms: r.terms}

	flow := NewFlow("Invoice " + inv.MemoNumber())
	if err := flow.Open(); err != nil {
		return nil, err
	}
	for _, s := range r.sections {
		err := s.Render(rc, flow)
		if errors.Is(err, ErrSkip) {
			r.log.Debug().Str("invoice", inv.Number).Str("section", s.Name()).Msg("sección omitida")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("pdf: sección %s: %w", s.Name(), err)
		}
	}
	return flow.Close()
}

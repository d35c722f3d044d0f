package pdf

import (
	"errors"

	"github.com/jhoicas/Joyeria-api/internal/infrastructure/layout"
)

// PageMargin margen fijo de la factura en mm, igual en los cuatro lados.
const PageMargin = 5

var (
	ErrFlowNotOpen = errors.New("pdf: el flujo de página no está abierto")
	ErrFlowClosed  = errors.New("pdf: el flujo de página ya está cerrado")
)

type flowState int

const (
	flowUnopened flowState = iota
	flowOpen
	flowClosed
)

func (s flowState) String() string {
	switch s {
	case flowUnopened:
		return "unopened"
	case flowOpen:
		return "open"
	default:
		return "closed"
	}
}

// Flow contexto de flujo de página de un único render:
//
//	Unopened ──Open──▶ Open ──Close──▶ Closed
//
// Solo acepta elementos en Open. Close funciona una vez y entrega el
// layout.Document inmutable.
type Flow struct {
	page  layout.Page
	title string
	state flowState
	buf   layout.Buffer
}

var _ layout.Sink = (*Flow)(nil)

// NewFlow crea un flujo A4 con márgenes de PageMargin mm.
func NewFlow(title string) *Flow {
	return &Flow{page: layout.A4(PageMargin), title: title}
}

// Open habilita los Append.
func (f *Flow) Open() error {
	switch f.state {
	case flowOpen:
		return errors.New("pdf: el flujo ya está abierto")
	case flowClosed:
		return ErrFlowClosed
	}
	f.state = flowOpen
	return nil
}

// Append añade el elemento al final del flujo.
func (f *Flow) Append(el layout.Element) error {
	switch f.state {
	case flowUnopened:
		return ErrFlowNotOpen
	case flowClosed:
		return ErrFlowClosed
	}
	return f.buf.Append(el)
}

// Close congela el flujo. Un segundo Close devuelve ErrFlowClosed.
func (f *Flow) Close() (*layout.Document, error) {
	switch f.state {
	case flowUnopened:
		return nil, ErrFlowNotOpen
	case flowClosed:
		return nil, ErrFlowClosed
	}
	f.state = flowClosed
	return layout.NewDocument(f.page, f.title, f.buf.Elements()), nil
}

// State estado actual, para logs.
func (f *Flow) State() string { return f.state.String() }

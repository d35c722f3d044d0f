package pdf

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/layout"
	"github.com/jhoicas/Joyeria-api/pkg/inr"
)

// ErrSkip la sección no tiene datos opcionales que mostrar. El renderizador la
// omite sin error.
var ErrSkip = errors.New("pdf: sección sin datos")

// RenderContext lo que las secciones pueden leer. Solo lectura.
type RenderContext struct {
	Invoice *entity.Invoice
	Title   string   // "TAX INVOICE"
	Terms   []string // condiciones impresas al pie
}

// Section unidad de render independiente y sin estado. Escribe solo en el sink
// recibido: la página o el buffer de una columna.
type Section interface {
	Name() string
	Render(rc *RenderContext, sink layout.Sink) error
}

// appendAll añade en orden y corta en el primer error.
func appendAll(sink layout.Sink, els ...layout.Element) error {
	for _, el := range els {
		if err := sink.Append(el); err != nil {
			return err
		}
	}
	return nil
}

// ── helpers de formato ────────────────────────────────────────────────────────

// Un cases.Caser guarda estado: se crea uno por llamada.
func upperCase(s string) string { return cases.Upper(language.English).String(s) }

func titleCase(s string) string { return cases.Title(language.English).String(s) }

func money(d decimal.Decimal) string { return inr.Format(d, true) }

func weight(d decimal.Decimal) string { return d.StringFixed(3) }

func percent(d decimal.Decimal) string { return d.String() + "%" }

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// joinNonEmpty une las partes no vacías con sep.
func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// labelled "Etiqueta: valor" o "" si el valor está vacío.
func labelled(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + ": " + value
}

func heading(s string) layout.Text {
	return layout.Text{Content: s, Style: layout.Style{Bold: true, Size: 9, Tone: layout.ToneAccent}}
}

func muted(s string) layout.Text {
	return layout.Text{Content: s, Style: layout.Style{Size: 8, Tone: layout.ToneMuted}}
}

// Package pdf compone la factura de joyería en primitivas de layout y la dibuja
// directamente con Maroto v2 cuando los motores HTML no están disponibles.
//
// Layout de la página A4 (márgenes de 5 mm):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Vendedor + GSTIN/PAN/BIS │ TAX INVOICE + Memo/Fecha │
//	│  PARTES: Bill To (comprador)                                 │
//	│  TABLA: Item | Purity | Qty | Wt | Rate | Making | GST | Amt │
//	│  ┌──────────────────────────────┬──────────────────────────┐ │
//	│  │ Banco ─── Cobro          7/12 │ Cambio + Impuestos  5/12 │ │
//	│  └──────────────────────────────┴──────────────────────────┘ │
//	│  TOTALES: neto, importe en letras, condiciones, firma        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Joyeria-api/internal/infrastructure/layout"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/render"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 122, Green: 84, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorLight   = &props.Color{Red: 245, Green: 238, Blue: 224}
)

const (
	defaultFontSize = 9
	tableFontSize   = 7.5
	kvHeight        = 5
)

// ── Engine ────────────────────────────────────────────────────────────────────

// MarotoEngine dibuja el layout.Document página a página. No necesita binarios
// externos: es el último recurso del selector.
type MarotoEngine struct {
	author string
}

var _ render.Engine = (*MarotoEngine)(nil)

// NewMarotoEngine construye el motor. author va a los metadatos del PDF.
func NewMarotoEngine(author string) *MarotoEngine { return &MarotoEngine{author: author} }

func (e *MarotoEngine) Name() string { return "maroto" }

// Render ignora el HTML del trabajo y dibuja su documento.
func (e *MarotoEngine) Render(ctx context.Context, job *render.Job) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if job == nil || job.Document == nil {
		return nil, errors.New("maroto: el trabajo no trae documento")
	}
	return e.Draw(job.Document)
}

// Draw genera el PDF y devuelve sus bytes.
func (e *MarotoEngine) Draw(doc *layout.Document) ([]byte, error) {
	page := doc.Page()
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(page.MarginLeft).WithRightMargin(page.MarginRight).
		WithTopMargin(page.MarginTop).WithBottomMargin(page.MarginBottom).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: defaultFontSize}).
		WithTitle(doc.Title(), true).
		WithAuthor(e.author, true).
		Build()

	m := maroto.New(cfg)
	d := drawer{width: page.Width - page.MarginLeft - page.MarginRight}
	for _, el := range doc.Elements() {
		rows, err := d.rows(el)
		if err != nil {
			return nil, err
		}
		m.AddRows(rows...)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("maroto: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Conversión de elementos a filas ───────────────────────────────────────────

// drawer conoce el ancho útil de la página en mm.
type drawer struct {
	width float64
}

func (d drawer) rows(el layout.Element) ([]core.Row, error) {
	switch e := el.(type) {
	case layout.Text:
		return []core.Row{d.textRow(e)}, nil
	case layout.KeyValue:
		return []core.Row{kvRow(e)}, nil
	case layout.Table:
		return d.tableRows(e), nil
	case layout.Rule:
		return []core.Row{line.NewRow(1, props.Line{Color: colorPrimary, Thickness: thickness(e)})}, nil
	case layout.Spacer:
		return []core.Row{row.New(e.Height)}, nil
	case layout.Columns:
		return []core.Row{d.columnsRow(e)}, nil
	}
	return nil, fmt.Errorf("maroto: %w: %T", layout.ErrMalformed, el)
}

func (d drawer) textRow(t layout.Text) core.Row {
	p := textProps(t.Style)
	p.Top = 1
	h := wrapLines(t.Content, d.width, p.Size)*lineHeight(p.Size) + 2
	return row.New(h).Add(col.New(layout.GridColumns).Add(text.New(t.Content, p)))
}

func kvRow(kv layout.KeyValue) core.Row {
	return row.New(kvHeight).Add(col.New(layout.GridColumns).Add(kvComponents(kv, 1, 0)...))
}

// tableRows cabecera con fondo, una fila por registro y pie opcional.
func (d drawer) tableRows(t layout.Table) []core.Row {
	used := 0
	for _, c := range t.Columns {
		used += c.Width
	}

	header := make([]core.Col, 0, len(t.Columns)+1)
	for _, c := range t.Columns {
		header = append(header, col.New(c.Width).Add(text.New(c.Title, props.Text{
			Style: fontstyle.Bold, Size: tableFontSize, Align: alignOf(c.Align),
			Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	header = pad(header, used)

	out := []core.Row{row.New(7).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(header...)}
	for _, r := range t.Rows {
		out = append(out, d.tableRow(t.Columns, r, used, false))
	}
	if t.Footer != nil {
		out = append(out, d.tableRow(t.Columns, t.Footer, used, true).WithStyle(&props.Cell{BackgroundColor: colorLight}))
	}
	return out
}

func (d drawer) tableRow(cols []layout.Column, cells []string, used int, bold bool) core.Row {
	lines := 1.0
	out := make([]core.Col, 0, len(cols)+1)
	for i, c := range cols {
		p := props.Text{Size: tableFontSize, Align: alignOf(c.Align), Top: 1, Left: 1, Right: 1}
		if bold {
			p.Style = fontstyle.Bold
		}
		lines = math.Max(lines, wrapLines(cells[i], d.width*float64(c.Width)/layout.GridColumns-2, tableFontSize))
		out = append(out, col.New(c.Width).Add(text.New(cells[i], p)))
	}
	return row.New(lines*lineHeight(tableFontSize) + 2).Add(pad(out, used)...)
}

// columnsRow apila el contenido de cada celda con offsets verticales. Las líneas
// se colocan al final porque su posición es un porcentaje del alto de la fila.
func (d drawer) columnsRow(c layout.Columns) core.Row {
	type pendingLine struct {
		at   float64
		rule layout.Rule
	}
	type stacked struct {
		comps  []core.Component
		lines  []pendingLine
		height float64
	}

	cells := make([]stacked, len(c.Cells))
	height := 0.0
	for i, cell := range c.Cells {
		inner := d.width*float64(cell.Width)/layout.GridColumns - 2*cell.Padding
		y := cell.Padding
		var s stacked
		for _, el := range cell.Elements {
			switch e := el.(type) {
			case layout.Text:
				p := textProps(e.Style)
				p.Top, p.Left, p.Right = y, cell.Padding, cell.Padding
				s.comps = append(s.comps, text.New(e.Content, p))
				y += wrapLines(e.Content, inner, p.Size)*lineHeight(p.Size) + 1
			case layout.KeyValue:
				s.comps = append(s.comps, kvComponents(e, y, cell.Padding)...)
				y += kvHeight
			case layout.Rule:
				s.lines = append(s.lines, pendingLine{at: y + 1, rule: e})
				y += 2
			case layout.Spacer:
				y += e.Height
			case layout.Table:
				comps, h := cellTable(e, inner, y, cell.Padding)
				s.comps = append(s.comps, comps...)
				y += h
			}
		}
		s.height = y + cell.Padding
		height = math.Max(height, s.height)
		cells[i] = s
	}

	cols := make([]core.Col, 0, len(c.Cells))
	for i, cell := range c.Cells {
		comps := cells[i].comps
		for _, pl := range cells[i].lines {
			comps = append(comps, line.New(props.Line{
				Color:         colorGray,
				Thickness:     thickness(pl.rule),
				OffsetPercent: pl.at / height * 100,
				SizePercent:   95,
			}))
		}
		cl := col.New(cell.Width).Add(comps...)
		if cell.Bordered {
			cl = cl.WithStyle(&props.Cell{BorderType: border.Full, BorderColor: colorGray, BorderThickness: 0.2})
		}
		cols = append(cols, cl)
	}
	return row.New(height).Add(cols...)
}

// cellTable dibuja una tabla dentro de una celda desplazando cada columna con
// Left/Right, ya que una celda no admite sub-columnas.
func cellTable(t layout.Table, inner, top, padding float64) ([]core.Component, float64) {
	used := 0
	for _, c := range t.Columns {
		used += c.Width
	}
	lh := lineHeight(tableFontSize) + 1
	var comps []core.Component
	put := func(cells []string, y float64, bold bool) {
		x := 0.0
		for i, c := range t.Columns {
			w := inner * float64(c.Width) / float64(used)
			p := props.Text{
				Size: tableFontSize, Align: alignOf(c.Align), Top: y,
				Left: padding + x, Right: padding + inner - x - w,
			}
			if bold {
				p.Style = fontstyle.Bold
			}
			comps = append(comps, text.New(cells[i], p))
			x += w
		}
	}

	titles := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		titles[i] = c.Title
	}
	y := top
	put(titles, y, true)
	y += lh
	for _, r := range t.Rows {
		put(r, y, false)
		y += lh
	}
	if t.Footer != nil {
		put(t.Footer, y, true)
		y += lh
	}
	return comps, y - top
}

// ── helpers ───────────────────────────────────────────────────────────────────

func kvComponents(kv layout.KeyValue, top, side float64) []core.Component {
	p := props.Text{Size: 8.5, Top: top, Left: side}
	v := props.Text{Size: 8.5, Top: top, Right: side, Align: align.Right}
	if kv.Emphasis {
		p.Style, v.Style = fontstyle.Bold, fontstyle.Bold
		p.Color, v.Color = colorPrimary, colorPrimary
	}
	return []core.Component{text.New(kv.Label, p), text.New(kv.Value, v)}
}

func textProps(s layout.Style) props.Text {
	p := props.Text{Size: s.Size, Align: alignOf(s.Align)}
	if p.Size == 0 {
		p.Size = defaultFontSize
	}
	switch {
	case s.Bold && s.Italic:
		p.Style = fontstyle.BoldItalic
	case s.Bold:
		p.Style = fontstyle.Bold
	case s.Italic:
		p.Style = fontstyle.Italic
	}
	switch s.Tone {
	case layout.ToneAccent:
		p.Color = colorPrimary
	case layout.ToneMuted:
		p.Color = colorGray
	}
	return p
}

func alignOf(a layout.Align) align.Type {
	switch a {
	case layout.AlignCenter:
		return align.Center
	case layout.AlignRight:
		return align.Right
	}
	return align.Left
}

func thickness(r layout.Rule) float64 {
	if r.Thickness <= 0 {
		return 0.2
	}
	return r.Thickness
}

// pad completa la rejilla con una columna vacía.
func pad(cols []core.Col, used int) []core.Col {
	if used < layout.GridColumns {
		cols = append(cols, col.New(layout.GridColumns-used))
	}
	return cols
}

// lineHeight alto de una línea de texto en mm para un tamaño en puntos.
func lineHeight(size float64) float64 { return size * 0.45 }

// wrapLines estima cuántas líneas ocupa s en un ancho dado (helvetica ≈ 0.18·size mm por carácter).
func wrapLines(s string, widthMM, size float64) float64 {
	perLine := int(widthMM / (size * 0.18))
	if perLine < 1 {
		perLine = 1
	}
	lines := 0
	for _, part := range strings.Split(s, "\n") {
		n := utf8.RuneCountInString(part)
		lines += max(1, (n+perLine-1)/perLine)
	}
	return float64(lines)
}

package pdf

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/layout"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/template"
)

// HTMLPage salida HTML de un documento. Inline lleva el CSS en <style> y es la
// entrada de los motores HTML→PDF; Linked enlaza la hoja por nombre para el
// modo de salida HTML+CSS.
type HTMLPage struct {
	Inline string
	Linked string
	CSS    string
}

// HTMLComposer vuelca un layout.Document en la plantilla HTML del store.
type HTMLComposer struct {
	store      repository.TemplateStore
	page       string
	stylesheet string
}

// NewHTMLComposer usa las plantillas page y stylesheet del store.
func NewHTMLComposer(store repository.TemplateStore, page, stylesheet string) *HTMLComposer {
	return &HTMLComposer{store: store, page: page, stylesheet: stylesheet}
}

// Compose resuelve las plantillas y sustituye los marcadores. cssHref es el
// nombre con el que Linked referencia la hoja de estilo.
func (c *HTMLComposer) Compose(ctx context.Context, inv *entity.Invoice, doc *layout.Document, cssHref string) (HTMLPage, error) {
	page, err := c.store.HTML(ctx, c.page)
	if err != nil {
		return HTMLPage{}, fmt.Errorf("html: plantilla: %w", err)
	}
	css, err := c.store.Stylesheet(ctx, c.stylesheet)
	if err != nil {
		return HTMLPage{}, fmt.Errorf("html: hoja de estilo: %w", err)
	}

	values := map[string]string{
		"TITLE":        html.EscapeString(doc.Title()),
		"BODY":         BodyHTML(doc),
		"INVOICE_NO":   html.EscapeString(inv.MemoNumber()),
		"SELLER":       html.EscapeString(inv.Seller.Name),
		"GENERATED_AT": inv.GeneratedAt.Format(time.RFC3339),
	}

	values["STYLESHEET"] = "<style>\n" + css + "\n</style>"
	inline, err := template.Substitute(page, values)
	if err != nil {
		return HTMLPage{}, fmt.Errorf("html: %w", err)
	}
	values["STYLESHEET"] = `<link rel="stylesheet" href="` + html.EscapeString(cssHref) + `">`
	linked, err := template.Substitute(page, values)
	if err != nil {
		return HTMLPage{}, fmt.Errorf("html: %w", err)
	}
	return HTMLPage{Inline: inline, Linked: linked, CSS: css}, nil
}

// BodyHTML convierte los elementos en HTML. Los bloques a columnas se emiten
// como tablas porque wkhtmltopdf no soporta flexbox.
func BodyHTML(doc *layout.Document) string {
	var b strings.Builder
	for _, el := range doc.Elements() {
		writeElement(&b, el)
	}
	return b.String()
}

func writeElement(b *strings.Builder, el layout.Element) {
	switch e := el.(type) {
	case layout.Text:
		classes := []string{"t", "a-" + string(alignOrLeft(e.Style.Align))}
		if e.Style.Bold {
			classes = append(classes, "b")
		}
		if e.Style.Italic {
			classes = append(classes, "i")
		}
		if e.Style.Tone != layout.ToneNormal {
			classes = append(classes, "tone-"+string(e.Style.Tone))
		}
		style := ""
		if e.Style.Size > 0 {
			style = fmt.Sprintf(` style="font-size:%gpt"`, e.Style.Size)
		}
		content := strings.ReplaceAll(html.EscapeString(e.Content), "\n", "<br>")
		fmt.Fprintf(b, `<p class="%s"%s>%s</p>`+"\n", strings.Join(classes, " "), style, content)

	case layout.KeyValue:
		class := "kv"
		if e.Emphasis {
			class += " em"
		}
		fmt.Fprintf(b, `<div class="%s"><span class="k">%s</span><span class="v">%s</span></div>`+"\n",
			class, html.EscapeString(e.Label), html.EscapeString(e.Value))

	case layout.Table:
		used := 0
		for _, c := range e.Columns {
			used += c.Width
		}
		b.WriteString(`<table class="items"><colgroup>`)
		for _, c := range e.Columns {
			fmt.Fprintf(b, `<col style="width:%.2f%%">`, float64(c.Width)*100/float64(used))
		}
		b.WriteString("</colgroup>\n<thead><tr>")
		for _, c := range e.Columns {
			fmt.Fprintf(b, `<th class="a-%s">%s</th>`, alignOrLeft(c.Align), html.EscapeString(c.Title))
		}
		b.WriteString("</tr></thead>\n<tbody>\n")
		for _, r := range e.Rows {
			writeTableRow(b, e.Columns, r)
		}
		b.WriteString("</tbody>\n")
		if e.Footer != nil {
			b.WriteString("<tfoot>")
			writeTableRow(b, e.Columns, e.Footer)
			b.WriteString("</tfoot>\n")
		}
		b.WriteString("</table>\n")

	case layout.Rule:
		fmt.Fprintf(b, `<hr style="border-top-width:%gmm">`+"\n", thickness(e))

	case layout.Spacer:
		fmt.Fprintf(b, `<div style="height:%gmm"></div>`+"\n", e.Height)

	case layout.Columns:
		b.WriteString(`<table class="cols"><tr>` + "\n")
		for _, cell := range e.Cells {
			class := "cell"
			if cell.Bordered {
				class += " bordered"
			}
			fmt.Fprintf(b, `<td class="%s" style="width:%.2f%%;padding:%gmm">`+"\n",
				class, float64(cell.Width)*100/layout.GridColumns, cell.Padding)
			for _, inner := range cell.Elements {
				writeElement(b, inner)
			}
			b.WriteString("</td>\n")
		}
		b.WriteString("</tr></table>\n")
	}
}

func writeTableRow(b *strings.Builder, cols []layout.Column, cells []string) {
	b.WriteString("<tr>")
	for i, c := range cols {
		fmt.Fprintf(b, `<td class="a-%s">%s</td>`, alignOrLeft(c.Align), html.EscapeString(cells[i]))
	}
	b.WriteString("</tr>\n")
}

func alignOrLeft(a layout.Align) layout.Align {
	if a == "" {
		return layout.AlignLeft
	}
	return a
}

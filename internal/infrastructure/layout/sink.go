package layout

// Sink destino de solo-añadir para elementos. Las secciones escriben aquí sin
// saber si es la página o un buffer de columna.
type Sink interface {
	Append(el Element) error
}

// Buffer sink en memoria para componer una región antes de colocarla.
type Buffer struct {
	elements []Element
}

// Append valida y acumula el elemento.
func (b *Buffer) Append(el Element) error {
	if err := Validate(el); err != nil {
		return err
	}
	b.elements = append(b.elements, el)
	return nil
}

// Elements copia de lo acumulado.
func (b *Buffer) Elements() []Element {
	return append([]Element(nil), b.elements...)
}

// Len número de elementos acumulados.
func (b *Buffer) Len() int { return len(b.elements) }

// Page geometría de página en mm.
type Page struct {
	Width        float64
	Height       float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64
}

// A4 página A4 vertical con el mismo margen en los cuatro lados.
func A4(margin float64) Page {
	return Page{
		Width:        210,
		Height:       297,
		MarginTop:    margin,
		MarginRight:  margin,
		MarginBottom: margin,
		MarginLeft:   margin,
	}
}

// Document resultado inmutable de un render: página, título y elementos en orden.
type Document struct {
	page     Page
	title    string
	elements []Element
}

// NewDocument congela los elementos recibidos.
func NewDocument(page Page, title string, elements []Element) *Document {
	return &Document{
		page:     page,
		title:    title,
		elements: append([]Element(nil), elements...),
	}
}

func (d *Document) Page() Page    { return d.page }
func (d *Document) Title() string { return d.title }
func (d *Document) Len() int      { return len(d.elements) }

// Elements copia de los elementos en orden.
func (d *Document) Elements() []Element {
	return append([]Element(nil), d.elements...)
}

// Package layout define las primitivas de maquetación que las secciones de la
// factura emiten y que cada motor de salida (maroto, HTML) sabe dibujar.
package layout

import (
	"errors"
	"fmt"
)

// GridColumns ancho total de la rejilla, igual que maroto.
const GridColumns = 12

// ErrMalformed elemento que ningún motor puede dibujar.
var ErrMalformed = errors.New("elemento de maquetación mal formado")

// Align alineación horizontal.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Tone color semántico; cada motor decide el color real.
type Tone string

const (
	ToneNormal Tone = ""
	ToneMuted  Tone = "muted"
	ToneAccent Tone = "accent"
)

// Style estilo de un bloque de texto. Size en puntos; 0 usa el tamaño por defecto.
type Style struct {
	Bold   bool
	Italic bool
	Size   float64
	Align  Align
	Tone   Tone
}

// Element primitiva dibujable. Conjunto cerrado: Text, KeyValue, Table, Rule,
// Spacer y Columns.
type Element interface {
	element()
}

// Text bloque de texto de una línea lógica.
type Text struct {
	Content string
	Style   Style
}

// KeyValue etiqueta a la izquierda y valor alineado a la derecha.
type KeyValue struct {
	Label    string
	Value    string
	Emphasis bool
}

// Column cabecera de tabla. Width en columnas de la rejilla.
type Column struct {
	Title string
	Width int
	Align Align
}

// Table filas de texto bajo cabeceras fijas. Footer es opcional.
type Table struct {
	Columns []Column
	Rows    [][]string
	Footer  []string
}

// Rule línea horizontal de ancho completo.
type Rule struct {
	Thickness float64
}

// Spacer espacio vertical en mm.
type Spacer struct {
	Height float64
}

// Cell celda de un bloque a columnas.
type Cell struct {
	Width    int
	Elements []Element
	Bordered bool
	Padding  float64 // mm
}

// Columns celdas lado a lado; los anchos suman GridColumns.
type Columns struct {
	Cells []Cell
}

func (Text) element()     {}
func (KeyValue) element() {}
func (Table) element()    {}
func (Rule) element()     {}
func (Spacer) element()   {}
func (Columns) element()  {}

// Validate comprueba que el elemento se pueda dibujar.
func Validate(el Element) error {
	switch e := el.(type) {
	case nil:
		return fmt.Errorf("%w: elemento nulo", ErrMalformed)
	case Table:
		if len(e.Columns) == 0 {
			return fmt.Errorf("%w: tabla sin columnas", ErrMalformed)
		}
		width := 0
		for _, c := range e.Columns {
			if c.Width <= 0 {
				return fmt.Errorf("%w: columna %q sin ancho", ErrMalformed, c.Title)
			}
			width += c.Width
		}
		if width > GridColumns {
			return fmt.Errorf("%w: la tabla ocupa %d columnas", ErrMalformed, width)
		}
		for i, row := range e.Rows {
			if len(row) != len(e.Columns) {
				return fmt.Errorf("%w: fila %d con %d celdas, se esperaban %d", ErrMalformed, i, len(row), len(e.Columns))
			}
		}
		if e.Footer != nil && len(e.Footer) != len(e.Columns) {
			return fmt.Errorf("%w: pie con %d celdas", ErrMalformed, len(e.Footer))
		}
	case Columns:
		width := 0
		for _, c := range e.Cells {
			if c.Width <= 0 {
				return fmt.Errorf("%w: celda sin ancho", ErrMalformed)
			}
			width += c.Width
			for _, inner := range c.Elements {
				if _, nested := inner.(Columns); nested {
					return fmt.Errorf("%w: columnas anidadas", ErrMalformed)
				}
				if err := Validate(inner); err != nil {
					return err
				}
			}
		}
		if width != GridColumns {
			return fmt.Errorf("%w: las celdas suman %d columnas", ErrMalformed, width)
		}
	case Spacer:
		if e.Height < 0 {
			return fmt.Errorf("%w: espacio negativo", ErrMalformed)
		}
	}
	return nil
}

// Package render entrega el documento de una factura como archivo verificado:
// prueba los motores en orden, escribe de forma atómica y comprueba lo escrito.
package render

import (
	"context"

	"github.com/jhoicas/Joyeria-api/internal/infrastructure/layout"
)

// Job entrada idéntica para todos los motores. Los motores HTML usan HTML
// (con el CSS ya incrustado); el de dibujo directo usa Document.
type Job struct {
	ID       string
	Title    string
	HTML     string
	Document *layout.Document
}

// Engine motor de salida intercambiable.
type Engine interface {
	Name() string
	Render(ctx context.Context, job *Job) ([]byte, error)
}

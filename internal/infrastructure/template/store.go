package template

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

//go:embed assets/*.html assets/*.css
var assets embed.FS

// Nombres de la plantilla y hoja de estilo incluidas en el binario.
const (
	DefaultHTML       = "invoice.html"
	DefaultStylesheet = "invoice.css"
)

// FSStore busca primero en un directorio opcional y después en las plantillas
// embebidas, de modo que un despliegue puede sobrescribir solo la hoja de estilo.
type FSStore struct {
	layers []fs.FS
}

var _ repository.TemplateStore = (*FSStore)(nil)

// NewFSStore crea el store. Con dir vacío solo se usan las plantillas embebidas.
func NewFSStore(dir string) *FSStore {
	embedded, _ := fs.Sub(assets, "assets")
	s := &FSStore{}
	if dir != "" {
		s.layers = append(s.layers, os.DirFS(dir))
	}
	s.layers = append(s.layers, embedded)
	return s
}

// NewStoreFromFS usa fsys como única fuente (tests).
func NewStoreFromFS(fsys fs.FS) *FSStore {
	return &FSStore{layers: []fs.FS{fsys}}
}

func (s *FSStore) HTML(ctx context.Context, name string) (string, error) {
	return s.read(ctx, name)
}

func (s *FSStore) Stylesheet(ctx context.Context, name string) (string, error) {
	return s.read(ctx, name)
}

func (s *FSStore) read(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean := path.Clean(name)
	if !fs.ValidPath(clean) {
		return "", fmt.Errorf("template %q: %w", name, domain.ErrInvalidInput)
	}
	for _, layer := range s.layers {
		b, err := fs.ReadFile(layer, clean)
		if err == nil {
			return string(b), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("template %q: %w", name, err)
		}
	}
	return "", fmt.Errorf("template %q: %w", name, domain.ErrNotFound)
}

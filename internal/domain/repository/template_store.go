package repository

import "context"

// TemplateStore resuelve plantillas HTML y hojas de estilo por nombre. La
// sustitución de {{TOKEN}} la hace el renderizador, no el store.
type TemplateStore interface {
	HTML(ctx context.Context, name string) (string, error)
	Stylesheet(ctx context.Context, name string) (string, error)
}

package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
	ErrConflict      = errors.New("conflicto con el estado actual")
	ErrRenderFailed  = errors.New("no se pudo generar el documento")
	ErrUnknownFormat = errors.New("formato de salida desconocido")
)

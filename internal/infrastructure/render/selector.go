package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Joyeria-api/internal/domain"
)

// Attempt intento fallido de un motor.
type Attempt struct {
	Engine string
	Err    error
}

// FallbackError todos los motores fallaron. Nombra cada motor con su error.
type FallbackError struct {
	Attempts []Attempt
}

func (e *FallbackError) Error() string {
	if len(e.Attempts) == 0 {
		return "render: no hay motores configurados"
	}
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = a.Engine + ": " + a.Err.Error()
	}
	return "render: todos los motores fallaron: " + strings.Join(parts, "; ")
}

// Unwrap expone los errores de cada intento a errors.Is / errors.As.
func (e *FallbackError) Unwrap() []error {
	errs := make([]error, len(e.Attempts))
	for i, a := range e.Attempts {
		errs[i] = a.Err
	}
	return errs
}

// Is hace que un FallbackError sea también domain.ErrRenderFailed.
func (e *FallbackError) Is(target error) bool { return target == domain.ErrRenderFailed }

// Outcome resultado visible para quien pidió el render.
type Outcome struct {
	OK       bool      `json:"ok"`
	Path     string    `json:"path,omitempty"`
	Engine   string    `json:"engine,omitempty"`
	Size     int64     `json:"size,omitempty"`
	Checksum string    `json:"checksum,omitempty"`
	Reason   string    `json:"reason,omitempty"`
	Attempts []Attempt `json:"-"`
}

// Observer recibe cada intento (métricas).
type Observer interface {
	ObserveAttempt(engine string, err error, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveAttempt(string, error, time.Duration) {}

// Selector prueba los motores en orden con el mismo Job hasta que uno produce
// un archivo verificado.
type Selector struct {
	engines  []Engine
	writer   FileWriter
	observer Observer
	log      zerolog.Logger
}

// SelectorOption configura el Selector.
type SelectorOption func(*Selector)

// WithWriter reemplaza la escritura atómica (tests).
func WithWriter(w FileWriter) SelectorOption {
	return func(s *Selector) { s.writer = w }
}

// WithObserver registra cada intento.
func WithObserver(o Observer) SelectorOption {
	return func(s *Selector) { s.observer = o }
}

// NewSelector crea el selector con los motores en orden de preferencia.
func NewSelector(log zerolog.Logger, engines []Engine, opts ...SelectorOption) *Selector {
	s := &Selector{
		engines:  append([]Engine(nil), engines...),
		writer:   AtomicWriter{},
		observer: nopObserver{},
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engines nombres de los motores en orden.
func (s *Selector) Engines() []string {
	names := make([]string, len(s.engines))
	for i, e := range s.engines {
		names[i] = e.Name()
	}
	return names
}

// Render escribe el documento en path. Cada fallo (error del motor, bytes vacíos,
// escritura o verificación) pasa al siguiente motor. Si todos fallan devuelve
// *FallbackError, no queda archivo nuevo en path y un documento previo se
// conserva.
func (s *Selector) Render(ctx context.Context, job *Job, path string) (Outcome, error) {
	if job == nil {
		return Outcome{Path: path, Reason: "trabajo nulo"}, fmt.Errorf("render: %w: trabajo nulo", domain.ErrInvalidInput)
	}
	logger := s.log.With().Str("job", job.ID).Str("path", path).Logger()

	var attempts []Attempt
	for _, eng := range s.engines {
		if err := ctx.Err(); err != nil {
			return Outcome{Path: path, Reason: err.Error(), Attempts: attempts}, err
		}

		start := time.Now()
		art, err := s.attempt(ctx, eng, job, path)
		s.observer.ObserveAttempt(eng.Name(), err, time.Since(start))
		if err != nil {
			logger.Warn().Err(err).Str("engine", eng.Name()).Msg("motor de render falló, se intenta el siguiente")
			attempts = append(attempts, Attempt{Engine: eng.Name(), Err: err})
			continue
		}

		logger.Info().
			Str("engine", eng.Name()).
			Int64("size", art.Size).
			Dur("elapsed", time.Since(start)).
			Msg("documento generado")
		return Outcome{
			OK:       true,
			Path:     art.Path,
			Engine:   eng.Name(),
			Size:     art.Size,
			Checksum: art.Checksum,
			Attempts: attempts,
		}, nil
	}

	fe := &FallbackError{Attempts: attempts}
	logger.Error().Err(fe).Msg("ningún motor pudo generar el documento")
	return Outcome{Path: path, Reason: fe.Error(), Attempts: attempts}, fe
}

func (s *Selector) attempt(ctx context.Context, eng Engine, job *Job, path string) (art Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic en el motor: %v", r)
		}
	}()
	data, err := eng.Render(ctx, job)
	if err != nil {
		return Artifact{}, err
	}
	return writeVerified(s.writer, path, data)
}

// WriteHTML modo de salida HTML+CSS: escribe la hoja de estilo y la página y
// las verifica. Si la página falla se elimina la hoja escrita en esta llamada.
func (s *Selector) WriteHTML(ctx context.Context, htmlPath, html, cssPath, css string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{Path: htmlPath, Reason: err.Error()}, err
	}
	cssWritten := false
	fail := func(err error) (Outcome, error) {
		if cssWritten {
			_ = removeIfExists(cssPath)
		}
		err = fmt.Errorf("render: salida html: %w", errors.Join(domain.ErrRenderFailed, err))
		return Outcome{Path: htmlPath, Reason: err.Error()}, err
	}
	if _, err := writeVerified(s.writer, cssPath, []byte(css)); err != nil {
		return fail(err)
	}
	cssWritten = true
	art, err := writeVerified(s.writer, htmlPath, []byte(html))
	if err != nil {
		return fail(err)
	}
	s.log.Info().Str("path", htmlPath).Str("css", cssPath).Int64("size", art.Size).Msg("html generado")
	return Outcome{OK: true, Path: art.Path, Engine: "html", Size: art.Size, Checksum: art.Checksum}, nil
}

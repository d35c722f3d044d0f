package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones para el logger.
type Config struct {
	Env   string    // development -> consola legible; production -> JSON
	Level string    // trace, debug, info, warn, error
	Out   io.Writer // nil = stdout; la CLI usa stderr para no mezclar con la salida
}

// Logger wrapper sobre zerolog para inyección y consistencia.
type Logger struct {
	zl zerolog.Logger
}

// New crea un logger estructurado. En development usa salida legible; en production JSON.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Out != nil {
		w = cfg.Out
	}
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	zl := zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()

	// Redirigir el logger global de zerolog para librerías que lo usen
	log.Logger = zl

	return &Logger{zl: zl}
}

// ParseLevel nivel desconocido o vacío = info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Trace, Debug, Info, Warn, Error delegados a zerolog.
func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With crea un sublogger con campos fijos.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Zerolog devuelve el logger interno para inyectarlo en los casos de uso.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

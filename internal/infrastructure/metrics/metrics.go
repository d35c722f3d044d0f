// Package metrics expone contadores e histogramas Prometheus del render de facturas.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace por defecto de las métricas.
const Namespace = "joyeria"

// RenderMetrics implementa render.Observer y billing.RenderMetrics.
type RenderMetrics struct {
	engineAttempts *prometheus.CounterVec
	engineDuration *prometheus.HistogramVec
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
}

// New registra las métricas en reg. namespace vacío usa Namespace.
func New(reg prometheus.Registerer, namespace string) *RenderMetrics {
	if namespace == "" {
		namespace = Namespace
	}

	m := &RenderMetrics{
		engineAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "render",
				Name:      "engine_attempts_total",
				Help:      "Intentos de cada motor de render por resultado",
			},
			[]string{"engine", "status"},
		),
		engineDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "render",
				Name:      "engine_duration_seconds",
				Help:      "Duración de cada intento de motor",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"engine"},
		),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "render",
				Name:      "invoices_total",
				Help:      "Facturas renderizadas por formato y resultado",
			},
			[]string{"format", "status"},
		),
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "render",
				Name:      "invoice_duration_seconds",
				Help:      "Duración total del render de una factura",
				Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"format"},
		),
	}

	reg.MustRegister(m.engineAttempts, m.engineDuration, m.renders, m.renderDuration)
	return m
}

// ObserveAttempt registra un intento de motor.
func (m *RenderMetrics) ObserveAttempt(engine string, err error, elapsed time.Duration) {
	m.engineAttempts.WithLabelValues(engine, status(err == nil)).Inc()
	m.engineDuration.WithLabelValues(engine).Observe(elapsed.Seconds())
}

// ObserveRender registra el resultado de un render completo.
func (m *RenderMetrics) ObserveRender(format string, ok bool, elapsed time.Duration) {
	m.renders.WithLabelValues(format, status(ok)).Inc()
	m.renderDuration.WithLabelValues(format).Observe(elapsed.Seconds())
}

func status(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

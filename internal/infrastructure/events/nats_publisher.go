// Package events publica los eventos de facturación en NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Joyeria-api/internal/application/billing"
)

// SubjectInvoiceRendered subject por defecto del evento de render.
const SubjectInvoiceRendered = "invoice.rendered"

// msgPublisher lo cumple *nats.Conn.
type msgPublisher interface {
	Publish(subject string, data []byte) error
}

// Publisher implementa billing.EventPublisher sobre NATS core.
type Publisher struct {
	conn    msgPublisher
	subject string
	log     zerolog.Logger
}

// NewPublisher publica en subject (vacío = SubjectInvoiceRendered).
func NewPublisher(conn msgPublisher, subject string, log zerolog.Logger) *Publisher {
	if subject == "" {
		subject = SubjectInvoiceRendered
	}
	return &Publisher{conn: conn, subject: subject, log: log}
}

// Connect abre la conexión NATS con reconexión indefinida.
func Connect(url, name string, log zerolog.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("nats desconectado")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconectado")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats: conectar %s: %w", url, err)
	}
	return nc, nil
}

// PublishRendered serializa el evento en JSON y lo publica.
func (p *Publisher) PublishRendered(ctx context.Context, ev billing.InvoiceRendered) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("nats: serializar evento: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("nats: publicar %s: %w", p.subject, err)
	}
	p.log.Debug().Str("subject", p.subject).Str("invoice", ev.Number).Msg("evento publicado")
	return nil
}

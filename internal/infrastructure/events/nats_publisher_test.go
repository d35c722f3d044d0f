package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Joyeria-api/internal/application/billing"
)

type fakeConn struct {
	subject string
	data    []byte
	err     error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subject, f.data = subject, data
	return f.err
}

func TestPublisher_PublishRendered(t *testing.T) {
	conn := &fakeConn{}
	p := NewPublisher(conn, "", zerolog.Nop())
	ev := billing.InvoiceRendered{
		JobID:      "job-1",
		Number:     "MEMO-0042",
		Format:     "pdf",
		Engine:     "chrome",
		NetAmount:  "67980.00",
		RenderedAt: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
	}

	require.NoError(t, p.PublishRendered(context.Background(), ev))
	assert.Equal(t, SubjectInvoiceRendered, conn.subject)

	var got billing.InvoiceRendered
	require.NoError(t, json.Unmarshal(conn.data, &got))
	assert.Equal(t, ev, got)
}

func TestPublisher_ErrorDeConexion(t *testing.T) {
	boom := errors.New("sin conexión")
	p := NewPublisher(&fakeConn{err: boom}, "facturas.render", zerolog.Nop())

	err := p.PublishRendered(context.Background(), billing.InvoiceRendered{Number: "x"})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "facturas.render")
}

func TestPublisher_ContextoCancelado(t *testing.T) {
	conn := &fakeConn{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewPublisher(conn, "", zerolog.Nop()).PublishRendered(ctx, billing.InvoiceRendered{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, conn.data)
}

package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error   { t.committed = true; return nil }
func (t *fakeTx) Rollback(context.Context) error { t.rolledBack = true; return nil }

type fakePool struct {
	Querier
	tx   *fakeTx
	opts pgx.TxOptions
}

func (p *fakePool) BeginTx(_ context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	p.opts = opts
	return p.tx, nil
}

type plainQuerier struct{ Querier }

func TestRunSnapshot_PoolAbreTransaccionDeLectura(t *testing.T) {
	pool := &fakePool{tx: &fakeTx{}}
	var got Querier
	err := runSnapshot(context.Background(), pool, func(q Querier) error {
		got = q
		return nil
	})
	require.NoError(t, err)

	assert.Same(t, pool.tx, got)
	assert.True(t, pool.tx.committed)
	assert.Equal(t, pgx.RepeatableRead, pool.opts.IsoLevel)
	assert.Equal(t, pgx.ReadOnly, pool.opts.AccessMode)
}

func TestRunSnapshot_ErrorNoHaceCommit(t *testing.T) {
	pool := &fakePool{tx: &fakeTx{}}
	boom := errors.New("boom")
	err := runSnapshot(context.Background(), pool, func(Querier) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.False(t, pool.tx.committed)
	assert.True(t, pool.tx.rolledBack)
}

func TestRunSnapshot_SinBeginTxUsaElMismoQuerier(t *testing.T) {
	q := plainQuerier{}
	var got Querier
	err := runSnapshot(context.Background(), q, func(inner Querier) error {
		got = inner
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, q, got)
}

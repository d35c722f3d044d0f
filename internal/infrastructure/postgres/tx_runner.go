package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// txBeginner lo cumple *pgxpool.Pool. Un pgx.Tx no lo cumple: ya está dentro de una transacción.
type txBeginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// snapshotOpts lectura consistente de cabecera y líneas del pedido.
var snapshotOpts = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

// runSnapshot ejecuta fn dentro de una transacción de solo lectura si q es un
// pool; si q ya es una transacción, fn corre sobre ella.
func runSnapshot(ctx context.Context, q Querier, fn func(Querier) error) error {
	b, ok := q.(txBeginner)
	if !ok {
		return fn(q)
	}
	tx, err := b.BeginTx(ctx, snapshotOpts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

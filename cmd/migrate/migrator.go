package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Joyeria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Joyeria-api/pkg/logger"
)

type migrator struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func (m *migrator) up(ctx context.Context) error {
	if err := postgres.Migrate(ctx, m.pool, false); err != nil {
		return err
	}
	return m.version(ctx)
}

func (m *migrator) down(ctx context.Context) error {
	if err := postgres.Migrate(ctx, m.pool, true); err != nil {
		return err
	}
	return m.version(ctx)
}

func (m *migrator) version(ctx context.Context) error {
	v, err := postgres.MigrationVersion(ctx, m.pool)
	if err != nil {
		return err
	}
	m.log.Info().Int64("version", v).Msg("esquema")
	return nil
}

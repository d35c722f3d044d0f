package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigraciones_Embebidas(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		data, err := fs.ReadFile(migrationsFS, f)
		require.NoError(t, err)
		body := string(data)
		assert.True(t, strings.Contains(body, "-- +goose Up"), f)
		assert.True(t, strings.Contains(body, "-- +goose Down"), f)
	}
}

func TestMigraciones_TablasDelCatalogo(t *testing.T) {
	data, err := fs.ReadFile(migrationsFS, "migrations/00001_jewellery_schema.sql")
	require.NoError(t, err)
	for _, table := range []string{"customers", "products", "materials", "metal_rates", "orders", "order_lines"} {
		assert.Contains(t, string(data), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}

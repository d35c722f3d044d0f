package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// isNoRows indica que QueryRow no encontró registro.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

package db

import (
	"context"

	"github.com/go-pg/pg/v10"
)

// DB wraps pg.DB for app usage.
type DB struct {
	*pg.DB
}

func New(db *pg.DB) DB {
	return DB{DB: db}
}

// Ping checks database connection.
func (d DB) Ping(ctx context.Context) error {
	_, err := d.DB.ExecContext(ctx, "SELECT 1")
	return err
}

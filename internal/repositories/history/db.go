package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/pwrecover/internal/repositories/history/migrations"
	"github.com/pressly/goose/v3"
)

// Open opens (creating if needed) the history database at path and applies
// pending migrations.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db %s: %w", path, err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating history db %s: %w", path, err)
	}
	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

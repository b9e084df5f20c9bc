package history

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pwrecover/internal/dbx"
)

// timeLayout is fixed-width so that ordering by the stored string equals
// chronological ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, a *Attempt) error {
	query := `INSERT INTO attempts (id, computer, user_name, ticks, thumbprint, status, valid, created_at)
			values (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Computer, a.User, a.Ticks, a.Thumbprint, a.Status, a.Valid,
		a.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to insert attempt: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]Attempt, error) {
	query := `select id, computer, user_name, ticks, thumbprint, status, valid, created_at
			from attempts order by created_at desc limit ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select attempts: %w", err)
	}
	defer rows.Close()

	var result []Attempt
	for rows.Next() {
		var item Attempt
		var createdAt string
		if err := rows.Scan(&item.ID, &item.Computer, &item.User, &item.Ticks,
			&item.Thumbprint, &item.Status, &item.Valid, &createdAt); err != nil {
			return nil, err
		}
		item.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Package history keeps a local audit log of recovery attempts. Only archive
// metadata and the outcome classification are stored; the recovered plaintext
// never is.
package history

import (
	"context"
	"time"
)

// Attempt is one recorded recovery outcome.
type Attempt struct {
	ID         string
	Computer   string
	User       string
	Ticks      int64
	Thumbprint string
	Status     string
	Valid      bool
	CreatedAt  time.Time
}

// Repository describes storage operations for recovery attempts.
// Implementations are backed by a local SQLite database.
type Repository interface {
	// Insert stores one attempt.
	Insert(ctx context.Context, a *Attempt) error

	// Recent returns up to limit attempts, newest first.
	Recent(ctx context.Context, limit int) ([]Attempt, error)
}

package cli

import (
	"context"
	"errors"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

const historyListLimit = 50

// runHistory lists recent recovery attempts from the local audit log.
func (a *App) runHistory(ctx context.Context) error {
	if a.history == nil {
		return errors.New("history is disabled (-H \"\")")
	}

	attempts, err := a.history.Recent(ctx, historyListLimit)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(a.out)
	t.AppendHeader(table.Row{"When", "Computer", "User", "Thumbprint", "Status", "Valid"})
	for _, att := range attempts {
		t.AppendRow(table.Row{
			att.CreatedAt.Local().Format(time.RFC3339),
			att.Computer,
			att.User,
			att.Thumbprint,
			att.Status,
			att.Valid,
		})
	}
	t.Render()
	return nil
}

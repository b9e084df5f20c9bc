package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/pwrecover/internal/catalog"
	"github.com/dmitrijs2005/pwrecover/internal/recovery"
	"github.com/dmitrijs2005/pwrecover/internal/repositories/history"
	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
)

// runRecover executes one batch: list by computer pattern, filter by user
// pattern, select, recover, render. Catalog errors abort the run with a
// distinct diagnostic; per-record failures only mark their own row.
func (a *App) runRecover(ctx context.Context) error {
	recs, err := catalog.List(ctx, a.config.ArchiveDir, a.config.ComputerPattern, a.logger)
	if err != nil {
		return err
	}

	recs, err = catalog.Filter(recs, a.config.UserPattern)
	if err != nil {
		return err
	}

	if !a.config.ShowAll {
		if a.config.LatestPerUser {
			recs = catalog.SelectLatestPerUser(recs)
		} else {
			recs = catalog.SelectLatest(recs)
		}
	}

	results := a.engine.RecoverAll(ctx, recs)
	a.recordAttempts(ctx, results)
	a.renderResults(results)
	return nil
}

// recordAttempts writes outcomes to the history log. Metadata and status
// only; the plaintext never reaches the database. History failures are
// warnings: the recovered passwords are already on screen.
func (a *App) recordAttempts(ctx context.Context, results []recovery.Result) {
	if a.history == nil {
		return
	}
	for _, res := range results {
		attempt := &history.Attempt{
			ID:         uuid.NewString(),
			Computer:   res.Record.Computer,
			User:       res.Record.User,
			Ticks:      res.Record.Ticks,
			Thumbprint: res.Record.Thumbprint,
			Status:     string(res.Status),
			Valid:      res.Valid,
			CreatedAt:  time.Now(),
		}
		if err := a.history.Insert(ctx, attempt); err != nil {
			a.logger.Warn(ctx, "failed to record recovery attempt", "error", err)
		}
	}
}

func (a *App) renderResults(results []recovery.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(a.out)
	t.AppendHeader(table.Row{"Computer", "User", "Created", "Thumbprint", "Valid", "Password"})
	for _, res := range results {
		t.AppendRow(table.Row{
			res.Record.Computer,
			res.Record.User,
			res.Record.Time().Format(time.RFC3339),
			res.Record.Thumbprint,
			res.Valid,
			res.Password,
		})
	}
	t.Render()
}

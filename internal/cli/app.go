// Package cli wires the archive catalog, key providers and recovery engine
// into the batch command-line tool.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/pwrecover/internal/common"
	"github.com/dmitrijs2005/pwrecover/internal/config"
	"github.com/dmitrijs2005/pwrecover/internal/flagx"
	"github.com/dmitrijs2005/pwrecover/internal/keystore"
	"github.com/dmitrijs2005/pwrecover/internal/logging"
	"github.com/dmitrijs2005/pwrecover/internal/recovery"
	"github.com/dmitrijs2005/pwrecover/internal/repositories/history"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	engine  *recovery.Engine
	history history.Repository
	db      *sql.DB
	command string
	out     io.Writer
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	command := flagx.Command(os.Args[1:])

	app := &App{config: cfg, logger: logger, command: command, out: os.Stdout}

	// The history command only reads the local database; key sources are
	// needed for recovery runs alone.
	if command != "history" {
		provider, err := buildProvider(cfg)
		if err != nil {
			return nil, err
		}
		app.engine = recovery.New(provider, logger)
	}

	if cfg.HistoryPath != "" {
		db, err := history.Open(context.Background(), cfg.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("history db init error: %w", err)
		}
		app.db = db
		app.history = history.NewSQLiteRepository(db)
	}

	return app, nil
}

// buildProvider assembles the key sources from configuration. At least one
// source must be given; with several, lookups chain in flag order.
func buildProvider(cfg *config.Config) (keystore.Provider, error) {
	var providers []keystore.Provider

	if cfg.KeyDir != "" {
		p, err := keystore.OpenPEMDir(cfg.KeyDir)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	if cfg.KeystorePath != "" {
		pw := []byte(cfg.KeystorePassword)
		if len(pw) == 0 {
			var err error
			pw, err = GetPassword(os.Stderr, "Enter keystore password")
			if err != nil {
				return nil, err
			}
		}
		p, err := keystore.OpenJKS(cfg.KeystorePath, pw)
		common.WipeByteArray(pw)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	switch len(providers) {
	case 0:
		return nil, errors.New("no key source configured: pass -k <pem dir> or -j <keystore>")
	case 1:
		return providers[0], nil
	default:
		return keystore.NewMulti(providers...), nil
	}
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	switch a.command {
	case "", "recover":
		return a.runRecover(ctx)
	case "history":
		return a.runHistory(ctx)
	default:
		return fmt.Errorf("unknown command %q", a.command)
	}
}

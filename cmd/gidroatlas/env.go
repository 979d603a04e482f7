package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gidroatlas/gidroatlas/internal/config"
	"github.com/gidroatlas/gidroatlas/internal/infrastructure"
	"github.com/gidroatlas/gidroatlas/pkg/database"
)

// session is the configuration and database handle shared by commands that
// touch persistent state.
type session struct {
	cfg    *config.Config
	db     database.System
	logger *slog.Logger
}

func openSession(cmd *cobra.Command) (*session, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := infrastructure.NewLogger(os.Stderr, cfg.LogLevel)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(cmd.Context()); err != nil {
		db.Connection().Close()
		return nil, err
	}

	return &session{cfg: cfg, db: db, logger: logger}, nil
}

func (s *session) Close() error {
	return s.db.Connection().Close()
}

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gidroatlas/gidroatlas/internal/config"
	"github.com/gidroatlas/gidroatlas/internal/migrations"
)

const envDSN = "GIDROATLAS_DB_DSN"

func newMigrateCmd() *cobra.Command {
	var dsn string

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect database schema migrations",
		Long: `Schema migrations are embedded in the binary. The connection is taken from
--dsn, then GIDROATLAS_DB_DSN, then the [database] section of the config file.`,
	}
	migrateCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "postgres:// connection URL")

	// with opens the migrator, runs fn, and closes it.
	with := func(cmd *cobra.Command, fn func(*migrations.Migrator) error) error {
		url, err := resolveDSN(cmd, dsn)
		if err != nil {
			return err
		}
		m, err := migrations.New(url)
		if err != nil {
			return err
		}
		defer m.Close()
		return fn(m)
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return with(cmd, func(m *migrations.Migrator) error {
				if err := m.Up(); err != nil {
					return fmt.Errorf("migrate up: %w", err)
				}
				return printStatus(cmd, m)
			})
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Revert all applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return with(cmd, func(m *migrations.Migrator) error {
				if err := m.Down(); err != nil {
					return fmt.Errorf("migrate down: %w", err)
				}
				return printStatus(cmd, m)
			})
		},
	}

	steps := &cobra.Command{
		Use:   "steps N",
		Short: "Apply N migrations, or revert when N is negative",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n == 0 {
				return fmt.Errorf("steps must be a non-zero integer: %q", args[0])
			}
			return with(cmd, func(m *migrations.Migrator) error {
				if err := m.Steps(n); err != nil {
					return fmt.Errorf("migrate steps: %w", err)
				}
				return printStatus(cmd, m)
			})
		},
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return with(cmd, func(m *migrations.Migrator) error {
				return printStatus(cmd, m)
			})
		},
	}

	force := &cobra.Command{
		Use:   "force VERSION",
		Short: "Set the recorded version without running migrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}
			return with(cmd, func(m *migrations.Migrator) error {
				if err := m.Force(v); err != nil {
					return fmt.Errorf("force version: %w", err)
				}
				return printStatus(cmd, m)
			})
		},
	}

	migrateCmd.AddCommand(up, down, steps, version, force)
	return migrateCmd
}

func resolveDSN(cmd *cobra.Command, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if v := os.Getenv(envDSN); v != "" {
		return v, nil
	}

	path, _ := cmd.Flags().GetString("config")
	db, err := config.LoadDatabase(path)
	if err != nil {
		return "", err
	}
	return db.URL(), nil
}

func printStatus(cmd *cobra.Command, m *migrations.Migrator) error {
	st, err := m.Status()
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "version: %d, dirty: %v\n", st.Version, st.Dirty)
	return nil
}

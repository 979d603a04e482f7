package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gidroatlas",
		Short: "GidroAtlas - water object monitoring",
		Long: `GidroAtlas administration commands: account management, priority
maintenance, and offline water quality assessment.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "config.toml", "base configuration file")

	root.AddCommand(
		newMigrateCmd(),
		newUserCmd(),
		newPriorityCmd(),
		newAssessCmd(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

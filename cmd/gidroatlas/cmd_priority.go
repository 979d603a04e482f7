package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gidroatlas/gidroatlas/internal/objects"
	"github.com/gidroatlas/gidroatlas/internal/scheduler"
	"github.com/gidroatlas/gidroatlas/pkg/storage"
)

func newPriorityCmd() *cobra.Command {
	priorityCmd := &cobra.Command{
		Use:   "priority",
		Short: "Inspection priority maintenance",
	}

	recalc := &cobra.Command{
		Use:   "recalc",
		Short: "Recompute and persist every stored priority now",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			store, err := storage.New(&sess.cfg.Storage, sess.logger)
			if err != nil {
				return err
			}

			sys := objects.New(sess.db.Connection(), store, sess.logger, objects.Config{
				Pagination: sess.cfg.API.Pagination,
			})

			sched, err := scheduler.New(&sess.cfg.Scheduler, sys, sess.logger)
			if err != nil {
				return err
			}

			run, err := sched.RunNow(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "updated %d priorities in %s\n", run.Updated, run.Duration)
			return nil
		},
	}

	priorityCmd.AddCommand(recalc)
	return priorityCmd
}

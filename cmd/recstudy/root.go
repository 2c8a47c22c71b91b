// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/recstudy/internal/config"
	"github.com/tomtom215/recstudy/internal/logging"
	"github.com/tomtom215/recstudy/internal/storage"
)

// commandTimeout bounds a whole CLI run against the feedback store.
const commandTimeout = 5 * time.Minute

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "recstudy",
		Short: "Inspect and export expert study feedback",
		Long: `recstudy works on the feedback store configured for the study server
(badger or MongoDB). Configuration comes from config.yaml, .env and the
environment, exactly as for the server.

Example usage:
  recstudy stats                        # Ratings and SUS completion per session
  recstudy stats --json                 # Same, as JSON
  recstudy export --out feedback.jsonl  # Dump every session as JSON Lines`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if verbose {
				level = "debug"
			}
			logging.Init(logging.Config{
				Level:   level,
				Format:  "console",
				Service: "recstudy-cli",
				Output:  cmd.ErrOrStderr(),
			})
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(newExportCmd())
	root.AddCommand(newStatsCmd())
	return root
}

// withStores loads the configuration, opens the storage backends and runs
// fn against them.
func withStores(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, stores *storage.Stores) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	stores, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}

	runErr := fn(ctx, cfg, stores)
	if err := stores.Close(context.Background()); err != nil && runErr == nil {
		runErr = fmt.Errorf("close storage: %w", err)
	}
	return runErr
}

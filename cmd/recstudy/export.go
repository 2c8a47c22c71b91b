// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/recstudy/internal/config"
	"github.com/tomtom215/recstudy/internal/feedback"
	"github.com/tomtom215/recstudy/internal/storage"
)

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every session's feedback as JSON Lines",
		Long: `Write one JSON object per session to a file, replacing it atomically.

Examples:
  recstudy export                       # Write to export.path from the config
  recstudy export --out /tmp/fb.jsonl   # Write somewhere else`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStores(cmd, func(ctx context.Context, cfg *config.Config, stores *storage.Stores) error {
				path := out
				if path == "" {
					path = cfg.Export.Path
				}

				n, err := feedback.NewExporter(stores.Feedback, path, 0).Dump(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sessions to %s\n", n, path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: export.path)")
	return cmd
}

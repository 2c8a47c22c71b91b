// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/recstudy/internal/config"
	"github.com/tomtom215/recstudy/internal/feedback"
	"github.com/tomtom215/recstudy/internal/storage"
)

func newStatsCmd() *cobra.Command {
	var (
		jsonOutput bool
		top        int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show rating counts and SUS completion",
		Long: `Summarize the collected feedback: sessions, ratings, completed
questionnaires and the most active sessions.

Examples:
  recstudy stats              # Human readable summary
  recstudy stats --top 20     # List the 20 most active sessions
  recstudy stats --json       # Full summary as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStores(cmd, func(ctx context.Context, cfg *config.Config, stores *storage.Stores) error {
				summary, err := feedback.Summarize(ctx, stores.Feedback)
				if err != nil {
					return err
				}
				if jsonOutput {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(summary)
				}
				printSummary(cmd.OutOrStdout(), summary, cfg.Study.RatingThreshold, top)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().IntVar(&top, "top", 10, "number of sessions to list")
	return cmd
}

func printSummary(w io.Writer, s *feedback.Summary, threshold, top int) {
	unlocked := 0
	for _, n := range s.PerSession {
		if n >= threshold {
			unlocked++
		}
	}

	fmt.Fprintf(w, "Sessions:        %s\n", humanize.Comma(int64(s.Sessions)))
	fmt.Fprintf(w, "Ratings:         %s\n", humanize.Comma(int64(s.Ratings)))
	fmt.Fprintf(w, "SUS unlocked:    %s (threshold %d)\n", humanize.Comma(int64(unlocked)), threshold)
	fmt.Fprintf(w, "SUS completed:   %s\n", humanize.Comma(int64(s.SUSCompleted)))

	ids := make([]string, 0, len(s.PerSession))
	for id := range s.PerSession {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.PerSession[ids[i]], s.PerSession[ids[j]]
		if a != b {
			return a > b
		}
		return ids[i] < ids[j]
	})
	if top >= 0 && len(ids) > top {
		ids = ids[:top]
	}
	if len(ids) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Most active sessions:")
	for _, id := range ids {
		fmt.Fprintf(w, "  %-36s %s\n", id, humanize.Comma(int64(s.PerSession[id])))
	}
}

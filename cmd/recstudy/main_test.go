// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/recstudy/internal/config"
	"github.com/tomtom215/recstudy/internal/feedback"
	"github.com/tomtom215/recstudy/internal/storage"
)

// setupStudyEnv points the configuration at a temporary badger database
// seeded with two sessions and returns the configured export path.
func setupStudyEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	exportPath := filepath.Join(dir, "feedback.jsonl")

	t.Setenv("DOTENV_PATH", filepath.Join(dir, "missing.env"))
	t.Setenv("CONFIG_PATH", filepath.Join(dir, "missing.yaml"))
	t.Setenv("EXPERT_STUDY_SECRET_KEY", "cli-test-secret")
	t.Setenv("STORAGE_BACKEND", config.BackendBadger)
	t.Setenv("BADGER_PATH", filepath.Join(dir, "badger"))
	t.Setenv("EXPORT_PATH", exportPath)
	t.Setenv("RATING_THRESHOLD", "2")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}

	ctx := context.Background()
	stores, err := storage.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}

	seed := []struct{ session, article, rec string }{
		{"s-alpha", "ref-1", "cat-1"},
		{"s-alpha", "ref-1", "cat-2"},
		{"s-alpha", "ref-2", "cat-1"},
		{"s-beta", "ref-1", "cat-1"},
	}
	for _, s := range seed {
		if err := stores.Feedback.UpsertRating(ctx, s.session, s.article, s.rec, feedback.Entry{Rating: "4"}); err != nil {
			t.Fatalf("UpsertRating() error = %v", err)
		}
	}
	if err := stores.Feedback.UpsertSUS(ctx, "s-alpha", feedback.SUS{Age: "40", Responses: map[string]string{"sus_question1": "5"}}); err != nil {
		t.Fatalf("UpsertSUS() error = %v", err)
	}
	if err := stores.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return exportPath
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStatsCommand(t *testing.T) {
	setupStudyEnv(t)

	out, err := runCLI(t, "stats")
	if err != nil {
		t.Fatalf("stats error = %v", err)
	}

	for _, want := range []string{
		"Sessions:        2",
		"Ratings:         4",
		"SUS unlocked:    1 (threshold 2)",
		"SUS completed:   1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "s-alpha") > strings.Index(out, "s-beta") {
		t.Errorf("sessions not sorted by activity:\n%s", out)
	}
}

func TestStatsCommand_JSON(t *testing.T) {
	setupStudyEnv(t)

	out, err := runCLI(t, "stats", "--json")
	if err != nil {
		t.Fatalf("stats --json error = %v", err)
	}

	var summary feedback.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if summary.Sessions != 2 || summary.Ratings != 4 || summary.PerSession["s-beta"] != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestExportCommand(t *testing.T) {
	configured := setupStudyEnv(t)

	out, err := runCLI(t, "export")
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if !strings.Contains(out, "Exported 2 sessions to "+configured) {
		t.Errorf("output = %q", out)
	}

	custom := filepath.Join(t.TempDir(), "custom.jsonl")
	if _, err := runCLI(t, "export", "--out", custom); err != nil {
		t.Fatalf("export --out error = %v", err)
	}

	data, err := os.ReadFile(custom)
	if err != nil {
		t.Fatalf("custom export missing: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("export has %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		var record feedback.Record
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Errorf("bad line %q: %v", line, err)
		}
	}
}

func TestCommands_RejectArgs(t *testing.T) {
	setupStudyEnv(t)

	if _, err := runCLI(t, "export", "extra"); err == nil {
		t.Error("export accepted a positional argument")
	}
}

func TestCommands_ConfigError(t *testing.T) {
	setupStudyEnv(t)
	t.Setenv("STORAGE_BACKEND", "sqlite")

	if _, err := runCLI(t, "stats"); err == nil || !strings.Contains(err.Error(), "STORAGE_BACKEND") {
		t.Errorf("stats with an invalid backend error = %v", err)
	}
}

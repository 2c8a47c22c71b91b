// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package feedback

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func seedStore(t *testing.T) *BadgerStore {
	t.Helper()

	store := NewBadgerStore(createTestBadgerDB(t))
	ctx := context.Background()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	must(store.UpsertRating(ctx, "s1", "a1", "r1", Entry{Rating: "4"}))
	must(store.UpsertRating(ctx, "s1", "a1", "r2", Entry{Rating: "2"}))
	must(store.UpsertRating(ctx, "s2", "a1", "r1", Entry{Rating: "5"}))
	must(store.UpsertSUS(ctx, "s2", SUS{Age: "40", Responses: map[string]string{"sus_question1": "3"}}))
	return store
}

func TestWriteJSONL(t *testing.T) {
	t.Parallel()

	store := seedStore(t)

	var buf bytes.Buffer
	n, err := WriteJSONL(context.Background(), store, &buf)
	if err != nil {
		t.Fatalf("WriteJSONL() error = %v", err)
	}
	if n != 2 {
		t.Errorf("records written = %d, want 2", n)
	}

	scanner := bufio.NewScanner(&buf)
	lines := 0
	for scanner.Scan() {
		var r Record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			t.Fatalf("line %d is not a JSON record: %v", lines+1, err)
		}
		if r.SessionID == "" {
			t.Errorf("line %d has no session_id", lines+1)
		}
		lines++
	}
	if lines != 2 {
		t.Errorf("lines = %d, want 2", lines)
	}
}

func TestExporter_Dump(t *testing.T) {
	t.Parallel()

	store := seedStore(t)
	path := filepath.Join(t.TempDir(), "exports", "feedback.jsonl")
	exporter := NewExporter(store, path, 0)

	n, err := exporter.Dump(context.Background())
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Dump() = %d records, want 2", n)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if got := bytes.Count(data, []byte("\n")); got != 2 {
		t.Errorf("export has %d lines, want 2", got)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read export dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestExporter_DumpThrottled(t *testing.T) {
	t.Parallel()

	store := seedStore(t)
	path := filepath.Join(t.TempDir(), "feedback.jsonl")
	exporter := NewExporter(store, path, time.Hour)
	ctx := context.Background()

	dumped, err := exporter.DumpThrottled(ctx)
	if err != nil || !dumped {
		t.Fatalf("first DumpThrottled() = %v, %v, want dump", dumped, err)
	}
	dumped, err = exporter.DumpThrottled(ctx)
	if err != nil || dumped {
		t.Errorf("second DumpThrottled() = %v, %v, want throttled", dumped, err)
	}

	unthrottled := NewExporter(store, path, 0)
	for i := 0; i < 3; i++ {
		if dumped, err := unthrottled.DumpThrottled(ctx); err != nil || !dumped {
			t.Errorf("unthrottled DumpThrottled() = %v, %v", dumped, err)
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	summary, err := Summarize(context.Background(), seedStore(t))
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summary.Sessions != 2 || summary.Ratings != 3 || summary.SUSCompleted != 1 {
		t.Errorf("Summarize() = %+v", summary)
	}
	if summary.PerSession["s1"] != 2 {
		t.Errorf("PerSession[s1] = %d, want 2", summary.PerSession["s1"])
	}
}

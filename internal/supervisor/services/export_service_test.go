// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/recstudy/internal/feedback"
)

type fakeDumper struct {
	mu    sync.Mutex
	calls int
	errs  []error
	err   error
}

func (d *fakeDumper) Dump(ctx context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	d.errs = append(d.errs, ctx.Err())
	return d.calls, d.err
}

func (d *fakeDumper) Path() string { return "/tmp/feedback.jsonl" }

func (d *fakeDumper) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

func TestNewExportService_DefaultInterval(t *testing.T) {
	svc := NewExportService(&fakeDumper{}, 0)
	if svc.interval != time.Hour {
		t.Errorf("interval = %v, want 1h", svc.interval)
	}
	if svc.String() != "feedback-export" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestExportService_DumpsOnTickAndShutdown(t *testing.T) {
	dumper := &fakeDumper{}
	svc := NewExportService(dumper, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}

	// At least a few ticks plus the final dump on shutdown.
	if got := dumper.Calls(); got < 3 {
		t.Errorf("Dump called %d times, want at least 3", got)
	}

	if last := dumper.errs[len(dumper.errs)-1]; last != nil {
		t.Error("final dump ran on the canceled service context")
	}
}

func TestExportService_FailureKeepsRunning(t *testing.T) {
	dumper := &fakeDumper{err: errors.New("disk full")}
	svc := NewExportService(dumper, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want to keep running until canceled", err)
	}
	if dumper.Calls() < 2 {
		t.Errorf("Dump called %d times, want retries after failure", dumper.Calls())
	}
}

func TestExportService_WithExporter(t *testing.T) {
	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("badger.Open() error = %v", err)
	}
	defer db.Close()

	store := feedback.NewBadgerStore(db)
	if err := store.SetCompany(context.Background(), "s1", "Acme"); err != nil {
		t.Fatalf("SetCompany() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "feedback.jsonl")
	svc := NewExportService(feedback.NewExporter(store, path, time.Minute), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = svc.Serve(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export file missing after shutdown dump: %v", err)
	}
	if !strings.Contains(string(data), `"company":"Acme"`) {
		t.Errorf("export = %s", data)
	}
}

type fakeGC struct {
	rewrites int
	err      error
	calls    atomic.Int32
}

func (g *fakeGC) RunValueLogGC(float64) error {
	n := int(g.calls.Add(1))
	if n <= g.rewrites {
		return nil
	}
	return g.err
}

func TestBadgerGCService_Collect(t *testing.T) {
	tests := []struct {
		name      string
		gc        *fakeGC
		wantFiles int
	}{
		{"nothing to rewrite", &fakeGC{err: badger.ErrNoRewrite}, 0},
		{"rewrites until exhausted", &fakeGC{rewrites: 3, err: badger.ErrNoRewrite}, 3},
		{"concurrent gc rejected", &fakeGC{err: badger.ErrRejected}, 0},
		{"unexpected error stops", &fakeGC{rewrites: 1, err: errors.New("io")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewBadgerGCService(tt.gc, time.Minute)
			if got := svc.collect(context.Background()); got != tt.wantFiles {
				t.Errorf("collect() = %d, want %d", got, tt.wantFiles)
			}
		})
	}
}

func TestBadgerGCService_Serve(t *testing.T) {
	gc := &fakeGC{err: badger.ErrNoRewrite}
	svc := NewBadgerGCService(gc, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v", err)
	}
	if gc.calls.Load() == 0 {
		t.Error("GC never ran")
	}
	if NewBadgerGCService(gc, 0).interval != 10*time.Minute {
		t.Error("default interval not applied")
	}
}

// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

//go:build integration

package feedback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/recstudy/internal/testinfra"
)

func TestMongoStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	container, err := testinfra.NewMongoContainer(ctx)
	if err != nil {
		t.Fatalf("Failed to start MongoDB container: %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, container.Container)

	mongoStore, err := NewMongoStore(ctx, MongoConfig{
		URI:        container.URI,
		Database:   "recstudy_test",
		Collection: "feedback",
		Timeout:    10 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewMongoStore() error = %v", err)
	}
	defer mongoStore.Close(context.Background()) //nolint:errcheck

	store := NewBreakerStore(mongoStore, "feedback-mongo-integration")

	if _, err := store.Find(ctx, "s1"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("Find() on empty collection error = %v, want ErrRecordNotFound", err)
	}

	if err := store.UpsertRating(ctx, "s1", "a1", "r1", Entry{Rating: "3", Timestamp: 1}); err != nil {
		t.Fatalf("UpsertRating() error = %v", err)
	}
	if err := store.UpsertRating(ctx, "s1", "a1", "r2", Entry{Rating: "4"}); err != nil {
		t.Fatalf("UpsertRating() error = %v", err)
	}
	if err := store.UpsertRating(ctx, "s1", "a1", "r1", Entry{Rating: "5", Timestamp: 2}); err != nil {
		t.Fatalf("UpsertRating() overwrite error = %v", err)
	}
	if err := store.UpsertSUS(ctx, "s1", SUS{Age: "25", Responses: map[string]string{"sus_question1": "5"}}); err != nil {
		t.Fatalf("UpsertSUS() error = %v", err)
	}
	if err := store.SetCompany(ctx, "s2", "Acme"); err != nil {
		t.Fatalf("SetCompany() error = %v", err)
	}

	record, err := store.Find(ctx, "s1")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got := record.RatedCount("a1"); got != 2 {
		t.Errorf("RatedCount(a1) = %d, want 2", got)
	}
	if e := record.Feedback["a1"]["r1"]; e.Rating != "5" || e.Timestamp != 2 {
		t.Errorf("overwritten entry = %+v", e)
	}
	if record.SUSFeedback == nil || record.SUSFeedback.Responses["sus_question1"] != "5" {
		t.Errorf("SUSFeedback = %+v", record.SUSFeedback)
	}

	summary, err := Summarize(ctx, store)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summary.Sessions != 2 || summary.Ratings != 2 || summary.SUSCompleted != 1 {
		t.Errorf("Summarize() = %+v", summary)
	}

	if err := store.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

// Package testinfra provides containers for integration tests.
//
// Files are built only with the integration tag:
//
//	go test -tags integration ./...
//
// # MongoDB Container
//
//	func TestMongoStore(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    mongo, err := testinfra.NewMongoContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, mongo.Container)
//
//	    store, err := feedback.NewMongoStore(ctx, feedback.MongoConfig{URI: mongo.URI, ...})
//	    // ...
//	}
//
// Tests are skipped gracefully if Docker is unavailable. The first run may
// need to pull the image.
package testinfra

// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

/*
Package services provides suture.Service wrappers for the long-running parts
of the study server.

Each wrapper implements

	Serve(ctx context.Context) error

returns ctx.Err() on cancellation, and names itself through fmt.Stringer
for supervisor events.

  - HTTPServerService runs *http.Server and drains it with Shutdown.
  - ExportService rewrites the JSON Lines feedback export on an interval
    and once more on shutdown.
  - BadgerGCService reclaims badger value log space.

Workers log and carry on when a single run fails; only the HTTP server
returns errors that make the supervisor restart it.
*/
package services

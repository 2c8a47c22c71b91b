// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

/*
Package supervisor provides process supervision for the study server using
suture v4.

The tree has two layers:

	RootSupervisor ("recstudy")
	├── StorageSupervisor ("storage-layer")
	│   ├── ExportService (if export.interval > 0)
	│   └── BadgerGCService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's backoff. A worker failing repeatedly
in the storage layer backs off on its own without touching the HTTP server.

Supervisor events are logged through sutureslog. Passing
logging.NewSlogLogger("supervisor") routes them to the global zerolog
logger:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddStorageService(services.NewExportService(exporter, cfg.Export.Interval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)
*/
package supervisor

// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package supervisor runs the service's long-lived components under suture v4.

The tree has two layers:

	RootSupervisor ("reelmatch")
	├── DataSupervisor ("data-layer")
	│   └── RebuildService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's failure decay and backoff. Each
layer counts failures independently, so a rebuild loop that keeps failing
against an unreachable catalog leaves the HTTP server untouched.

Supervisor events (service start, failure, backoff) are logged through the
sutureslog hook. The slog logger it receives is normally
logging.NewSlogLogger("supervisor"), which forwards to zerolog.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewRebuildService(rebuilder, rebuildCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

Serve returns once every service has stopped or ShutdownTimeout has elapsed;
UnstoppedServiceReport names the stragglers.
*/
package supervisor

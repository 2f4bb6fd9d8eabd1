// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

/*
Package supervisor runs the long-lived parts of the Cinemora server under a
suture v4 supervisor tree.

	RootSupervisor ("cinemora")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheJanitorService (memory cache backend only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with exponential backoff once the failure
threshold is exceeded; failures decay over FailureDecay seconds. Supervisor
events (service panics, terminations, backoff) are logged through
sutureslog, which is bridged onto the zerolog logger by
logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.Timeout))
	return tree.Serve(ctx)

Service implementations live in the services subpackage.
*/
package supervisor

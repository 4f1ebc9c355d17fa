// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

/*
Package supervisor provides suture-based process supervision.

Tree Layout:

	animerec (root)
	├── maintenance-layer
	│   └── cache-janitor
	└── api-layer
	    └── http-server

Each layer restarts its own services with exponential backoff once the
failure threshold is exceeded. Suture events are logged through the
zerolog-backed slog handler from the logging package.

Usage Example:

	logger := slog.New(logging.NewSlogHandler())
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddMaintenanceService(janitor)
	tree.AddAPIService(httpService)
	return tree.Serve(ctx)
*/
package supervisor

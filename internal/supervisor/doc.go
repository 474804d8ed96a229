// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor runs Marquee's long-lived services under a suture v4 tree.

The tree is small:

	RootSupervisor ("marquee")
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The recommendation index is built before the tree starts, so the tree only has to
keep the listener alive. A crashed service is restarted with suture's backoff, and
supervisor events are logged through sutureslog into the zerolog pipeline.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	errCh := tree.ServeBackground(ctx)
*/
package supervisor

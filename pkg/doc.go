// Package pkg provides the core libraries for Galaxy Profile.
//
// # Overview
//
// Galaxy Profile turns a profile config and a GitHub user's activity into
// four animated SVG documents for a profile README: a spiral galaxy header,
// a stats card, a tech-stack radar and a featured projects panel. The pkg
// directory is organized into four main areas:
//
//  1. [profile] and [config] - Domain model and the YAML/TOML config layer
//  2. [render] - Pure SVG renderers and their shared building blocks
//  3. [integrations] - The GitHub REST/GraphQL client
//  4. [pipeline] - Orchestration (fetch → render → cache)
//
// # Architecture
//
// The typical data flow:
//
//	config.yml
//	     ↓
//	[config] package (decode + validate into profile.Config)
//	     ↓
//	[integrations/github] package (stats + language histogram)
//	     ↓
//	[pipeline] package (render all documents concurrently)
//	     ↓
//	[artifact] store (directory or MongoDB)
//
// # Quick Start
//
// Render the demo documents without network access:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/galaxyprofile/pkg/config"
//	    "github.com/matzehuels/galaxyprofile/pkg/pipeline"
//	)
//
//	cfg, _ := config.Load("config.yml")
//	runner := pipeline.NewRunner(nil, nil, nil, nil)
//	res, _ := runner.Execute(context.Background(), cfg, pipeline.Options{Demo: true})
//	svg := res.Artifacts["galaxy-header.svg"]
//
// # Main Packages
//
// ## Domain
//
// [profile] - Validated configuration, stats metrics and language
// histograms. [profile/profiletest] holds a sample profile for tests.
//
// [config] - Reads and writes the on-disk config in YAML or TOML and
// validates it into a [profile.Config].
//
// ## Rendering
//
// [render] - The [render.Input] shared by the renderers [render/header],
// [render/stats], [render/techstack] and [render/projects]. Building blocks
// live in [render/svg], [render/geom], [render/theme] and [render/random];
// [render/raster] converts documents to PNG.
//
// ## Infrastructure
//
// [cache] - Byte caches with TTL: file, Redis and a null cache.
//
// [artifact] - Stores for finished documents: a directory or MongoDB.
//
// [integrations] - Shared HTTP client with caching and retry, used by
// [integrations/github]. [httputil] provides the retry policy.
//
// [pipeline] - The complete fetch and render pipeline used by the CLI,
// the HTTP server and the MCP tools.
//
// [server] - HTTP server rendering documents on request.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Coded errors and input validation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/render/...             # Renderers only
//	go test -tags integration ./pkg/...  # Include integration tests
//
// [profile]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/profile
// [profile/profiletest]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/profile/profiletest
// [config]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/config
// [render]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/render
// [render/header]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/render/header
// [render/stats]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/render/stats
// [render/techstack]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/render/techstack
// [render/projects]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/render/projects
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/render/svg
// [render/geom]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/render/geom
// [render/theme]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/render/theme
// [render/random]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/render/random
// [render/raster]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/render/raster
// [render.Input]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/render#Input
// [profile.Config]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/profile#Config
// [cache]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/cache
// [artifact]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/artifact
// [integrations]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/integrations
// [integrations/github]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/integrations/github
// [httputil]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/httputil
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/galaxyprofile/pkg/errors
package pkg

// Package render defines the input shared by the galaxy profile renderers.
//
// # Overview
//
// Each renderer turns a validated [profile.Config] plus fetched data into one
// complete SVG document:
//
//   - [header]: the spiral galaxy banner
//   - [stats]: the mission telemetry stats card
//   - [techstack]: language bars and the focus sector radar
//   - [projects]: the featured projects panel
//
// Renderers are pure functions of their [Input]. They perform no I/O, keep
// no package-level mutable state and never fail: degenerate inputs (no
// projects, no languages, zero stats) still produce a valid document. The
// same input always yields byte-identical output, which keeps regenerated
// files stable under version control.
//
// Shared building blocks live in sibling packages: [svg] for the element
// tree, [geom] for geometry, [theme] for colors and [random] for the
// seeded star fields. The [raster] package converts finished documents to
// PNG previews.
package render

import (
	"github.com/matzehuels/galaxyprofile/pkg/profile"
	"github.com/matzehuels/galaxyprofile/pkg/render/theme"
)

// Input is everything a renderer may read.
type Input struct {
	Config    *profile.Config
	Stats     profile.Stats
	Languages profile.Languages
}

// Theme returns the configured palette, or the default one when unset.
func (in Input) Theme() theme.Theme {
	if in.Config == nil || len(in.Config.Theme) == 0 {
		return theme.Default()
	}
	return in.Config.Theme
}

// Func renders one document.
type Func func(Input) []byte

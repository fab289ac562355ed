// Package pipeline runs one galaxy profile generation pass.
//
// This package implements the fetch → render pipeline shared by the CLI, the
// HTTP server and the MCP tools, so every entry point applies the same
// caching, fallbacks and defaults.
//
// # Architecture
//
// A run has two stages:
//
//  1. Data: fetch stats and languages from a [Fetcher], or use demo data.
//     Fetch failures degrade to zero stats and no languages.
//  2. Render: produce the four documents concurrently, plus PNG previews
//     when requested. Rendered artifacts are cached by input hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, fetcher, logger)
//	result, err := runner.Execute(ctx, cfg, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["galaxy-header.svg"]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/galaxyprofile/pkg/errors"
	"github.com/matzehuels/galaxyprofile/pkg/profile"
	"github.com/matzehuels/galaxyprofile/pkg/render/raster"
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatSVG, FormatPNG}

// MaxPNGScale bounds PNG preview sizes.
const MaxPNGScale = 8.0

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options configures one run. It supports JSON for MCP tool arguments.
type Options struct {
	Demo     bool       `json:"demo,omitempty"`    // fixed demo data, no network
	Refresh  bool       `json:"refresh,omitempty"` // bypass cached API data
	Formats  []string   `json:"formats,omitempty"`
	PNGScale float64    `json:"png_scale,omitempty"`
	Only     []Artifact `json:"only,omitempty"` // empty renders all artifacts

	Logger *log.Logger `json:"-"` // overrides Runner.Logger for this run

	validated bool
}

// ValidateAndSetDefaults checks the options and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if err := errors.ValidateFormat(f, ValidFormats...); err != nil {
			return err
		}
	}
	if o.PNGScale == 0 {
		o.PNGScale = raster.DefaultScale
	}
	if o.PNGScale < 0 || o.PNGScale > MaxPNGScale {
		return errors.New(errors.ErrCodeInvalidInput, "png scale must be in (0, %g], got %g", MaxPNGScale, o.PNGScale)
	}
	for _, a := range o.Only {
		if !a.Valid() {
			return errors.New(errors.ErrCodeInvalidInput, "unknown artifact %q", a)
		}
	}
	if len(o.Only) == 0 {
		o.Only = Artifacts()
	}
	o.validated = true
	return nil
}

// WantsPNG reports whether PNG previews were requested.
func (o *Options) WantsPNG() bool {
	for _, f := range o.Formats {
		if f == FormatPNG {
			return true
		}
	}
	return false
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a run.
type Result struct {
	// RunID identifies the run in logs and artifact stores.
	RunID string

	// Artifacts maps file names such as "stats-card.svg" to their bytes.
	Artifacts map[string][]byte

	Stats     profile.Stats
	Languages profile.Languages

	// Demo is set when demo data was used; Degraded when a fetch failed
	// and fallback data was rendered instead.
	Demo     bool
	Degraded bool

	Timings Timings

	// CacheHit is set when every artifact came from the cache.
	CacheHit bool
}

// Timings contains per-stage durations.
type Timings struct {
	Fetch  time.Duration
	Render time.Duration
}

// Package theme resolves the color palette shared by all renderers.
//
// A [Theme] maps slot names (void, nebula, synapse_cyan, ...) to #rrggbb hex
// values. User overrides are laid over [Default] key by key; unknown keys
// pass through untouched so arms may reference custom slots.
package theme

import (
	"maps"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/galaxyprofile/pkg/errors"
)

// Palette slot names.
const (
	Void           = "void"
	Nebula         = "nebula"
	StarDust       = "star_dust"
	SynapseCyan    = "synapse_cyan"
	DendriteViolet = "dendrite_violet"
	AxonAmber      = "axon_amber"
	TextBright     = "text_bright"
	TextDim        = "text_dim"
	TextFaint      = "text_faint"
)

// Primary is the slot used whenever a requested slot is missing.
const Primary = SynapseCyan

const primaryHex = "#00d4ff"

var palette = map[string]string{
	Void:           "#080c14",
	Nebula:         "#0f1623",
	StarDust:       "#1a2332",
	SynapseCyan:    primaryHex,
	DendriteViolet: "#a78bfa",
	AxonAmber:      "#ffb020",
	TextBright:     "#f1f5f9",
	TextDim:        "#94a3b8",
	TextFaint:      "#64748b",
}

// Slots lists the built-in palette slots in display order.
var Slots = []string{Void, Nebula, StarDust, SynapseCyan, DendriteViolet, AxonAmber, TextBright, TextDim, TextFaint}

// AccentSlots are the slots an arm may pick by default.
var AccentSlots = []string{SynapseCyan, DendriteViolet, AxonAmber}

// Theme maps slot names to hex colors.
type Theme map[string]string

// Default returns a fresh copy of the built-in palette.
func Default() Theme {
	return Theme(maps.Clone(palette))
}

// Resolve overlays overrides on the default palette.
func Resolve(overrides map[string]string) Theme {
	th := Default()
	maps.Copy(th, overrides)
	return th
}

// Color returns the value of slot, or the primary accent if it is unset.
func (th Theme) Color(slot string) string {
	if c, ok := th[slot]; ok && c != "" {
		return c
	}
	if c, ok := th[Primary]; ok && c != "" {
		return c
	}
	return primaryHex
}

// ArmColors resolves one color per arm slot name.
func (th Theme) ArmColors(slots ...string) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = th.Color(s)
	}
	return out
}

// ValidHex reports whether s is a six-digit #rrggbb color.
func ValidHex(s string) bool {
	return errors.ValidateHexColor(s) == nil
}

// Parse converts a #rrggbb string into a color.
func Parse(hex string) (colorful.Color, error) {
	if err := errors.ValidateHexColor(hex); err != nil {
		return colorful.Color{}, err
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse %q", hex)
	}
	return c, nil
}

// Blend mixes a toward b by t in CIE-L*a*b* space. Inputs that fail to
// parse return a unchanged.
func Blend(a, b string, t float64) string {
	ca, err := Parse(a)
	if err != nil {
		return a
	}
	cb, err := Parse(b)
	if err != nil {
		return a
	}
	return ca.BlendLab(cb, t).Clamped().Hex()
}

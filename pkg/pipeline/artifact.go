package pipeline

import (
	"strings"

	"github.com/matzehuels/galaxyprofile/pkg/errors"
	"github.com/matzehuels/galaxyprofile/pkg/render"
	"github.com/matzehuels/galaxyprofile/pkg/render/header"
	"github.com/matzehuels/galaxyprofile/pkg/render/projects"
	"github.com/matzehuels/galaxyprofile/pkg/render/stats"
	"github.com/matzehuels/galaxyprofile/pkg/render/techstack"
)

// Artifact names one generated document.
type Artifact string

// The four documents of a galaxy profile.
const (
	Header    Artifact = "galaxy-header"
	StatsCard Artifact = "stats-card"
	TechStack Artifact = "tech-stack"
	Projects  Artifact = "projects-constellation"
)

var renderers = map[Artifact]render.Func{
	Header:    header.Render,
	StatsCard: stats.Render,
	TechStack: techstack.Render,
	Projects:  projects.Render,
}

// Artifacts returns every artifact in output order.
func Artifacts() []Artifact {
	return []Artifact{Header, StatsCard, TechStack, Projects}
}

// Valid reports whether a names a known artifact.
func (a Artifact) Valid() bool {
	_, ok := renderers[a]
	return ok
}

// Filename returns the output file name for format, e.g. "tech-stack.svg".
func (a Artifact) Filename(format string) string {
	return string(a) + "." + format
}

// Render draws the artifact's SVG document.
func (a Artifact) Render(in render.Input) []byte {
	return renderers[a](in)
}

// ParseArtifact resolves an artifact name. A trailing ".svg" or ".png" is
// accepted and ignored.
func ParseArtifact(name string) (Artifact, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimSuffix(strings.TrimSuffix(name, "."+FormatSVG), "."+FormatPNG)
	a := Artifact(name)
	if !a.Valid() {
		names := make([]string, 0, len(renderers))
		for _, a := range Artifacts() {
			names = append(names, string(a))
		}
		return "", errors.New(errors.ErrCodeNotFound, "unknown artifact %q (available: %s)", name, strings.Join(names, ", "))
	}
	return a, nil
}

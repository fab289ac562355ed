// Package profile defines the validated data model every renderer reads:
// the profile configuration, the stats mapping and the language histogram.
//
// Values of these types are produced by the config loader and never mutated
// afterwards, so they can be shared freely between concurrent renderers.
package profile

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matzehuels/galaxyprofile/pkg/render/theme"
)

// Defaults applied to optional configuration fields.
const (
	DefaultMaxDisplay = 8 // Languages shown in the tech-stack bars
	MaxProjects       = 3 // Projects drawn in the header and projects panel
)

// Config is a validated profile configuration.
type Config struct {
	Username  string            // GitHub login, also the star-field seed
	Profile   Profile           // Display texts
	Social    map[string]string // Free-form links (email, website, ...)
	Arms      []Arm             // Galaxy arms, at least one
	Projects  []Project         // Featured projects, may be empty
	Theme     theme.Theme       // Fully resolved palette
	Stats     StatsConfig       // Which metrics the stats card shows
	Languages LanguagesConfig   // Language filter for the tech stack
}

// Profile holds the display texts of a profile.
type Profile struct {
	Name       string
	Tagline    string
	Bio        string
	Company    string
	Location   string
	Philosophy string
}

// Arm is one spiral arm of the galaxy: a named technology group.
type Arm struct {
	Name  string   // Display name
	Color string   // Theme slot name, e.g. "synapse_cyan"
	Items []string // Technologies placed along the arm
}

// Project is a featured repository.
type Project struct {
	Repo        string // "owner/name"
	Arm         int    // Index into Config.Arms
	Description string
}

// ShortName returns the repository name without its owner.
func (p Project) ShortName() string {
	if i := strings.LastIndex(p.Repo, "/"); i >= 0 {
		return p.Repo[i+1:]
	}
	return p.Repo
}

// StatsConfig selects the stats card metrics, in display order.
type StatsConfig struct {
	Metrics []Metric
}

// LanguagesConfig filters the language histogram.
type LanguagesConfig struct {
	Exclude    []string
	MaxDisplay int
}

// ArmIndex maps a project arm index to a drawable arm. Indexes outside
// [0, len(Arms)) fall back to the first arm.
func (c *Config) ArmIndex(i int) int {
	if i >= 0 && i < len(c.Arms) {
		return i
	}
	return 0
}

// ArmColors resolves the color of every arm against the theme.
func (c *Config) ArmColors() []string {
	slots := make([]string, len(c.Arms))
	for i, a := range c.Arms {
		slots[i] = a.Color
	}
	return c.Theme.ArmColors(slots...)
}

// FeaturedProjects returns at most MaxProjects projects.
func (c *Config) FeaturedProjects() []Project {
	return c.Projects[:min(len(c.Projects), MaxProjects)]
}

// Initial returns the uppercase first letter of the profile name, or "?".
// Full Unicode case mapping applies, so "ß" becomes "SS".
func (c *Config) Initial() string {
	for _, r := range strings.TrimSpace(c.Profile.Name) {
		return cases.Upper(language.Und).String(string(r))
	}
	return "?"
}

// Metric identifies one stats card cell.
type Metric string

const (
	MetricCommits Metric = "commits"
	MetricStars   Metric = "stars"
	MetricPRs     Metric = "prs"
	MetricIssues  Metric = "issues"
	MetricRepos   Metric = "repos"
)

// AllMetrics returns every metric in default display order.
func AllMetrics() []Metric {
	return []Metric{MetricCommits, MetricStars, MetricPRs, MetricIssues, MetricRepos}
}

// Valid reports whether m is a known metric.
func (m Metric) Valid() bool {
	switch m {
	case MetricCommits, MetricStars, MetricPRs, MetricIssues, MetricRepos:
		return true
	}
	return false
}

// Label returns the display label of m.
func (m Metric) Label() string {
	switch m {
	case MetricCommits:
		return "Commits"
	case MetricStars:
		return "Stars"
	case MetricPRs:
		return "PRs"
	case MetricIssues:
		return "Issues"
	case MetricRepos:
		return "Repos"
	}
	// Casers keep state; renderers run concurrently.
	return cases.Title(language.English).String(string(m))
}

// Stats maps metrics to their counts. Missing metrics count as zero.
type Stats map[Metric]int

// Get returns the count of m, or 0.
func (s Stats) Get(m Metric) int { return s[m] }

// Languages maps a language name to its byte count.
type Languages map[string]int64

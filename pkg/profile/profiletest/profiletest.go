// Package profiletest provides a fully populated sample profile for tests.
package profiletest

import (
	"github.com/matzehuels/galaxyprofile/pkg/profile"
	"github.com/matzehuels/galaxyprofile/pkg/render/theme"
)

// Config returns a validated configuration with three arms and two
// projects. Each call returns an independent copy.
func Config() *profile.Config {
	return &profile.Config{
		Username: "galaxy-dev",
		Profile: profile.Profile{
			Name:       "Nyx Orion",
			Tagline:    "Full Stack Developer & Open Source Explorer",
			Company:    "Stellar Labs",
			Location:   "San Francisco, CA",
			Bio:        "Building tools that make developers' lives easier.",
			Philosophy: "The best code is the code that empowers others.",
		},
		Social: map[string]string{
			"email":    "nyx@stellarlabs.dev",
			"linkedin": "nyxorion",
			"website":  "https://nyxorion.dev",
		},
		Arms: []profile.Arm{
			{Name: "Frontend", Color: theme.DendriteViolet, Items: []string{"TypeScript", "React", "CSS"}},
			{Name: "Backend", Color: theme.SynapseCyan, Items: []string{"Python", "Node.js", "PostgreSQL"}},
			{Name: "DevOps", Color: theme.AxonAmber, Items: []string{"Docker", "GitHub Actions", "AWS"}},
		},
		Projects: []profile.Project{
			{Repo: "galaxy-dev/nebula-ui", Arm: 0, Description: "A component library."},
			{Repo: "galaxy-dev/stargate-api", Arm: 1, Description: "High-performance API gateway."},
		},
		Theme: theme.Default(),
		Stats: profile.StatsConfig{Metrics: profile.AllMetrics()},
		Languages: profile.LanguagesConfig{
			Exclude:    []string{"HTML", "CSS", "Shell", "Makefile"},
			MaxDisplay: profile.DefaultMaxDisplay,
		},
	}
}

// Stats returns realistic stats.
func Stats() profile.Stats {
	return profile.Stats{
		profile.MetricCommits: 1847,
		profile.MetricStars:   342,
		profile.MetricPRs:     156,
		profile.MetricIssues:  89,
		profile.MetricRepos:   42,
	}
}

// Languages returns a language byte histogram.
func Languages() profile.Languages {
	return profile.Languages{
		"Python":     450000,
		"TypeScript": 380000,
		"JavaScript": 120000,
		"Go":         95000,
		"Rust":       45000,
		"Shell":      30000,
		"Dockerfile": 15000,
		"CSS":        10000,
	}
}

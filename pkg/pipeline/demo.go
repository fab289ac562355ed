package pipeline

import "github.com/matzehuels/galaxyprofile/pkg/profile"

// DemoStats returns the fixed stats used in demo mode.
func DemoStats() profile.Stats {
	return profile.Stats{
		profile.MetricCommits: 1847,
		profile.MetricStars:   342,
		profile.MetricPRs:     156,
		profile.MetricIssues:  89,
		profile.MetricRepos:   42,
	}
}

// DemoLanguages returns the fixed language histogram used in demo mode.
func DemoLanguages() profile.Languages {
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

// ZeroStats returns all metrics at zero, the fallback for failed fetches.
func ZeroStats() profile.Stats {
	s := make(profile.Stats, len(profile.AllMetrics()))
	for _, m := range profile.AllMetrics() {
		s[m] = 0
	}
	return s
}

package config

import (
	"slices"
	"strings"

	"github.com/matzehuels/galaxyprofile/pkg/errors"
	"github.com/matzehuels/galaxyprofile/pkg/profile"
	"github.com/matzehuels/galaxyprofile/pkg/render/theme"
)

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}

// Validate checks f and returns the configuration with defaults applied.
// The first problem found is reported with its field path.
func Validate(f *File) (*profile.Config, error) {
	if f == nil {
		return nil, invalid("config must be a mapping")
	}

	username := strings.TrimSpace(f.Username)
	if username == "" {
		return nil, invalid("username is required and must be a non-empty string")
	}
	if f.Profile.Name == "" {
		return nil, invalid("profile.name is required")
	}

	if len(f.Arms) == 0 {
		return nil, invalid("galaxy_arms must be a non-empty list")
	}
	arms := make([]profile.Arm, len(f.Arms))
	for i, a := range f.Arms {
		if a.Name == "" {
			return nil, invalid("galaxy_arms[%d].name is required", i)
		}
		if a.Color == "" {
			return nil, invalid("galaxy_arms[%d].color is required", i)
		}
		arms[i] = profile.Arm{Name: a.Name, Color: a.Color, Items: slices.Clone(a.Items)}
		if arms[i].Items == nil {
			arms[i].Items = []string{}
		}
	}

	projects := make([]profile.Project, len(f.Projects))
	for i, p := range f.Projects {
		if p.Repo == "" {
			return nil, invalid("projects[%d].repo is required", i)
		}
		arm := 0
		if p.Arm != nil {
			arm = *p.Arm
		}
		if arm < 0 || arm >= len(arms) {
			return nil, invalid("projects[%d].arm must be an integer from 0 to %d", i, len(arms)-1)
		}
		projects[i] = profile.Project{Repo: p.Repo, Arm: arm, Description: p.Description}
	}

	for _, key := range sortedKeys(f.Theme) {
		if err := errors.ValidateHexColor(f.Theme[key]); err != nil {
			return nil, errors.New(errors.ErrCodeInvalidColor, "theme.%s %s", key, errors.UserMessage(err))
		}
	}

	for _, field := range []struct{ name, value string }{
		{"profile.name", f.Profile.Name},
		{"profile.tagline", f.Profile.Tagline},
		{"profile.philosophy", f.Profile.Philosophy},
	} {
		if errors.ValidateText(field.name, field.value) != nil {
			return nil, invalid("%s contains invalid control characters", field.name)
		}
	}

	metrics := profile.AllMetrics()
	if f.Stats != nil && len(f.Stats.Metrics) > 0 {
		metrics = make([]profile.Metric, len(f.Stats.Metrics))
		for i, m := range f.Stats.Metrics {
			metrics[i] = profile.Metric(m)
			if !metrics[i].Valid() {
				return nil, invalid("stats.metrics[%d]: unknown metric %q", i, m)
			}
		}
	}

	langs := profile.LanguagesConfig{Exclude: []string{}, MaxDisplay: profile.DefaultMaxDisplay}
	if f.Languages != nil {
		if f.Languages.Exclude != nil {
			langs.Exclude = slices.Clone(f.Languages.Exclude)
		}
		if f.Languages.MaxDisplay != nil {
			if *f.Languages.MaxDisplay < 0 {
				return nil, invalid("languages.max_display must be >= 0, got %d", *f.Languages.MaxDisplay)
			}
			langs.MaxDisplay = *f.Languages.MaxDisplay
		}
	}

	social := map[string]string{}
	for k, v := range f.Social {
		social[k] = v
	}

	return &profile.Config{
		Username: username,
		Profile: profile.Profile{
			Name:       f.Profile.Name,
			Tagline:    f.Profile.Tagline,
			Bio:        f.Profile.Bio,
			Company:    f.Profile.Company,
			Location:   f.Profile.Location,
			Philosophy: f.Profile.Philosophy,
		},
		Social:    social,
		Arms:      arms,
		Projects:  projects,
		Theme:     theme.Resolve(f.Theme),
		Stats:     profile.StatsConfig{Metrics: metrics},
		Languages: langs,
	}, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

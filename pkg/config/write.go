package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/galaxyprofile/pkg/errors"
	"github.com/matzehuels/galaxyprofile/pkg/profile"
	"github.com/matzehuels/galaxyprofile/pkg/render/theme"
)

const header = `# Galaxy Profile configuration
# Generated by: galaxyprofile init
#
# Regenerate SVGs with:
#   galaxyprofile generate
#
# Demo mode (no API calls):
#   galaxyprofile generate --demo

`

// FromConfig converts a validated configuration back to its file form.
// Theme slots equal to the defaults are omitted.
func FromConfig(cfg *profile.Config) *File {
	f := &File{
		Username: cfg.Username,
		Profile: ProfileFile{
			Name:       cfg.Profile.Name,
			Tagline:    cfg.Profile.Tagline,
			Bio:        cfg.Profile.Bio,
			Company:    cfg.Profile.Company,
			Location:   cfg.Profile.Location,
			Philosophy: cfg.Profile.Philosophy,
		},
		Arms: make([]ArmFile, len(cfg.Arms)),
	}
	if len(cfg.Social) > 0 {
		f.Social = cfg.Social
	}
	for i, a := range cfg.Arms {
		f.Arms[i] = ArmFile{Name: a.Name, Color: a.Color, Items: a.Items}
	}
	for _, p := range cfg.Projects {
		arm := p.Arm
		f.Projects = append(f.Projects, ProjectFile{Repo: p.Repo, Arm: &arm, Description: p.Description})
	}

	defaults := theme.Default()
	for k, v := range cfg.Theme {
		if defaults[k] == v {
			continue
		}
		if f.Theme == nil {
			f.Theme = map[string]string{}
		}
		f.Theme[k] = v
	}

	metrics := make([]string, len(cfg.Stats.Metrics))
	for i, m := range cfg.Stats.Metrics {
		metrics[i] = string(m)
	}
	f.Stats = &StatsFile{Metrics: metrics}
	maxDisplay := cfg.Languages.MaxDisplay
	f.Languages = &LanguagesFile{Exclude: cfg.Languages.Exclude, MaxDisplay: &maxDisplay}
	return f
}

// Write encodes f as commented YAML.
func Write(w io.Writer, f *File) error {
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return enc.Close()
}

// Save writes f to path in the syntax its extension selects. The file is
// replaced atomically.
func Save(path string, f *File) error {
	var buf bytes.Buffer
	if FormatFor(path) == FormatTOML {
		buf.WriteString(header)
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
		}
	} else if err := Write(&buf, f); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".config-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create temp file in %s", dir)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "rename to %s", path)
	}
	return nil
}

// Package config loads, validates and writes profile configuration files.
//
// A configuration file is YAML by default and TOML when its extension is
// ".toml". Decoding produces a [File], the on-disk shape with every field
// optional; [Validate] checks it and applies defaults, producing the
// immutable [profile.Config] the renderers consume.
//
//	cfg, err := config.Load("config.yml")
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // report the field path in err to the user
//	}
package config

import (
	"bytes"
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/galaxyprofile/pkg/errors"
	"github.com/matzehuels/galaxyprofile/pkg/profile"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "config.yml"

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the syntax from a file extension.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// File is the on-disk configuration. All fields are optional at this level.
type File struct {
	Username  string            `yaml:"username" toml:"username"`
	Profile   ProfileFile       `yaml:"profile" toml:"profile"`
	Social    map[string]string `yaml:"social,omitempty" toml:"social,omitempty"`
	Arms      []ArmFile         `yaml:"galaxy_arms" toml:"galaxy_arms"`
	Projects  []ProjectFile     `yaml:"projects,omitempty" toml:"projects,omitempty"`
	Theme     map[string]string `yaml:"theme,omitempty" toml:"theme,omitempty"`
	Stats     *StatsFile        `yaml:"stats,omitempty" toml:"stats,omitempty"`
	Languages *LanguagesFile    `yaml:"languages,omitempty" toml:"languages,omitempty"`
}

type ProfileFile struct {
	Name       string `yaml:"name" toml:"name"`
	Tagline    string `yaml:"tagline,omitempty" toml:"tagline,omitempty"`
	Bio        string `yaml:"bio,omitempty" toml:"bio,omitempty"`
	Company    string `yaml:"company,omitempty" toml:"company,omitempty"`
	Location   string `yaml:"location,omitempty" toml:"location,omitempty"`
	Philosophy string `yaml:"philosophy,omitempty" toml:"philosophy,omitempty"`
}

type ArmFile struct {
	Name  string   `yaml:"name" toml:"name"`
	Color string   `yaml:"color" toml:"color"`
	Items []string `yaml:"items" toml:"items"`
}

type ProjectFile struct {
	Repo        string `yaml:"repo" toml:"repo"`
	Arm         *int   `yaml:"arm,omitempty" toml:"arm,omitempty"`
	Description string `yaml:"description,omitempty" toml:"description,omitempty"`
}

type StatsFile struct {
	Metrics []string `yaml:"metrics,omitempty" toml:"metrics,omitempty"`
}

type LanguagesFile struct {
	Exclude    []string `yaml:"exclude,omitempty" toml:"exclude,omitempty"`
	MaxDisplay *int     `yaml:"max_display,omitempty" toml:"max_display,omitempty"`
}

//go:embed example.yml
var exampleYAML []byte

// Example returns the bundled example configuration, used by demo mode
// when no configuration file exists.
func Example() *File {
	f, err := Decode(exampleYAML, FormatYAML)
	if err != nil {
		panic(errors.Internal("bundled example config: %v", err))
	}
	return f
}

// Load reads, decodes and validates the configuration at path.
func Load(path string) (*profile.Config, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(f)
}

// LoadFile reads and decodes path without validating it.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	return Decode(data, FormatFor(path))
}

// Parse decodes and validates data.
func Parse(data []byte, format Format) (*profile.Config, error) {
	f, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return Validate(f)
}

// Decode parses data in the given syntax. An empty document decodes to an
// empty File, which then fails validation on the missing username.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config must be a TOML table")
		}
	case FormatYAML, "":
		if len(bytes.TrimSpace(data)) == 0 {
			return &f, nil
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config must be a YAML mapping")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", format)
	}
	return &f, nil
}

package cache

import "strings"

// Keyer builds cache keys for every kind of cached value.
type Keyer interface {
	// HTTPKey keys a raw API response.
	HTTPKey(namespace, key string) string
	StatsKey(user string) string
	LanguagesKey(user string) string
	// ArtifactKey keys a rendered document by the hash of the inputs it
	// was rendered from.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Name   string  `json:"name"`
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces readable keys for user data and hashed keys for
// artifacts. GitHub logins are case-insensitive, so users are lowercased.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

func (DefaultKeyer) StatsKey(user string) string {
	return "stats:" + strings.ToLower(strings.TrimSpace(user))
}

func (DefaultKeyer) LanguagesKey(user string) string {
	return "languages:" + strings.ToLower(strings.TrimSpace(user))
}

func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

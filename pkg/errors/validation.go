package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// hexColorRegex matches a six-digit hex color such as "#00d4ff".
var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateHexColor validates a theme color value.
func ValidateHexColor(value string) error {
	if !hexColorRegex.MatchString(value) {
		return New(ErrCodeInvalidColor, "must be a valid hex color (e.g. #00d4ff), got %q", value)
	}
	return nil
}

// usernameRegex matches GitHub logins: alphanumeric or single hyphens,
// not starting with a hyphen, at most 39 characters.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)

// ValidateUsername validates a GitHub username used as identity and seed.
func ValidateUsername(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return New(ErrCodeInvalidInput, "username cannot be empty")
	}
	if !usernameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid username %q: must be 1-39 alphanumeric characters or hyphens", name)
	}
	return nil
}

// ValidateText rejects control characters other than newline and tab.
// Profile texts are embedded in SVG documents; XML 1.0 cannot carry them.
func ValidateText(field, value string) error {
	for _, r := range value {
		if r == '\n' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", field)
		}
	}
	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateFormat validates an output format name against the supported set.
func ValidateFormat(format string, supported ...string) error {
	for _, s := range supported {
		if format == s {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (supported: %s)", format, strings.Join(supported, ", "))
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}

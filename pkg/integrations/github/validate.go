package github

import (
	"regexp"
	"strings"

	"github.com/matzehuels/galaxyprofile/pkg/errors"
)

var (
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)

	repoURLPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?github\.com/([^/]+)/([^/?#]+?)(?:\.git)?/?(?:[?#].*)?$`)
)

// ValidateRepo validates a GitHub repository name.
func ValidateRepo(repo string) error {
	if repo == "" {
		return errors.New(errors.ErrCodeInvalidInput, "repo is required")
	}
	if !validRepo.MatchString(repo) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid repo %q: must be 1-100 alphanumeric characters, hyphens, underscores, or dots", repo)
	}
	return nil
}

// ParseRepoRef accepts "owner/repo" or a github.com repository URL and
// returns the validated owner and repository name.
func ParseRepoRef(ref string) (owner, repo string, err error) {
	ref = strings.TrimSpace(ref)
	if m := repoURLPattern.FindStringSubmatch(ref); m != nil {
		owner, repo = m[1], m[2]
	} else {
		var ok bool
		owner, repo, ok = strings.Cut(strings.TrimSuffix(ref, ".git"), "/")
		if !ok || strings.Contains(repo, "/") {
			return "", "", errors.New(errors.ErrCodeInvalidInput, "invalid repo reference %q: use owner/repo", ref)
		}
	}
	if err := errors.ValidateUsername(owner); err != nil {
		return "", "", err
	}
	if err := ValidateRepo(repo); err != nil {
		return "", "", err
	}
	return owner, repo, nil
}

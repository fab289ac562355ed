// Package buildinfo holds version information stamped in at build time:
//
//	go build -ldflags "-X github.com/matzehuels/galaxyprofile/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/galaxyprofile/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/galaxyprofile/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template is the cobra --version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent identifies galaxyprofile to the GitHub API, which rejects
// requests without one.
func UserAgent() string {
	return "galaxyprofile/" + Version
}

// Fingerprint identifies the running build's code. Stamped releases use
// Version and Commit. Unstamped "dev" builds hash their own executable, so
// every rebuild after a code change gets a new fingerprint.
func Fingerprint() string {
	if Version != "dev" {
		return Version + "+" + Commit
	}
	return devFingerprint()
}

var devFingerprint = sync.OnceValue(func() string {
	if sum, err := executableHash(); err == nil {
		return "dev+" + sum
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		rev, dirty := "", false
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				rev = s.Value
			case "vcs.modified":
				dirty = s.Value == "true"
			}
		}
		if rev != "" && !dirty {
			return "dev+" + rev
		}
	}
	return "dev+" + Commit
})

func executableHash() (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil))[:16], nil
}

package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/galaxyprofile/pkg/errors"
)

// DefaultDir is the output directory used when none is configured.
const DefaultDir = "assets/generated"

// DirStore writes records as files named "<name>.<format>". The username
// is not part of the path: one directory holds one profile.
type DirStore struct {
	dir string
}

// NewDirStore creates dir if needed. An empty dir means DefaultDir.
func NewDirStore(dir string) (*DirStore, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := errors.ValidatePath(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &DirStore{dir: dir}, nil
}

// Dir returns the output directory.
func (s *DirStore) Dir() string { return s.dir }

// Path returns the file path of an artifact.
func (s *DirStore) Path(name, format string) string {
	return filepath.Join(s.dir, Record{Name: name, Format: format}.Filename())
}

// Save writes the record atomically, so a concurrent reader never sees a
// partial document.
func (s *DirStore) Save(_ context.Context, rec Record) error {
	if rec.Name == "" || rec.Format == "" {
		return errors.New(errors.ErrCodeInvalidInput, "artifact name and format are required")
	}
	path := s.Path(rec.Name, rec.Format)

	tmp, err := os.CreateTemp(s.dir, "."+rec.Filename()+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(rec.Data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

func (s *DirStore) Load(_ context.Context, username, name, format string) (*Record, error) {
	path := s.Path(name, format)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeNotFound, "artifact %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Record{
		Username:  username,
		Name:      name,
		Format:    format,
		Data:      data,
		CreatedAt: info.ModTime(),
	}, nil
}

func (s *DirStore) Close(context.Context) error { return nil }

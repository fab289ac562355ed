package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/galaxyprofile/pkg/config"
	"github.com/matzehuels/galaxyprofile/pkg/errors"
	"github.com/matzehuels/galaxyprofile/pkg/integrations/github"
	"github.com/matzehuels/galaxyprofile/pkg/render/theme"
)

func TestRunInitDefaults(t *testing.T) {
	buf := captureOutput(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	c := New(io.Discard, LogInfo)

	err := c.runInit(quietContext(), initOptions{
		config:   path,
		username: "octocat",
		tagline:  "Ships things",
		yes:      true,
	})
	if err != nil {
		t.Fatalf("runInit: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("saved config does not load: %v", err)
	}
	if cfg.Username != "octocat" || cfg.Profile.Name != "octocat" || cfg.Profile.Tagline != "Ships things" {
		t.Errorf("profile = %q %+v", cfg.Username, cfg.Profile)
	}
	if len(cfg.Arms) != wizardArms {
		t.Fatalf("arms = %d, want %d", len(cfg.Arms), wizardArms)
	}
	for i, arm := range cfg.Arms {
		want := defaultArm(i)
		if arm.Name != want.Name || !slices.Equal(arm.Items, want.Items) {
			t.Errorf("arm %d = %+v, want %+v", i, arm, want)
		}
	}
	if len(cfg.Projects) != 0 {
		t.Errorf("projects = %v, want none", cfg.Projects)
	}
	if buf.Len() == 0 {
		t.Error("no summary printed")
	}
}

func TestRunInitExistingFile(t *testing.T) {
	captureOutput(t)
	c := New(io.Discard, LogInfo)
	path := writeTestConfig(t)

	err := c.runInit(quietContext(), initOptions{config: path, username: "octocat", yes: true})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want INVALID_INPUT for an existing file", err)
	}

	if err := c.runInit(quietContext(), initOptions{config: path, username: "octocat", yes: true, force: true}); err != nil {
		t.Fatalf("--force: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Username != "octocat" {
		t.Errorf("username = %q after --force", cfg.Username)
	}
}

func TestRunInitEdit(t *testing.T) {
	captureOutput(t)
	c := New(io.Discard, LogInfo)
	path := writeTestConfig(t)
	before, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.runInit(quietContext(), initOptions{config: path, name: "Renamed", edit: true, yes: true}); err != nil {
		t.Fatalf("--edit: %v", err)
	}

	after, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if after.Profile.Name != "Renamed" {
		t.Errorf("name = %q, want Renamed", after.Profile.Name)
	}
	if after.Username != before.Username || after.Profile.Tagline != before.Profile.Tagline {
		t.Errorf("edit lost fields: %q %q", after.Username, after.Profile.Tagline)
	}
	if len(after.Projects) != len(before.Projects) || after.Projects[1].Repo != before.Projects[1].Repo {
		t.Errorf("projects changed: %+v", after.Projects)
	}
	if after.Arms[0].Name != before.Arms[0].Name {
		t.Errorf("arm 0 = %q, want %q", after.Arms[0].Name, before.Arms[0].Name)
	}
}

func TestRunInitErrors(t *testing.T) {
	captureOutput(t)
	c := New(io.Discard, LogInfo)
	dir := t.TempDir()

	tests := []struct {
		name string
		opts initOptions
		code errors.Code
	}{
		{"edit missing file", initOptions{config: filepath.Join(dir, "missing.yml"), edit: true, yes: true}, errors.ErrCodeFileNotFound},
		{"no username", initOptions{config: filepath.Join(dir, "a.yml"), yes: true}, errors.ErrCodeInvalidInput},
		{"bad username", initOptions{config: filepath.Join(dir, "b.yml"), username: "-bad-", yes: true}, errors.ErrCodeInvalidInput},
		{"control chars", initOptions{config: filepath.Join(dir, "c.yml"), username: "octocat", tagline: "a\x00b", yes: true}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.runInit(quietContext(), tt.opts)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (%v)", got, tt.code, err)
			}
			if _, statErr := os.Stat(tt.opts.config); tt.name != "edit missing file" && statErr == nil {
				t.Error("config written despite error")
			}
		})
	}
}

func TestWizardProjectsNonInteractive(t *testing.T) {
	called := false
	w := &wizard{
		interactive: false,
		listRepos: func(context.Context, string) ([]github.Repo, error) {
			called = true
			return nil, nil
		},
	}
	existing := []config.ProjectFile{{Repo: "octocat/hello"}}

	got, err := w.projects(context.Background(), "octocat", nil, existing)
	if err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("repositories listed without a terminal")
	}
	if len(got) != 1 || got[0].Repo != "octocat/hello" {
		t.Errorf("projects = %+v, want existing kept", got)
	}
}

func TestChosenProjects(t *testing.T) {
	arms := []config.ArmFile{
		{Name: "Frontend", Items: []string{"TypeScript", "React"}},
		{Name: "Backend", Items: []string{"Go", "Python"}},
		{Name: "Systems", Items: []string{"Rust", "go"}},
	}
	keep := 2
	existing := []config.ProjectFile{{Repo: "octocat/kept", Arm: &keep, Description: "Mine"}}
	repos := []github.Repo{
		{FullName: "octocat/api", Language: "Go", Description: "API"},
		{FullName: "OctoCat/Kept", Language: "TypeScript"},
		{FullName: "octocat/notes", Language: ""},
		{FullName: "octocat/site", Language: "typescript"},
	}

	got := chosenProjects(repos, arms, existing)
	if len(got) != 4 {
		t.Fatalf("got %d projects", len(got))
	}

	tests := []struct {
		repo string
		arm  int
		desc string
	}{
		{"octocat/api", 1, "API"},
		{"octocat/kept", 2, "Mine"},
		{"octocat/notes", 0, ""},
		{"octocat/site", 0, ""},
	}
	for i, tt := range tests {
		p := got[i]
		if p.Repo != tt.repo || p.Arm == nil || *p.Arm != tt.arm || p.Description != tt.desc {
			t.Errorf("project %d = %+v (arm %v), want %+v", i, p, p.Arm, tt)
		}
	}
}

func TestValidateSlot(t *testing.T) {
	validate := validateSlot(map[string]string{"coral": "#ff7f50"})

	for _, slot := range append(slices.Clone(theme.Slots), "coral") {
		if err := validate(slot); err != nil {
			t.Errorf("%q rejected: %v", slot, err)
		}
	}
	for _, slot := range []string{"", "magenta", "#ff0000"} {
		if err := validate(slot); !errors.Is(err, errors.ErrCodeInvalidColor) {
			t.Errorf("%q: err = %v, want INVALID_COLOR", slot, err)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "  ", "b", "c"); got != "b" {
		t.Errorf("firstNonEmpty = %q, want b", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Errorf("firstNonEmpty = %q, want empty", got)
	}
}

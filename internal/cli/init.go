package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/galaxyprofile/pkg/cache"
	"github.com/matzehuels/galaxyprofile/pkg/config"
	"github.com/matzehuels/galaxyprofile/pkg/errors"
	"github.com/matzehuels/galaxyprofile/pkg/integrations/github"
	"github.com/matzehuels/galaxyprofile/pkg/profile"
	"github.com/matzehuels/galaxyprofile/pkg/render/theme"
)

// wizardArms is the number of arms the wizard asks for.
const wizardArms = 3

// initOptions holds the flags of the init command.
type initOptions struct {
	config   string
	username string
	name     string
	tagline  string
	edit     bool
	force    bool
	yes      bool
	noRepos  bool
}

// initCommand creates the init command.
func (c *CLI) initCommand() *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a profile config with an interactive wizard",
		Long: `Init asks for your GitHub username, display name and tagline, lets you
pick the technologies of three galaxy arms from a catalog and choose up to
three featured repositories, then validates and writes the config.

Without a terminal, or with --yes, every question takes its default.`,
		Example: `  # Interactive setup
  galaxyprofile init

  # Scripted setup with catalog defaults
  galaxyprofile init --yes --username octocat --name "The Octocat"

  # Revise an existing config
  galaxyprofile init --edit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInit(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", config.DefaultPath, "config file to write")
	cmd.Flags().StringVar(&opts.username, "username", "", "GitHub username")
	cmd.Flags().StringVar(&opts.name, "name", "", "display name")
	cmd.Flags().StringVar(&opts.tagline, "tagline", "", "short description under the name")
	cmd.Flags().BoolVar(&opts.edit, "edit", false, "start from the existing config")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing config")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "accept defaults without prompting")
	cmd.Flags().BoolVar(&opts.noRepos, "no-repos", false, "do not list GitHub repositories for featured projects")

	return cmd
}

func (c *CLI) runInit(ctx context.Context, opts initOptions) error {
	base, err := initBase(opts)
	if err != nil {
		return err
	}

	w := &wizard{
		opts:        opts,
		interactive: !opts.yes && isTerminal(os.Stdin) && isTerminal(os.Stderr),
		base:        base,
		listRepos:   c.listRepos,
	}
	if w.interactive {
		fmt.Fprintln(out, StyleTitle.Render("Galaxy Profile setup"))
		printNewline()
	}

	f, err := w.run(ctx)
	if err != nil {
		return err
	}
	cfg, err := config.Validate(f)
	if err != nil {
		return err
	}
	if err := config.Save(opts.config, config.FromConfig(cfg)); err != nil {
		return err
	}

	printNewline()
	printSuccess("Config saved and validated: %s", opts.config)
	printKeyValue("Username", cfg.Username)
	printKeyValue("Name", cfg.Profile.Name)
	armNames := make([]string, len(cfg.Arms))
	for i, a := range cfg.Arms {
		armNames[i] = a.Name
	}
	printKeyValue("Arms", strings.Join(armNames, ", "))
	printKeyValue("Projects", fmt.Sprint(len(cfg.Projects)))
	printNewline()
	printNextStep("Preview without API calls", "galaxyprofile generate --demo")
	printNextStep("Generate your SVGs", "galaxyprofile generate")
	return nil
}

// initBase returns the file the wizard starts from: the existing config
// with --edit, an empty one otherwise.
func initBase(opts initOptions) (*config.File, error) {
	_, statErr := os.Stat(opts.config)
	exists := statErr == nil
	switch {
	case opts.edit && !exists:
		return nil, errors.New(errors.ErrCodeFileNotFound, "--edit: config file %s not found", opts.config)
	case opts.edit:
		return config.LoadFile(opts.config)
	case exists && !opts.force:
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s already exists; use --edit to start from it or --force to overwrite", opts.config)
	default:
		return &config.File{}, nil
	}
}

// listRepos lists the user's repositories through the cached GitHub client.
func (c *CLI) listRepos(ctx context.Context, user string) ([]github.Repo, error) {
	var store cache.Cache = cache.NewNullCache()
	if dir, err := cacheDir(); err == nil {
		if fc, err := cache.NewFileCache(dir); err == nil {
			store = fc
		}
	}
	client, err := c.githubClient(store, cacheKeyer())
	if err != nil {
		return nil, err
	}
	return client.ListRepos(ctx, user, false)
}

// =============================================================================
// Wizard
// =============================================================================

// wizard builds a config file from flags, an optional base file and, when
// interactive, answers to prompts.
type wizard struct {
	opts        initOptions
	interactive bool
	base        *config.File
	listRepos   func(ctx context.Context, user string) ([]github.Repo, error)
}

func (w *wizard) run(ctx context.Context) (*config.File, error) {
	f := *w.base

	var err error
	if f.Username, err = w.text("GitHub username", firstNonEmpty(w.opts.username, f.Username), w.opts.username != "", validateUsername); err != nil {
		return nil, err
	}
	f.Username = strings.TrimSpace(f.Username)
	if f.Profile.Name, err = w.text("Display name", firstNonEmpty(w.opts.name, f.Profile.Name, f.Username), w.opts.name != "", required("display name")); err != nil {
		return nil, err
	}
	if f.Profile.Tagline, err = w.text("Tagline", firstNonEmpty(w.opts.tagline, f.Profile.Tagline), w.opts.tagline != "", validateText("tagline")); err != nil {
		return nil, err
	}

	if f.Arms, err = w.arms(f.Arms, f.Theme); err != nil {
		return nil, err
	}
	if f.Projects, err = w.projects(ctx, f.Username, f.Arms, f.Projects); err != nil {
		return nil, err
	}
	return &f, nil
}

// text returns value when fixed is set or prompting is off, after checking
// it with validate; otherwise it asks the user.
func (w *wizard) text(label, value string, fixed bool, validate func(string) error) (string, error) {
	if fixed || !w.interactive {
		if err := validate(value); err != nil {
			return "", err
		}
		return value, nil
	}
	m, err := runModel(NewPromptModel(label, value, validate))
	if err != nil {
		return "", err
	}
	if m.Aborted {
		return "", errCanceled
	}
	return m.Value(), nil
}

// arms asks for the first three arms. Arms beyond the third are kept.
func (w *wizard) arms(existing []config.ArmFile, th map[string]string) ([]config.ArmFile, error) {
	all := AllTechs()
	out := slices.Clone(existing)
	for i := range wizardArms {
		arm := defaultArm(i)
		if i < len(existing) {
			arm = existing[i]
		}

		var err error
		n := i + 1
		if arm.Name, err = w.text(fmt.Sprintf("Arm %d/%d name", n, wizardArms), arm.Name, false, required("arm name")); err != nil {
			return nil, err
		}
		if arm.Color, err = w.text(fmt.Sprintf("Arm %d/%d color (%s)", n, wizardArms, strings.Join(theme.AccentSlots, ", ")), arm.Color, false, validateSlot(th)); err != nil {
			return nil, err
		}
		if w.interactive {
			m, err := runModel(NewTechPickerModel(fmt.Sprintf("Arm %d/%d technologies", n, wizardArms), all, arm.Items))
			if err != nil {
				return nil, err
			}
			if m.Aborted {
				return nil, errCanceled
			}
			arm.Items = m.Selected
		}

		if i < len(out) {
			out[i] = arm
		} else {
			out = append(out, arm)
		}
	}
	return out, nil
}

// defaultArm proposes arm i for a fresh config.
func defaultArm(i int) config.ArmFile {
	d := defaultArms[i%len(defaultArms)]
	items := categoryTechs(d.Category)
	return config.ArmFile{
		Name:  d.Name,
		Color: theme.AccentSlots[i%len(theme.AccentSlots)],
		Items: items[:min(defaultArmItems, len(items))],
	}
}

// projects picks featured repositories from the user's GitHub repos. When
// not interactive, or when listing fails, the existing projects are kept.
func (w *wizard) projects(ctx context.Context, user string, arms []config.ArmFile, existing []config.ProjectFile) ([]config.ProjectFile, error) {
	if !w.interactive || w.opts.noRepos || w.listRepos == nil {
		return existing, nil
	}

	var repos []github.Repo
	err := runTask(ctx, "Featured projects", true, func(ctx context.Context, stage func(string)) error {
		stage("Listing repositories of " + user)
		var err error
		repos, err = w.listRepos(ctx, user)
		return err
	})
	if err != nil {
		if ctx.Err() != nil || err == context.Canceled {
			return nil, errCanceled
		}
		printWarning("Could not list repositories: %s", errors.UserMessage(err))
		return existing, nil
	}
	if len(repos) == 0 {
		printInfo("No public repositories found for %s", user)
		return existing, nil
	}

	pre := make([]string, len(existing))
	for i, p := range existing {
		pre[i] = p.Repo
	}
	m, err := runModel(NewRepoPickerModel(repos, pre, profile.MaxProjects))
	if err != nil {
		return nil, err
	}
	if m.Aborted {
		return nil, errCanceled
	}
	return chosenProjects(m.Chosen(), arms, existing), nil
}

// chosenProjects turns picked repositories into project entries. Entries
// already in existing keep their arm and description.
func chosenProjects(repos []github.Repo, arms []config.ArmFile, existing []config.ProjectFile) []config.ProjectFile {
	out := make([]config.ProjectFile, 0, len(repos))
	for _, r := range repos {
		i := slices.IndexFunc(existing, func(p config.ProjectFile) bool {
			return strings.EqualFold(p.Repo, r.FullName)
		})
		if i >= 0 {
			out = append(out, existing[i])
			continue
		}
		arm := projectArm(r.Language, arms)
		out = append(out, config.ProjectFile{Repo: r.FullName, Arm: &arm, Description: r.Description})
	}
	return out
}

// projectArm returns the first arm listing lang among its items, or 0.
func projectArm(lang string, arms []config.ArmFile) int {
	if lang == "" {
		return 0
	}
	for i, a := range arms {
		if slices.ContainsFunc(a.Items, func(item string) bool { return strings.EqualFold(item, lang) }) {
			return i
		}
	}
	return 0
}

// =============================================================================
// Validators
// =============================================================================

func validateUsername(s string) error {
	return errors.ValidateUsername(s)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(errors.ErrCodeInvalidInput, "%s cannot be empty", field)
		}
		return errors.ValidateText(field, s)
	}
}

func validateText(field string) func(string) error {
	return func(s string) error {
		return errors.ValidateText(field, s)
	}
}

// validateSlot accepts built-in palette slots and slots the config's theme
// defines.
func validateSlot(th map[string]string) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if slices.Contains(theme.Slots, s) {
			return nil
		}
		if _, ok := th[s]; ok && s != "" {
			return nil
		}
		return errors.New(errors.ErrCodeInvalidColor, "unknown theme slot %q (try %s)", s, strings.Join(theme.AccentSlots, ", "))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

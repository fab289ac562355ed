package cli

import (
	"context"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/galaxyprofile/pkg/artifact"
	"github.com/matzehuels/galaxyprofile/pkg/config"
	"github.com/matzehuels/galaxyprofile/pkg/errors"
	"github.com/matzehuels/galaxyprofile/pkg/pipeline"
	"github.com/matzehuels/galaxyprofile/pkg/profile"
)

// generateOptions holds the flags of the generate command.
type generateOptions struct {
	config   string
	output   string
	demo     bool
	png      bool
	pngScale float64
	refresh  bool
	only     []string
	store    string
	backend  backendOptions
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the profile SVG documents",
		Long: `Generate fetches your GitHub stats and language histogram and renders
the galaxy header, stats card, tech-stack radar and projects panel.

Set GITHUB_TOKEN to include private contributions and raise the API rate
limit. Fetched data is cached for an hour; use --refresh to bypass it.`,
		Example: `  # Generate from ./config.yml into assets/generated
  galaxyprofile generate

  # Offline preview with fixed demo numbers, plus PNG previews
  galaxyprofile generate --demo --png

  # Only re-render the stats card
  galaxyprofile generate --only stats-card`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", config.DefaultPath, "profile config file (YAML or TOML)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultOutputDir, "output directory")
	cmd.Flags().BoolVar(&opts.demo, "demo", false, "use demo data instead of calling the GitHub API")
	cmd.Flags().BoolVar(&opts.png, "png", false, "also write PNG previews")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", 0, "PNG preview scale factor (default 2)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached GitHub data")
	cmd.Flags().StringSliceVar(&opts.only, "only", nil, "render only these documents (e.g. stats-card,tech-stack)")
	cmd.Flags().StringVar(&opts.store, "store", backendDir, "artifact store: dir or mongo ("+envMongoURI+")")
	opts.backend.register(cmd)

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts generateOptions) error {
	logger := loggerFromContext(ctx)
	watch := startStopwatch(logger)

	cfg, example, err := loadProfile(opts.config, opts.demo)
	if err != nil {
		return err
	}
	if example {
		printWarning("No config at %s, using the bundled example profile", opts.config)
	}

	only, err := parseOnly(opts.only)
	if err != nil {
		return err
	}
	runOpts := pipeline.Options{
		Demo:     opts.demo,
		Refresh:  opts.refresh,
		Formats:  parseFormats(opts.png),
		PNGScale: opts.pngScale,
		Only:     only,
	}
	if err := runOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if !opts.demo && os.Getenv(envGitHubToken) == "" {
		logger.Warn("GITHUB_TOKEN not set, using public data with a lower rate limit")
	}

	runner, err := c.newRunner(ctx, opts.backend)
	if err != nil {
		return err
	}
	defer runner.Close()

	store, err := newStore(ctx, opts.store, opts.output)
	if err != nil {
		return err
	}
	defer store.Close(context.WithoutCancel(ctx))

	interactive := isTerminal(os.Stderr)
	if interactive && logger.GetLevel() > log.DebugLevel {
		// The progress view owns stderr; degraded runs are reported after it.
		runOpts.Logger = newLogger(os.Stderr, log.ErrorLevel)
	}

	var (
		result *pipeline.Result
		rows   []artifactRow
	)
	err = runTask(ctx, "Generating galaxy profile", interactive, func(ctx context.Context, stage func(string)) error {
		restore := reportPipeline(stage)
		defer restore()

		if opts.demo {
			stage("Using demo data")
		}
		res, err := runner.Execute(ctx, cfg, runOpts)
		if err != nil {
			return err
		}
		stage(fmt.Sprintf("Writing %d files", len(res.Artifacts)))
		rows, err = saveArtifacts(ctx, store, cfg.Username, res)
		result = res
		return err
	})
	if err != nil {
		return err
	}

	logger.Debug("run complete", "run", result.RunID, "fetch", result.Timings.Fetch, "render", result.Timings.Render)
	watch.finish(fmt.Sprintf("Generated %d files", len(rows)))

	printNewline()
	printSuccess("Galaxy profile for %s", StyleHighlight.Render(cfg.Username))
	printStats(result.Stats, len(result.Languages), result.CacheHit)
	if result.Degraded {
		printWarning("GitHub data was unavailable; fallback values were rendered (run with -v for details)")
	}
	printArtifacts(rows)
	printNewline()
	if opts.store == "" || opts.store == backendDir {
		printNextStep("Embed in your README", fmt.Sprintf("![Galaxy](./%s)", path.Join(opts.output, pipeline.Header.Filename(pipeline.FormatSVG))))
	}
	return nil
}

// loadProfile loads the config at file. In demo mode a missing file falls
// back to the bundled example, reported through example.
func loadProfile(file string, demo bool) (cfg *profile.Config, example bool, err error) {
	cfg, err = config.Load(file)
	if err == nil {
		return cfg, false, nil
	}
	if demo && errors.Is(err, errors.ErrCodeFileNotFound) {
		cfg, err = config.Validate(config.Example())
		return cfg, true, err
	}
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "no config at %s; run `galaxyprofile init` or pass --demo", file)
	}
	return nil, false, err
}

// saveArtifacts writes every document of res to store, in file name order.
func saveArtifacts(ctx context.Context, store artifact.Store, username string, res *pipeline.Result) ([]artifactRow, error) {
	names := make([]string, 0, len(res.Artifacts))
	for name := range res.Artifacts {
		names = append(names, name)
	}
	slices.Sort(names)

	now := time.Now().UTC()
	rows := make([]artifactRow, 0, len(names))
	for _, file := range names {
		ext := path.Ext(file)
		rec := artifact.Record{
			Username:  username,
			Name:      strings.TrimSuffix(file, ext),
			Format:    strings.TrimPrefix(ext, "."),
			RunID:     res.RunID,
			Data:      res.Artifacts[file],
			CreatedAt: now,
		}
		if err := store.Save(ctx, rec); err != nil {
			return rows, err
		}
		rows = append(rows, artifactRow{File: file, Size: len(rec.Data), Dest: destination(store, rec)})
	}
	return rows, nil
}

// destination describes where store put rec.
func destination(store artifact.Store, rec artifact.Record) string {
	switch s := store.(type) {
	case *artifact.DirStore:
		return s.Path(rec.Name, rec.Format)
	case *artifact.MongoStore:
		return "mongodb"
	default:
		return "-"
	}
}

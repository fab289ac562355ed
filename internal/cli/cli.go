package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/galaxyprofile/pkg/artifact"
	"github.com/matzehuels/galaxyprofile/pkg/buildinfo"
	"github.com/matzehuels/galaxyprofile/pkg/cache"
	"github.com/matzehuels/galaxyprofile/pkg/errors"
	"github.com/matzehuels/galaxyprofile/pkg/integrations/github"
	"github.com/matzehuels/galaxyprofile/pkg/observability"
	"github.com/matzehuels/galaxyprofile/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "galaxyprofile"

	// defaultOutputDir is where generate writes documents.
	defaultOutputDir = artifact.DefaultDir
)

// Environment variables read by the CLI.
const (
	envGitHubToken = "GITHUB_TOKEN"
	envRedisAddr   = "GALAXY_REDIS_ADDR"
	envMongoURI    = "GALAXY_MONGO_URI"
	envCachePrefix = "GALAXY_CACHE_PREFIX"
	envGitHubAPI   = "GITHUB_API_URL"
)

// Cache and store backends selectable by flag.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendDir   = "dir"
	backendMongo = "mongo"
)

// Log levels accepted by New.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger  *log.Logger
	verbose bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Galaxy Profile generates animated SVGs for your GitHub profile",
		Long:         `Galaxy Profile turns a profile config and your GitHub activity into four animated SVG documents: a galaxy header, a stats card, a tech-stack radar and a projects panel.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			if c.Logger.GetLevel() <= LogDebug {
				observability.NewLogHooks(c.Logger).Install()
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.mcpCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// backendOptions selects where fetched data and artifacts are cached.
type backendOptions struct {
	noCache bool
	cache   string // "file" or "redis"
}

func (o *backendOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching of API data and rendered documents")
	cmd.Flags().StringVar(&o.cache, "cache", backendFile, "cache backend: file or redis ("+envRedisAddr+")")
}

// newRunner creates a pipeline runner whose fetcher and artifact cache share
// one backend.
func (c *CLI) newRunner(ctx context.Context, o backendOptions) (*pipeline.Runner, error) {
	store, err := newCache(ctx, o)
	if err != nil {
		return nil, err
	}
	keyer := cacheKeyer()
	client, err := c.githubClient(store, keyer)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, keyer, client, c.Logger), nil
}

// githubClient builds a GitHub client from $GITHUB_TOKEN and, for GitHub
// Enterprise, $GITHUB_API_URL.
func (c *CLI) githubClient(store cache.Cache, keyer cache.Keyer) (*github.Client, error) {
	baseURL := strings.TrimSpace(os.Getenv(envGitHubAPI))
	if baseURL != "" {
		if err := errors.ValidateURL(baseURL); err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: %s", envGitHubAPI, errors.UserMessage(err))
		}
	}
	return github.NewClient(github.Options{
		Token:   os.Getenv(envGitHubToken),
		Cache:   store,
		Keyer:   keyer,
		Logger:  c.Logger,
		BaseURL: baseURL,
	}), nil
}

// cacheKeyer namespaces cache keys with $GALAXY_CACHE_PREFIX, so several
// deployments can share one Redis instance.
func cacheKeyer() cache.Keyer {
	prefix := strings.TrimSpace(os.Getenv(envCachePrefix))
	if prefix == "" {
		return cache.NewDefaultKeyer()
	}
	if !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), prefix)
}

func newCache(ctx context.Context, o backendOptions) (cache.Cache, error) {
	if o.noCache {
		return cache.NewNullCache(), nil
	}
	switch strings.ToLower(o.cache) {
	case "", backendFile:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case backendRedis:
		addr := os.Getenv(envRedisAddr)
		if addr == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--cache redis needs %s", envRedisAddr)
		}
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: addr})
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (supported: file, redis)", o.cache)
	}
}

// newStore opens the artifact store generate writes to.
func newStore(ctx context.Context, backend, dir string) (artifact.Store, error) {
	switch strings.ToLower(backend) {
	case "", backendDir:
		return artifact.NewDirStore(dir)
	case backendMongo:
		uri := os.Getenv(envMongoURI)
		if uri == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--store mongo needs %s", envMongoURI)
		}
		return artifact.NewMongoStore(ctx, artifact.MongoConfig{URI: uri})
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown store %q (supported: dir, mongo)", backend)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory (~/.cache/galaxyprofile/ or
// $XDG_CACHE_HOME/galaxyprofile/).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats turns --png into the pipeline format list.
func parseFormats(png bool) []string {
	if png {
		return []string{pipeline.FormatSVG, pipeline.FormatPNG}
	}
	return []string{pipeline.FormatSVG}
}

// parseOnly resolves --only values, which may be comma separated.
func parseOnly(values []string) ([]pipeline.Artifact, error) {
	var out []pipeline.Artifact
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			a, err := pipeline.ParseArtifact(name)
			if err != nil {
				return nil, err
			}
			out = append(out, a)
		}
	}
	return out, nil
}

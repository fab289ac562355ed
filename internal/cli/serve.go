package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/galaxyprofile/pkg/config"
	"github.com/matzehuels/galaxyprofile/pkg/pipeline"
	"github.com/matzehuels/galaxyprofile/pkg/server"
)

// serveOptions holds the flags of the serve command.
type serveOptions struct {
	config   string
	addr     string
	demo     bool
	maxAge   time.Duration
	pngScale float64
	backend  backendOptions
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the profile documents over HTTP",
		Long: `Serve renders the profile documents on request, so a README can embed
them from a live URL. GitHub data and rendered documents are cached; use
--cache redis to share the cache between replicas and set
GALAXY_CACHE_PREFIX to keep deployments on one Redis apart.

Routes:
  GET /healthz           liveness probe
  GET /                  index of documents
  GET /{name}.svg|.png   one document (?demo=1 for demo data)`,
		Example: `  galaxyprofile serve --addr :8080
  GALAXY_REDIS_ADDR=localhost:6379 galaxyprofile serve --cache redis`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", config.DefaultPath, "profile config file (YAML or TOML)")
	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&opts.demo, "demo", false, "always serve demo data")
	cmd.Flags().DurationVar(&opts.maxAge, "max-age", server.DefaultMaxAge, "Cache-Control max-age for rendered documents")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", 0, "PNG scale factor (default 2)")
	opts.backend.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOptions) error {
	cfg, example, err := loadProfile(opts.config, opts.demo)
	if err != nil {
		return err
	}
	if example {
		printWarning("No config at %s, serving the bundled example profile", opts.config)
	}

	runner, err := c.newRunner(ctx, opts.backend)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv, err := server.New(server.Options{
		Addr:     opts.addr,
		Config:   cfg,
		Runner:   runner,
		Demo:     opts.demo,
		MaxAge:   opts.maxAge,
		PNGScale: opts.pngScale,
		Logger:   c.Logger,
	})
	if err != nil {
		return err
	}

	printInfo("Serving %s", StyleHighlight.Render(cfg.Username))
	for _, a := range pipeline.Artifacts() {
		printDetail("http://%s/%s", srv.Addr(), a.Filename(pipeline.FormatSVG))
	}
	printNewline()

	return srv.ListenAndServe(ctx)
}

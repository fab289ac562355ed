package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/galaxyprofile/pkg/buildinfo"
	"github.com/matzehuels/galaxyprofile/pkg/cache"
	"github.com/matzehuels/galaxyprofile/pkg/errors"
	"github.com/matzehuels/galaxyprofile/pkg/observability"
	"github.com/matzehuels/galaxyprofile/pkg/profile"
	"github.com/matzehuels/galaxyprofile/pkg/render"
	"github.com/matzehuels/galaxyprofile/pkg/render/raster"
)

// Fetcher supplies live profile data. refresh bypasses cached values.
type Fetcher interface {
	FetchStats(ctx context.Context, user string, refresh bool) (profile.Stats, error)
	FetchLanguages(ctx context.Context, user string, refresh bool) (profile.Languages, error)
}

// Runner encapsulates pipeline execution with caching.
//
// The Runner stores no run results. Multiple goroutines can safely use the
// same Runner with different configs and options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Fetcher Fetcher
	Logger  *log.Logger
}

// NewRunner creates a runner. A nil cache disables artifact caching, a nil
// keyer uses cache.NewDefaultKeyer and a nil fetcher restricts the runner
// to demo data.
func NewRunner(c cache.Cache, keyer cache.Keyer, f Fetcher, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Fetcher: f,
		Logger:  logger,
	}
}

// Data is the fetched input of a run.
type Data struct {
	Stats     profile.Stats
	Languages profile.Languages
	Demo      bool
	Degraded  bool // a fetch failed and fallback data is used
}

// Data returns the stats and languages to render. Stats and languages are
// fetched concurrently; a failed fetch is logged and replaced by zero stats
// or an empty histogram. Only context cancellation is returned as an error.
func (r *Runner) Data(ctx context.Context, cfg *profile.Config, opts Options) (Data, error) {
	if opts.Demo {
		return Data{Stats: DemoStats(), Languages: DemoLanguages(), Demo: true}, nil
	}
	if r.Fetcher == nil {
		return Data{}, errors.New(errors.ErrCodeUnsupported, "live data needs a GitHub fetcher; use demo mode instead")
	}

	logger := r.logger(opts)
	user := cfg.Username
	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, user)
	start := time.Now()

	var (
		d                  Data
		statsErr, langsErr error
		g                  errgroup.Group
	)
	g.Go(func() error {
		d.Stats, statsErr = r.Fetcher.FetchStats(ctx, user, opts.Refresh)
		return nil
	})
	g.Go(func() error {
		d.Languages, langsErr = r.Fetcher.FetchLanguages(ctx, user, opts.Refresh)
		return nil
	})
	g.Wait()

	if err := ctx.Err(); err != nil {
		hooks.OnFetchComplete(ctx, user, time.Since(start), err)
		return Data{}, err
	}
	if statsErr != nil {
		logger.Warn("failed to fetch stats, using zeros", "user", user, "error", statsErr)
		d.Stats = ZeroStats()
		d.Degraded = true
	}
	if langsErr != nil {
		logger.Warn("failed to fetch languages, rendering none", "user", user, "error", langsErr)
		d.Languages = profile.Languages{}
		d.Degraded = true
	}

	elapsed := time.Since(start)
	hooks.OnFetchComplete(ctx, user, elapsed, firstErr(statsErr, langsErr))
	logger.Info("fetched profile data",
		"stats", len(d.Stats),
		"languages", len(d.Languages),
		"duration", elapsed)
	return d, nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// RenderAll renders every artifact concurrently. Renderers share no
// mutable state.
func (r *Runner) RenderAll(cfg *profile.Config, stats profile.Stats, langs profile.Languages) map[Artifact][]byte {
	in := render.Input{Config: cfg, Stats: stats, Languages: langs}
	all := Artifacts()
	docs := make([][]byte, len(all))

	var g errgroup.Group
	for i, a := range all {
		g.Go(func() error {
			docs[i] = a.Render(in)
			return nil
		})
	}
	g.Wait()

	out := make(map[Artifact][]byte, len(all))
	for i, a := range all {
		out[a] = docs[i]
	}
	return out
}

// Execute runs the complete fetch → render pipeline.
func (r *Runner) Execute(ctx context.Context, cfg *profile.Config, opts Options) (*Result, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "profile config is required")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := r.logger(opts).With("run", result.RunID[:8])
	opts.Logger = logger

	// Stage 1: Data
	fetchStart := time.Now()
	data, err := r.Data(ctx, cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	result.Stats = data.Stats
	result.Languages = data.Languages
	result.Demo = data.Demo
	result.Degraded = data.Degraded
	result.Timings.Fetch = time.Since(fetchStart)

	// Stage 2: Render
	renderStart := time.Now()
	in := render.Input{Config: cfg, Stats: data.Stats, Languages: data.Languages}
	hash, err := InputHash(in)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(opts.Only))
	for i, a := range opts.Only {
		names[i] = string(a)
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, names)

	type job struct {
		artifact Artifact
		format   string
	}
	var jobs []job
	for _, a := range opts.Only {
		for _, f := range opts.Formats {
			jobs = append(jobs, job{a, f})
		}
	}
	outs := make([][]byte, len(jobs))
	hits := make([]bool, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		g.Go(func() error {
			var err error
			outs[i], hits[i], err = r.render(gctx, in, hash, j.artifact, j.format, opts.PNGScale)
			if err != nil {
				return fmt.Errorf("%s: %w", j.artifact.Filename(j.format), err)
			}
			return nil
		})
	}
	err = g.Wait()
	result.Timings.Render = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, names, result.Timings.Render, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	result.CacheHit = len(jobs) > 0
	for i, j := range jobs {
		result.Artifacts[j.artifact.Filename(j.format)] = outs[i]
		result.CacheHit = result.CacheHit && hits[i]
	}

	logger.Info("rendered artifacts",
		"count", len(result.Artifacts),
		"formats", opts.Formats,
		"cached", result.CacheHit,
		"duration", result.Timings.Render)

	return result, nil
}

// Render produces one artifact in format, served from the artifact cache
// when possible. scale applies to PNG only; zero means raster.DefaultScale.
func (r *Runner) Render(ctx context.Context, in render.Input, a Artifact, format string, scale float64) ([]byte, bool, error) {
	if !a.Valid() {
		return nil, false, errors.New(errors.ErrCodeNotFound, "unknown artifact %q", a)
	}
	if err := errors.ValidateFormat(format, ValidFormats...); err != nil {
		return nil, false, err
	}
	hash, err := InputHash(in)
	if err != nil {
		return nil, false, err
	}
	return r.render(ctx, in, hash, a, format, scale)
}

func (r *Runner) render(ctx context.Context, in render.Input, hash string, a Artifact, format string, scale float64) ([]byte, bool, error) {
	keyOpts := cache.ArtifactKeyOpts{Name: string(a), Format: format}
	if format == FormatPNG {
		if scale <= 0 {
			scale = raster.DefaultScale
		}
		keyOpts.Scale = scale
	}
	key := r.Keyer.ArtifactKey(hash, keyOpts)
	kind := observability.KeyType(key)

	if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, kind)
		return data, true, nil
	} else if err != nil {
		r.Logger.Debug("artifact cache read failed", "key", key, "error", err)
	}
	observability.Cache().OnCacheMiss(ctx, kind)

	data := a.Render(in)
	if format == FormatPNG {
		png, err := raster.ToPNG(data, scale)
		if err != nil {
			return nil, false, err
		}
		data = png
	}

	if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
		r.Logger.Debug("artifact cache write failed", "key", key, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, kind, len(data))
	}
	return data, false, nil
}

// InputHash returns a content hash of everything a renderer reads, plus
// the build fingerprint so a rebuilt renderer never serves stale documents.
func InputHash(in render.Input) (string, error) {
	data, err := json.Marshal(struct {
		Build     string
		Config    *profile.Config
		Stats     profile.Stats
		Languages profile.Languages
	}{buildinfo.Fingerprint(), in.Config, in.Stats, in.Languages})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash render input")
	}
	return cache.Hash(data), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

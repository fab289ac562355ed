// Package observability lets a host process watch galaxyprofile at work.
//
// Three event families are reported through small interfaces:
// [PipelineHooks] for data fetches and document rendering, [CacheHooks] for
// cache lookups and [HTTPHooks] for GitHub API calls. Libraries emit events
// through the package-level accessors; the process installs implementations
// once at startup:
//
//	observability.SetCacheHooks(myMetrics)
//	observability.SetPipelineHooks(observability.Pipelines(progress, tracer))
//
// Until something is installed, every accessor returns a no-op. [LogHooks]
// is a ready-made implementation that writes each event to a logger at
// debug level.
package observability

import (
	"context"
	"strings"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from a generation run.
type PipelineHooks interface {
	OnFetchStart(ctx context.Context, user string)
	OnFetchComplete(ctx context.Context, user string, duration time.Duration, err error)

	// artifacts holds the names of the documents being rendered.
	OnRenderStart(ctx context.Context, artifacts []string)
	OnRenderComplete(ctx context.Context, artifacts []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations. keyType is the key's
// leading segment: "stats", "languages", "http" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from outgoing API requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError records a request that produced no response.
	OnError(ctx context.Context, method, host, path string, err error)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnFetchStart(context.Context, string)                             {}
func (NoopPipelineHooks) OnFetchComplete(context.Context, string, time.Duration, error)    {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// registry is swapped as a whole so readers never see a torn update.
type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var defaults = registry{NoopPipelineHooks{}, NoopCacheHooks{}, NoopHTTPHooks{}}

var current atomic.Pointer[registry]

func init() { Reset() }

func update(fn func(r *registry)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetPipelineHooks installs pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks installs cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks installs HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

func Pipeline() PipelineHooks { return current.Load().pipeline }
func Cache() CacheHooks       { return current.Load().cache }
func HTTP() HTTPHooks         { return current.Load().http }

// Reset restores the no-op hooks.
func Reset() {
	r := defaults
	current.Store(&r)
}

// KeyType returns the leading segment of a cache key, the label passed to
// CacheHooks.
func KeyType(key string) string {
	kind, _, _ := strings.Cut(key, ":")
	return kind
}

// Pipelines returns hooks that forward every event to each of hs in order.
// Nil entries are skipped.
func Pipelines(hs ...PipelineHooks) PipelineHooks {
	var fan pipelineFan
	for _, h := range hs {
		if h != nil {
			fan = append(fan, h)
		}
	}
	if len(fan) == 1 {
		return fan[0]
	}
	return fan
}

type pipelineFan []PipelineHooks

func (f pipelineFan) OnFetchStart(ctx context.Context, user string) {
	for _, h := range f {
		h.OnFetchStart(ctx, user)
	}
}

func (f pipelineFan) OnFetchComplete(ctx context.Context, user string, d time.Duration, err error) {
	for _, h := range f {
		h.OnFetchComplete(ctx, user, d, err)
	}
}

func (f pipelineFan) OnRenderStart(ctx context.Context, artifacts []string) {
	for _, h := range f {
		h.OnRenderStart(ctx, artifacts)
	}
}

func (f pipelineFan) OnRenderComplete(ctx context.Context, artifacts []string, d time.Duration, err error) {
	for _, h := range f {
		h.OnRenderComplete(ctx, artifacts, d, err)
	}
}

package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/galaxyprofile/pkg/cache"
	"github.com/matzehuels/galaxyprofile/pkg/httputil"
	"github.com/matzehuels/galaxyprofile/pkg/observability"
)

// Client is the shared HTTP client for API integrations.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	namespace string
	ttl       time.Duration
	headers   map[string]string
	logger    *log.Logger
	maxWait   time.Duration
	now       func() time.Time
}

// NewClient creates a Client. Cached values are stored under
// namespace+key with the given ttl; a nil cache disables caching.
// headers are sent with every request and may be nil.
func NewClient(c cache.Cache, namespace string, ttl time.Duration, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:      NewHTTPClient(),
		cache:     c,
		namespace: namespace,
		ttl:       ttl,
		headers:   headers,
		logger:    log.New(io.Discard),
		maxWait:   DefaultMaxRateLimitWait,
		now:       time.Now,
	}
}

// SetLogger routes rate limit warnings to logger.
func (c *Client) SetLogger(logger *log.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Logger returns the client's logger.
func (c *Client) Logger() *log.Logger { return c.logger }

// Cached loads v from the cache, or runs fetch to populate v and stores
// the result. With refresh set the cache read is skipped but the fresh
// value is still written. fetch is retried while it returns retryable
// errors.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	key = c.namespace + key
	kind := observability.KeyType(key)
	if !refresh {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			if json.Unmarshal(data, v) == nil {
				observability.Cache().OnCacheHit(ctx, kind)
				return nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, kind)
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Debug("cache write failed", "key", key, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, kind, len(data))
		}
	}
	return nil
}

// Get performs a GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders is Get with extra headers that override the defaults.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.do(ctx, http.MethodGet, url, nil, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	return decode(body, v)
}

// Post sends payload as JSON and decodes the JSON response into v.
func (c *Client) Post(ctx context.Context, url string, payload, v any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	body, err := c.do(ctx, http.MethodPost, url, data, map[string]string{"Content-Type": "application/json"})
	if err != nil {
		return err
	}
	defer body.Close()
	return decode(body, v)
}

func decode(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrNetwork, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte, headers map[string]string) (io.ReadCloser, error) {
	resp, err := c.send(ctx, method, url, payload, headers)
	if err != nil {
		return nil, err
	}

	if wait, limited := c.rateLimited(resp); limited {
		resp.Body.Close()
		wait = min(wait, c.maxWait)
		c.logger.Warn("rate limited, waiting for reset", "url", url, "wait", wait.Round(time.Millisecond))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		if resp, err = c.send(ctx, method, url, payload, headers); err != nil {
			return nil, err
		}
		if _, limited := c.rateLimited(resp); limited {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: still limited after waiting %s", ErrRateLimited, wait)
		}
	}

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	return resp.Body, nil
}

func (c *Client) send(ctx context.Context, method, url string, payload []byte, headers map[string]string) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, req.URL.Host, req.URL.Path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, req.URL.Host, req.URL.Path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	hooks.OnResponse(ctx, method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))
	c.checkQuota(resp)
	return resp, nil
}

// checkQuota warns when few requests remain in the current window.
func (c *Client) checkQuota(resp *http.Response) {
	raw := resp.Header.Get("X-RateLimit-Remaining")
	if raw == "" {
		return
	}
	remaining, err := strconv.Atoi(raw)
	if err != nil || remaining >= lowQuota {
		return
	}
	reset := "unknown"
	if ts, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		reset = time.Unix(ts, 0).Format("15:04:05")
	}
	c.logger.Warn("API rate limit low", "remaining", remaining, "reset", reset)
}

// rateLimited reports whether resp was rejected for exceeding the quota,
// and how long to wait before retrying. A 403 only counts when its body
// says so; the body is restored for later reads.
func (c *Client) rateLimited(resp *http.Response) (time.Duration, bool) {
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
	case http.StatusForbidden:
		data, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(data))
		if !strings.Contains(strings.ToLower(string(data)), "rate limit") {
			return 0, false
		}
	default:
		return 0, false
	}

	wait := time.Second
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
		wait = time.Duration(secs) * time.Second
	} else if ts, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		if d := time.Unix(ts, 0).Sub(c.now()); d > wait {
			wait = d
		}
	}
	return wait, true
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

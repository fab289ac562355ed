package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/galaxyprofile/pkg/cache"
	"github.com/matzehuels/galaxyprofile/pkg/httputil"
)

func testClient(t *testing.T, server *httptest.Server, headers map[string]string) *Client {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	client := NewClient(c, "test:", time.Hour, headers)
	if server != nil {
		client.http = server.Client()
	}
	client.maxWait = 10 * time.Millisecond
	return client
}

func TestNewClient(t *testing.T) {
	headers := map[string]string{"Authorization": "Bearer token"}
	client := NewClient(nil, "test:", time.Hour, headers)

	if client.http == nil {
		t.Error("http client is nil")
	}
	if client.cache == nil {
		t.Error("nil cache should be replaced by a null cache")
	}
	if client.headers["Authorization"] != "Bearer token" {
		t.Error("headers not set")
	}
	if client.maxWait != DefaultMaxRateLimitWait {
		t.Errorf("maxWait = %v", client.maxWait)
	}
}

func TestClientGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "hello"})
	}))
	defer server.Close()

	var resp struct {
		Message string `json:"message"`
	}
	if err := testClient(t, server, nil).Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("message = %q, want hello", resp.Message)
	}
}

func TestClientHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(t, server, map[string]string{"X-Default": "default", "X-Override": "default"})
	var resp map[string]string
	err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{"X-Override": "custom"}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if got.Get("X-Default") != "default" {
		t.Errorf("default header = %q", got.Get("X-Default"))
	}
	if got.Get("X-Override") != "custom" {
		t.Errorf("override header = %q", got.Get("X-Override"))
	}
}

func TestClientPost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]string{"echo": body["query"]})
	}))
	defer server.Close()

	var resp map[string]string
	err := testClient(t, server, nil).Post(context.Background(), server.URL, map[string]string{"query": "{ viewer }"}, &resp)
	if err != nil {
		t.Fatalf("Post() error: %v", err)
	}
	if resp["echo"] != "{ viewer }" {
		t.Errorf("echo = %q", resp["echo"])
	}
}

func TestClientStatusErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		want      error
		retryable bool
	}{
		{"not found", http.StatusNotFound, ErrNotFound, false},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized, false},
		{"server error", http.StatusInternalServerError, ErrNetwork, true},
		{"forbidden without rate limit", http.StatusForbidden, ErrNetwork, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"message":"nope"}`))
			}))
			defer server.Close()

			var resp map[string]string
			err := testClient(t, server, nil).Get(context.Background(), server.URL, &resp)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if got := httputil.IsRetryable(err); got != tt.retryable {
				t.Errorf("retryable = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestClientRateLimitRetry(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"403 with rate limit message", http.StatusForbidden, `{"message":"API rate limit exceeded"}`},
		{"429", http.StatusTooManyRequests, `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) == 1 {
					w.Header().Set("Retry-After", "1")
					w.WriteHeader(tt.status)
					w.Write([]byte(tt.body))
					return
				}
				w.Write([]byte(`{"ok":"yes"}`))
			}))
			defer server.Close()

			var resp map[string]string
			if err := testClient(t, server, nil).Get(context.Background(), server.URL, &resp); err != nil {
				t.Fatalf("Get() error: %v", err)
			}
			if calls.Load() != 2 {
				t.Errorf("calls = %d, want 2", calls.Load())
			}
			if resp["ok"] != "yes" {
				t.Errorf("resp = %v", resp)
			}
		})
	}
}

func TestClientRateLimitRetriesOnce(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10))
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"API rate limit exceeded for 1.2.3.4"}`))
	}))
	defer server.Close()

	var resp map[string]string
	err := testClient(t, server, nil).Get(context.Background(), server.URL, &resp)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("error = %v, want ErrRateLimited", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestClientLowQuotaWarning(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "3")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	var logs bytes.Buffer
	client := testClient(t, server, nil)
	client.SetLogger(log.New(&logs))

	var resp map[string]string
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs.String(), "rate limit low") || !strings.Contains(logs.String(), "remaining=3") {
		t.Errorf("missing quota warning in %q", logs.String())
	}
}

func TestClientCached(t *testing.T) {
	client := testClient(t, nil, nil)
	ctx := context.Background()

	type payload struct {
		Value string `json:"value"`
	}
	fetches := 0
	fetch := func(v *payload) func() error {
		return func() error {
			fetches++
			v.Value = "fetched"
			return nil
		}
	}

	var first payload
	if err := client.Cached(ctx, "key", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	var second payload
	if err := client.Cached(ctx, "key", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetches != 1 {
		t.Errorf("fetches = %d, want 1", fetches)
	}
	if second.Value != "fetched" {
		t.Errorf("cached value = %q", second.Value)
	}

	var third payload
	if err := client.Cached(ctx, "key", true, &third, fetch(&third)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetches != 2 {
		t.Errorf("refresh should bypass the cache, fetches = %d", fetches)
	}

	if _, ok, _ := client.cache.Get(ctx, "test:key"); !ok {
		t.Error("value should be stored under the namespaced key")
	}
}

func TestClientCachedFetchError(t *testing.T) {
	client := testClient(t, nil, nil)
	ctx := context.Background()

	var v string
	err := client.Cached(ctx, "missing", false, &v, func() error { return ErrNotFound })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if _, ok, _ := client.cache.Get(ctx, "test:missing"); ok {
		t.Error("failed fetch should not be cached")
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code      int
		want      error
		retryable bool
	}{
		{200, nil, false},
		{204, nil, false},
		{404, ErrNotFound, false},
		{401, ErrUnauthorized, false},
		{429, ErrRateLimited, false},
		{500, ErrNetwork, true},
		{503, ErrNetwork, true},
		{400, ErrNetwork, false},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.code), func(t *testing.T) {
			err := checkStatus(tt.code)
			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if httputil.IsRetryable(err) != tt.retryable {
				t.Errorf("retryable = %v, want %v", !tt.retryable, tt.retryable)
			}
		})
	}
}

func TestRateLimitedRestoresBody(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusForbidden,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(`{"message":"Must have admin rights"}`)),
	}
	c := NewClient(nil, "", 0, nil)
	if _, limited := c.rateLimited(resp); limited {
		t.Error("plain 403 is not a rate limit")
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "admin rights") {
		t.Error("body should be readable after inspection")
	}
}

func TestNewHTTPClient(t *testing.T) {
	if c := NewHTTPClient(); c.Timeout != httpTimeout {
		t.Errorf("Timeout = %v, want %v", c.Timeout, httpTimeout)
	}
}

package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/galaxyprofile/pkg/cache"
	"github.com/matzehuels/galaxyprofile/pkg/integrations"
	"github.com/matzehuels/galaxyprofile/pkg/profile"
)

// fakeGitHub serves the REST and GraphQL endpoints the client uses for
// user "octocat".
type fakeGitHub struct {
	*httptest.Server
	graphQL       http.HandlerFunc
	graphQLCalls  atomic.Int32
	restUserCalls atomic.Int32
	authHeader    atomic.Value
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	f := &fakeGitHub{}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /graphql", func(w http.ResponseWriter, r *http.Request) {
		f.graphQLCalls.Add(1)
		f.authHeader.Store(r.Header.Get("Authorization"))
		if f.graphQL != nil {
			f.graphQL(w, r)
			return
		}
		w.Write([]byte(`{"data":{"user":{
			"pullRequests":{"totalCount":156},
			"issues":{"totalCount":89},
			"repositories":{"totalCount":42,"nodes":[{"stargazerCount":300},{"stargazerCount":42}]},
			"contributionsCollection":{"totalCommitContributions":1500,"restrictedContributionsCount":347}
		}}}`))
	})
	mux.HandleFunc("GET /users/octocat", func(w http.ResponseWriter, r *http.Request) {
		f.restUserCalls.Add(1)
		json.NewEncoder(w).Encode(apiUser{Login: "octocat", PublicRepos: 3})
	})
	mux.HandleFunc("GET /users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			w.Write([]byte(`[]`))
			return
		}
		json.NewEncoder(w).Encode([]apiRepo{
			{Name: "hello", FullName: "octocat/hello", Stars: 10, LanguagesURL: f.URL + "/repos/octocat/hello/languages"},
			{Name: "spoon", FullName: "octocat/spoon", Stars: 5, Fork: true, LanguagesURL: f.URL + "/repos/octocat/spoon/languages"},
			{Name: "broken", FullName: "octocat/broken", Stars: 20, LanguagesURL: f.URL + "/repos/octocat/broken/languages"},
		})
	})
	mux.HandleFunc("GET /repos/octocat/hello/languages", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Go":1000,"Shell":50}`))
	})
	mux.HandleFunc("GET /repos/octocat/spoon/languages", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Rust":99999}`))
	})
	mux.HandleFunc("GET /repos/octocat/broken/languages", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("GET /users/octocat/events/public", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"type":"PushEvent","payload":{"commits":[{"sha":"a"},{"sha":"b"}]}},
			{"type":"WatchEvent","payload":{}},
			{"type":"PushEvent","payload":{"commits":[{"sha":"c"}]}}
		]`))
	})
	mux.HandleFunc("GET /search/issues", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		switch {
		case strings.Contains(q, "type:pr"):
			w.Write([]byte(`{"total_count":7}`))
		default:
			w.WriteHeader(http.StatusUnprocessableEntity)
		}
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func testClient(t *testing.T, serverURL, token string) *Client {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewClient(Options{Token: token, Cache: c, BaseURL: serverURL})
}

func TestFetchStatsGraphQL(t *testing.T) {
	gh := newFakeGitHub(t)
	c := testClient(t, gh.URL, "secret")

	stats, err := c.FetchStats(context.Background(), "octocat", false)
	if err != nil {
		t.Fatalf("FetchStats: %v", err)
	}
	want := profile.Stats{
		profile.MetricCommits: 1847,
		profile.MetricStars:   342,
		profile.MetricPRs:     156,
		profile.MetricIssues:  89,
		profile.MetricRepos:   42,
	}
	for m, v := range want {
		if stats[m] != v {
			t.Errorf("%s = %d, want %d", m, stats[m], v)
		}
	}
	if got := gh.authHeader.Load(); got != "Bearer secret" {
		t.Errorf("Authorization = %v", got)
	}
	if gh.restUserCalls.Load() != 0 {
		t.Error("REST should not be used when GraphQL succeeds")
	}
}

func TestFetchStatsREST(t *testing.T) {
	gh := newFakeGitHub(t)
	c := testClient(t, gh.URL, "")

	stats, err := c.FetchStats(context.Background(), "octocat", false)
	if err != nil {
		t.Fatalf("FetchStats: %v", err)
	}
	if gh.graphQLCalls.Load() != 0 {
		t.Error("GraphQL needs a token")
	}

	tests := []struct {
		metric profile.Metric
		want   int
	}{
		{profile.MetricCommits, 3},
		{profile.MetricStars, 35},
		{profile.MetricPRs, 7},
		{profile.MetricIssues, 0}, // search failure counts as zero
		{profile.MetricRepos, 3},
	}
	for _, tt := range tests {
		if got := stats[tt.metric]; got != tt.want {
			t.Errorf("%s = %d, want %d", tt.metric, got, tt.want)
		}
	}
}

func TestFetchStatsGraphQLFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"graphql errors", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"errors":[{"message":"Something went wrong"}]}`))
		}},
		{"http error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}},
		{"unknown user", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"user":null}}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gh := newFakeGitHub(t)
			gh.graphQL = tt.handler
			c := testClient(t, gh.URL, "secret")

			stats, err := c.FetchStats(context.Background(), "octocat", false)
			if err != nil {
				t.Fatalf("FetchStats: %v", err)
			}
			if gh.restUserCalls.Load() != 1 {
				t.Error("expected REST fallback")
			}
			if stats[profile.MetricRepos] != 3 {
				t.Errorf("repos = %d, want REST value 3", stats[profile.MetricRepos])
			}
		})
	}
}

func TestFetchStatsCached(t *testing.T) {
	gh := newFakeGitHub(t)
	c := testClient(t, gh.URL, "secret")
	ctx := context.Background()

	for range 3 {
		if _, err := c.FetchStats(ctx, "octocat", false); err != nil {
			t.Fatal(err)
		}
	}
	if n := gh.graphQLCalls.Load(); n != 1 {
		t.Errorf("GraphQL calls = %d, want 1", n)
	}

	if _, err := c.FetchStats(ctx, "octocat", true); err != nil {
		t.Fatal(err)
	}
	if n := gh.graphQLCalls.Load(); n != 2 {
		t.Errorf("refresh should refetch, calls = %d", n)
	}
}

func TestFetchStatsUnknownUser(t *testing.T) {
	gh := newFakeGitHub(t)
	c := testClient(t, gh.URL, "")

	_, err := c.FetchStats(context.Background(), "ghost", false)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestFetchLanguages(t *testing.T) {
	gh := newFakeGitHub(t)
	c := testClient(t, gh.URL, "")

	langs, err := c.FetchLanguages(context.Background(), "octocat", false)
	if err != nil {
		t.Fatalf("FetchLanguages: %v", err)
	}
	want := profile.Languages{"Go": 1000, "Shell": 50}
	if len(langs) != len(want) {
		t.Fatalf("languages = %v, want %v", langs, want)
	}
	for k, v := range want {
		if langs[k] != v {
			t.Errorf("%s = %d, want %d", k, langs[k], v)
		}
	}
	if _, ok := langs["Rust"]; ok {
		t.Error("forks must not contribute languages")
	}
}

func TestListRepos(t *testing.T) {
	gh := newFakeGitHub(t)
	c := testClient(t, gh.URL, "")

	repos, err := c.ListRepos(context.Background(), "octocat", false)
	if err != nil {
		t.Fatalf("ListRepos: %v", err)
	}
	var names []string
	for _, r := range repos {
		names = append(names, r.FullName)
	}
	if got := strings.Join(names, ","); got != "octocat/broken,octocat/hello" {
		t.Errorf("repos = %s, want non-forks by stars", got)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Options{})
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %s", c.baseURL)
	}
	if c.keyer == nil {
		t.Error("keyer should default")
	}
}

func TestGraphQLEndpoint(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{DefaultBaseURL, "https://api.github.com/graphql"},
		{"https://api.github.com/", "https://api.github.com/graphql"},
		{"https://ghe.example.com/api/v3", "https://ghe.example.com/api/graphql"},
		{"https://ghe.example.com/api/v3/", "https://ghe.example.com/api/graphql"},
	}
	for _, tt := range tests {
		if got := graphQLEndpoint(tt.base); got != tt.want {
			t.Errorf("graphQLEndpoint(%q) = %q, want %q", tt.base, got, tt.want)
		}
	}
}

package github

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/galaxyprofile/pkg/buildinfo"
	"github.com/matzehuels/galaxyprofile/pkg/cache"
	"github.com/matzehuels/galaxyprofile/pkg/integrations"
	"github.com/matzehuels/galaxyprofile/pkg/profile"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com"

const perPage = 100

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	Token   string        // enables GraphQL stats and raises rate limits
	Cache   cache.Cache   // nil disables caching
	Keyer   cache.Keyer   // nil uses cache.NewDefaultKeyer
	TTL     time.Duration // defaults to cache.StatsTTL
	Logger  *log.Logger
	BaseURL string // defaults to DefaultBaseURL; GitHub Enterprise uses https://host/api/v3
}

// Client fetches profile stats, language histograms and repositories.
type Client struct {
	*integrations.Client
	baseURL    string
	graphQLURL string
	token      string
	keyer   cache.Keyer
}

// NewClient creates a GitHub client.
func NewClient(opts Options) *Client {
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.TTL <= 0 {
		opts.TTL = cache.StatsTTL
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	headers := map[string]string{
		"Accept":     "application/vnd.github.v3+json",
		"User-Agent": buildinfo.UserAgent(),
	}
	if opts.Token != "" {
		headers["Authorization"] = "Bearer " + opts.Token
	}

	c := &Client{
		Client:  integrations.NewClient(opts.Cache, "", opts.TTL, headers),
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		graphQLURL: graphQLEndpoint(opts.BaseURL),
		token:      opts.Token,
		keyer:      opts.Keyer,
	}
	c.SetLogger(opts.Logger)
	return c
}

// graphQLEndpoint derives the GraphQL URL from a REST base URL. GitHub
// Enterprise serves REST under /api/v3 and GraphQL under /api/graphql.
func graphQLEndpoint(baseURL string) string {
	base := strings.TrimSuffix(baseURL, "/")
	if api, ok := strings.CutSuffix(base, "/api/v3"); ok {
		return api + "/api/graphql"
	}
	return base + "/graphql"
}

// FetchStats returns the user's profile metrics. With a token the counts
// come from GraphQL, including private contributions; any GraphQL failure
// falls back to the public REST endpoints.
func (c *Client) FetchStats(ctx context.Context, user string, refresh bool) (profile.Stats, error) {
	var stats profile.Stats
	err := c.Cached(ctx, c.keyer.StatsKey(user), refresh, &stats, func() error {
		s, err := c.fetchStats(ctx, user)
		stats = s
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch stats for %s: %w", user, err)
	}
	return stats, nil
}

func (c *Client) fetchStats(ctx context.Context, user string) (profile.Stats, error) {
	if c.token == "" {
		return c.fetchStatsREST(ctx, user)
	}
	stats, err := c.fetchStatsGraphQL(ctx, user)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.Logger().Warn("GraphQL stats failed, falling back to REST", "user", user, "error", err)
		return c.fetchStatsREST(ctx, user)
	}
	return stats, nil
}

func (c *Client) fetchStatsGraphQL(ctx context.Context, user string) (profile.Stats, error) {
	var resp graphQLResponse
	req := graphQLRequest{Query: statsQuery, Variables: map[string]any{"username": user}}
	if err := c.Post(ctx, c.graphQLURL, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, len(resp.Errors))
		for i, e := range resp.Errors {
			msgs[i] = e.Message
		}
		return nil, fmt.Errorf("graphql: %s", strings.Join(msgs, "; "))
	}
	u := resp.Data.User
	if u == nil {
		return nil, fmt.Errorf("%w: github user %s", integrations.ErrNotFound, user)
	}

	stars := 0
	for _, n := range u.Repositories.Nodes {
		stars += n.StargazerCount
	}
	return profile.Stats{
		profile.MetricCommits: u.ContributionsCollection.TotalCommitContributions + u.ContributionsCollection.RestrictedContributionsCount,
		profile.MetricStars:   stars,
		profile.MetricPRs:     u.PullRequests.TotalCount,
		profile.MetricIssues:  u.Issues.TotalCount,
		profile.MetricRepos:   u.Repositories.TotalCount,
	}, nil
}

// fetchStatsREST uses public data only. Commits are estimated from the
// recent public push events.
func (c *Client) fetchStatsREST(ctx context.Context, user string) (profile.Stats, error) {
	var u apiUser
	if err := c.Get(ctx, c.baseURL+"/users/"+url.PathEscape(user), &u); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: github user %s", err, user)
		}
		return nil, err
	}

	repos, err := c.ownedRepos(ctx, user)
	if err != nil {
		return nil, err
	}
	stars := 0
	for _, r := range repos {
		stars += r.Stars
	}

	var events []apiEvent
	if err := c.Get(ctx, fmt.Sprintf("%s/users/%s/events/public?per_page=%d", c.baseURL, url.PathEscape(user), perPage), &events); err != nil {
		return nil, err
	}
	commits := 0
	for _, e := range events {
		if e.Type == "PushEvent" {
			commits += len(e.Payload.Commits)
		}
	}

	return profile.Stats{
		profile.MetricCommits: commits,
		profile.MetricStars:   stars,
		profile.MetricPRs:     c.searchCount(ctx, "author:"+user+" type:pr"),
		profile.MetricIssues:  c.searchCount(ctx, "author:"+user+" type:issue"),
		profile.MetricRepos:   u.PublicRepos,
	}, nil
}

// searchCount returns the issue search total for query, or 0 when the
// search API fails.
func (c *Client) searchCount(ctx context.Context, query string) int {
	var resp apiSearch
	u := fmt.Sprintf("%s/search/issues?q=%s&per_page=1", c.baseURL, url.QueryEscape(query))
	if err := c.Get(ctx, u, &resp); err != nil {
		c.Logger().Warn("search failed", "query", query, "error", err)
		return 0
	}
	return resp.TotalCount
}

// ownedRepos pages through every repository the user owns.
func (c *Client) ownedRepos(ctx context.Context, user string) ([]apiRepo, error) {
	var all []apiRepo
	for page := 1; ; page++ {
		var repos []apiRepo
		u := fmt.Sprintf("%s/users/%s/repos?per_page=%d&page=%d&type=owner", c.baseURL, url.PathEscape(user), perPage, page)
		if err := c.Get(ctx, u, &repos); err != nil {
			return nil, err
		}
		all = append(all, repos...)
		if len(repos) < perPage {
			return all, nil
		}
	}
}

// FetchLanguages sums language bytes over the user's non-fork
// repositories. Repositories whose breakdown cannot be fetched are
// skipped with a warning.
func (c *Client) FetchLanguages(ctx context.Context, user string, refresh bool) (profile.Languages, error) {
	langs := profile.Languages{}
	err := c.Cached(ctx, c.keyer.LanguagesKey(user), refresh, &langs, func() error {
		l, err := c.fetchLanguages(ctx, user)
		langs = l
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch languages for %s: %w", user, err)
	}
	return langs, nil
}

func (c *Client) fetchLanguages(ctx context.Context, user string) (profile.Languages, error) {
	repos, err := c.ownedRepos(ctx, user)
	if err != nil {
		return nil, err
	}
	langs := profile.Languages{}
	for _, r := range repos {
		if r.Fork || r.LanguagesURL == "" {
			continue
		}
		var breakdown map[string]int64
		if err := c.Get(ctx, r.LanguagesURL, &breakdown); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.Logger().Warn("skipping repository languages", "repo", r.FullName, "error", err)
			continue
		}
		for lang, n := range breakdown {
			langs[lang] += n
		}
	}
	return langs, nil
}

// ListRepos returns the user's own (non-fork) repositories, most starred
// first.
func (c *Client) ListRepos(ctx context.Context, user string, refresh bool) ([]Repo, error) {
	var repos []Repo
	err := c.Cached(ctx, c.keyer.HTTPKey("github", "repos:"+strings.ToLower(user)), refresh, &repos, func() error {
		raw, err := c.ownedRepos(ctx, user)
		if err != nil {
			return err
		}
		repos = repos[:0]
		for _, r := range raw {
			if r.Fork {
				continue
			}
			repos = append(repos, Repo{
				Name:        r.Name,
				FullName:    r.FullName,
				Description: r.Description,
				Language:    r.Language,
				Stars:       r.Stars,
				URL:         r.HTMLURL,
			})
		}
		slices.SortStableFunc(repos, func(a, b Repo) int {
			if a.Stars != b.Stars {
				return cmp.Compare(b.Stars, a.Stars)
			}
			return cmp.Compare(a.Name, b.Name)
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list repos for %s: %w", user, err)
	}
	return repos, nil
}

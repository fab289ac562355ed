// Package github fetches the profile data behind the galaxy cards.
//
// # Overview
//
// [Client] talks to the GitHub REST API (https://api.github.com) and, when a
// token is configured, to the GraphQL endpoint. It returns:
//
//   - [profile.Stats]: commits, stars, pull requests, issues and repositories
//   - [profile.Languages]: bytes per language summed over the user's own repos
//   - [Repo]: the user's repositories, most starred first (used by init)
//
// # Usage
//
//	client := github.NewClient(github.Options{
//	    Token: os.Getenv("GITHUB_TOKEN"),
//	    Cache: fileCache,
//	})
//
//	stats, err := client.FetchStats(ctx, "octocat", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Stars:", stats[profile.MetricStars])
//
// # Authentication
//
// A token is optional. Without one, stats come from public REST data only:
// commits are estimated from recent push events, and the client is limited
// to 60 requests/hour. With a token, GraphQL adds private contributions and
// the limit rises to 5000 requests/hour. A failing GraphQL query falls back
// to REST.
//
// # Caching
//
// Results are cached under the keys of a [cache.Keyer]. Pass refresh=true to
// bypass the cache and overwrite the stored entry.
package github

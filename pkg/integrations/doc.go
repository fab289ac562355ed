// Package integrations provides the shared HTTP client behind external API
// clients.
//
// [Client] adds what every API client needs on top of net/http:
//   - default headers (Accept, Authorization, User-Agent)
//   - JSON GET and POST helpers
//   - retries with backoff for transient failures via [httputil.Retry]
//   - rate limit handling: a warning when the remaining quota runs low, and
//     one wait-and-retry when a request is rejected for exceeding it
//   - result caching in a [cache.Cache] under a namespaced key
//
// Failures are reported with the sentinels [ErrNotFound], [ErrNetwork],
// [ErrRateLimited] and [ErrUnauthorized], wrapped with %w.
//
// The GitHub client lives in the [github] subpackage.
//
// [github]: github.com/matzehuels/galaxyprofile/pkg/integrations/github
// [cache.Cache]: github.com/matzehuels/galaxyprofile/pkg/cache.Cache
// [httputil.Retry]: github.com/matzehuels/galaxyprofile/pkg/httputil.Retry
package integrations

// Package httputil provides retry helpers for the GitHub API client.
//
// [Retry] re-runs an operation while it fails with a [RetryableError].
// Transient failures such as connection errors and 5xx responses are
// wrapped as retryable by the caller; everything else fails immediately:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// The delay doubles after each attempt. A RetryableError carrying an
// explicit After duration (a rate limit reset, say) replaces the computed
// delay for that attempt.
package httputil

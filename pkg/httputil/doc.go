// Package httputil provides the HTTP plumbing for the page collector.
//
// # Overview
//
//   - [Client]: GET with a 10s timeout, status classification and retries
//   - [Cache]: file-based response caching with a TTL
//   - [Retry]: exponential backoff for errors marked [RetryableError]
//
// # Caching
//
// [Cache] stores fetched bodies under ~/.cache/bipartisan/http by default.
// Scoring pages change at most once per session, so a long TTL is fine:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	client := httputil.NewClient(cache.Namespace("page:"))
//	html, err := client.FetchText(ctx, url, false)
//
// # Retry
//
// Transient failures are retried three times with the delay doubling from
// one second:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// A 404 yields [ErrNotFound] and is never retried.
//
// The cache can be cleared via `bipartisan cache clear` or by deleting the
// cache directory.
package httputil

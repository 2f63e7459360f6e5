// Package github implements a content source backed by a GitHub repository.
//
// The client lists markdown files from the recursive Trees API, downloads
// file bodies from the raw content host and reads per-file metadata from
// the Contents and Commits APIs.
//
// # Authentication
//
// A personal access token, when configured, is attached to API calls via
// an oauth2 static token source. Raw content downloads are always
// unauthenticated, so private repositories need a proxy in front of the
// raw host.
//
// # Caching
//
// Every API response is cached by method and absolute URL (query keys
// sorted) for the configured cache timeout. Concurrent requests for the
// same key share one network exchange. [Client.ClearCache] drops every
// entry. Raw downloads and rate limit queries are never cached.
//
// # Retries
//
// API calls are attempted up to MaxAttempts times. After attempt n fails
// the client waits n*RetryDelay before trying again. Cancellation, rate
// limit errors and 401, 404 and 422 responses are not retried. Once
// attempts run out the last failure is returned as an [APIError] carrying
// the upstream message. Raw downloads are attempted once and fail with a
// [FetchError].
//
// # Rate Limiting
//
// The client implements a dual-strategy rate limiting approach:
//
//  1. Proactive throttling: a token bucket limits request rate. The burst
//     lets a pipeline run start its fan-out without queueing.
//
//  2. Reactive handling: the client monitors X-RateLimit-Remaining and
//     X-RateLimit-Reset headers. When the quota is nearly exhausted it
//     waits until the reset time before continuing.
//
// # Example Usage
//
//	client, err := github.NewClient(github.ConfigFromSettings(settings), cache)
//	if err != nil {
//	    return err
//	}
//	files, err := client.ListMarkdownFiles(ctx)
package github

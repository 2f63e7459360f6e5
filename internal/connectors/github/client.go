package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/core/ports/driven"
	"github.com/uakbr/github-blog-crm/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driven.ContentSource  = (*Client)(nil)
	_ driven.RepositoryHost = (*Client)(nil)
)

// Client reads blog content from a GitHub repository.
// API responses are cached, deduplicated across concurrent callers and
// retried with linear backoff. Raw downloads bypass all three.
type Client struct {
	cfg         Config
	gh          *gh.Client
	raw         *http.Client
	cache       driven.ResponseCache
	flight      singleflight.Group
	rateLimiter *RateLimiter
	retry       retryPolicy
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	apiHTTP *http.Client
	rawHTTP *http.Client
}

// WithHTTPClient sets the HTTP client used for API calls.
// The caller is responsible for its authentication.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.apiHTTP = hc
	}
}

// WithRawHTTPClient sets the HTTP client used for raw content downloads.
func WithRawHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.rawHTTP = hc
	}
}

// NewClient creates a client for the repository in cfg.
// A nil cache disables response caching.
func NewClient(cfg Config, cache driven.ResponseCache, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	apiHTTP := o.apiHTTP
	if apiHTTP == nil {
		apiHTTP = &http.Client{Timeout: cfg.RequestTimeout}
		if cfg.Token != "" {
			ts := oauth2.StaticTokenSource(
				&oauth2.Token{AccessToken: cfg.Token},
			)
			apiHTTP = oauth2.NewClient(context.Background(), ts)
			apiHTTP.Timeout = cfg.RequestTimeout
		}
	}

	rawHTTP := o.rawHTTP
	if rawHTTP == nil {
		rawHTTP = &http.Client{Timeout: cfg.RequestTimeout}
	}

	client := gh.NewClient(apiHTTP)
	if cfg.APIBaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(cfg.APIBaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse API base URL: %w", err)
		}
		client.BaseURL = base
	}

	if cache == nil {
		cache = noCache{}
	}

	return &Client{
		cfg:         cfg,
		gh:          client,
		raw:         rawHTTP,
		cache:       cache,
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond),
		retry:       retryPolicy{maxAttempts: cfg.MaxAttempts, delay: cfg.RetryDelay},
	}, nil
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// ClearCache drops every cached API response.
func (c *Client) ClearCache() {
	c.cache.Clear()
}

// request performs a cached GET against the API and decodes the body into out.
// endpoint is either a path relative to the API root or an absolute URL.
func (c *Client) request(ctx context.Context, endpoint string, query url.Values, out any) error {
	target, err := c.resolve(endpoint, query)
	if err != nil {
		return &APIError{Message: err.Error(), URL: endpoint, Err: err}
	}
	key := cacheKey(target)

	if body, ok := c.cache.Get(key); ok {
		logger.Debug("github: cache hit %s", target)
		return decodeInto(body, out, target)
	}

	// The shared fetch must outlive any single caller, so it runs detached
	// from ctx and is bounded by the HTTP client timeout. Each caller still
	// stops waiting when its own ctx is done.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(key, func() (any, error) {
		if body, ok := c.cache.Get(key); ok {
			return body, nil
		}
		body, err := c.fetchJSON(fetchCtx, target)
		if err != nil {
			return nil, err
		}
		c.cache.Set(key, body)
		return body, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return &APIError{Message: ctx.Err().Error(), URL: target, Err: ctx.Err()}
	case res = <-ch:
	}
	if res.Err != nil {
		return res.Err
	}
	if res.Shared {
		logger.Debug("github: shared in-flight response for %s", target)
	}
	return decodeInto(res.Val.([]byte), out, target)
}

// fetchJSON performs the network exchange under the retry policy.
func (c *Client) fetchJSON(ctx context.Context, target string) ([]byte, error) {
	var body json.RawMessage
	attempts, err := c.retry.do(ctx, target, func() error {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}

		req, err := c.gh.NewRequest(http.MethodGet, target, nil)
		if err != nil {
			return &APIError{Message: err.Error(), URL: target, Err: err}
		}

		body = nil
		resp, err := c.gh.Do(ctx, req, &body)
		c.updateRateLimitFromResponse(resp)
		if err != nil {
			return c.wrapError(err, target)
		}
		return nil
	})
	if err != nil {
		return nil, finalError(err, target, attempts)
	}

	if len(body) == 0 {
		return []byte("null"), nil
	}
	return body, nil
}

// finalError reports an exhausted request as an APIError. Rate limits and
// cancellation stay reachable through Unwrap.
func finalError(err error, target string, attempts int) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		apiErr.Attempts = attempts
		return apiErr
	}
	return &APIError{
		Message:  err.Error(),
		URL:      target,
		Attempts: attempts,
		Err:      err,
	}
}

// resolve builds the absolute request URL. Query keys are sorted so the
// result doubles as a stable cache key.
func (c *Client) resolve(endpoint string, query url.Values) (string, error) {
	var (
		u   *url.URL
		err error
	)
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		u, err = url.Parse(endpoint)
	} else {
		u, err = c.gh.BaseURL.Parse(strings.TrimPrefix(endpoint, "/"))
	}
	if err != nil {
		return "", err
	}

	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	} else if u.RawQuery != "" {
		u.RawQuery = u.Query().Encode()
	}
	return u.String(), nil
}

func cacheKey(target string) string {
	return http.MethodGet + " " + target
}

func decodeInto(body []byte, out any, target string) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{
			Message: fmt.Sprintf("decode response: %v", err),
			URL:     target,
			Err:     err,
		}
	}
	return nil
}

// RateLimit returns the current rate limit status. It is never cached.
func (c *Client) RateLimit(ctx context.Context) (*domain.RateLimitStatus, error) {
	limits, resp, err := c.gh.RateLimit.Get(ctx)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, finalError(c.wrapError(err, "rate_limit"), "rate_limit", 1)
	}

	core := limits.GetCore()
	if core == nil {
		return &domain.RateLimitStatus{
			Limit:     c.rateLimiter.Limit(),
			Remaining: c.rateLimiter.Remaining(),
			ResetAt:   c.rateLimiter.ResetTime(),
		}, nil
	}
	return &domain.RateLimitStatus{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		ResetAt:   core.Reset.Time,
	}, nil
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, target string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		resetAt := time.Now()
		if abuseErr.RetryAfter != nil {
			resetAt = resetAt.Add(*abuseErr.RetryAfter)
		}
		return &RateLimitError{ResetAt: resetAt}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		apiErr := &APIError{Message: ghErr.Message, URL: target}
		if ghErr.Response != nil {
			apiErr.StatusCode = ghErr.Response.StatusCode
			if apiErr.Message == "" {
				apiErr.Message = http.StatusText(ghErr.Response.StatusCode)
			}
		}
		return apiErr
	}

	return err
}

// noCache stands in when the caller supplies no cache.
type noCache struct{}

func (noCache) Get(string) ([]byte, bool) { return nil, false }
func (noCache) Set(string, []byte)        {}
func (noCache) Clear()                    {}
func (noCache) Len() int                  { return 0 }

// Package anilist is a minimal client for the AniList GraphQL API, used by
// the offline enrichment pipeline to attach genres and tags to quiz rows.
package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	baseURL   = "https://graphql.anilist.co"
	userAgent = "titlesearch/0.1 (https://github.com/aniquiz/titlesearch)"
)

// AniList allows ~90 req/min; one per second keeps a wide margin for the
// batch enrichment run.
const (
	rateLimitRequests = 1
	rateLimitDuration = time.Second
)

const maxRetries = 3

// ErrNotFound is returned when AniList has no media for the search title.
var ErrNotFound = errors.New("anilist: media not found")

// Client is a rate-limited AniList GraphQL client.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter

	// retryDelay is doubled on each retry; overridable in tests.
	retryDelay time.Duration
}

// NewClient creates a new AniList API client.
func NewClient() *Client {
	return &Client{
		httpClient:  &http.Client{},
		baseURL:     baseURL,
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDuration/time.Duration(rateLimitRequests)), rateLimitRequests),
		retryDelay:  2 * time.Second,
	}
}

// SearchAnime looks up a single anime by title. Transient failures are
// retried up to maxRetries times with a doubling delay.
func (c *Client) SearchAnime(ctx context.Context, title string) (*Media, error) {
	var lastErr error
	delay := c.retryDelay
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			delay *= 2
		}

		media, err := c.queryMedia(ctx, title)
		if err == nil {
			if media == nil {
				return nil, fmt.Errorf("%w: %q", ErrNotFound, title)
			}
			return media, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("search %q: %w", title, lastErr)
}

func (c *Client) queryMedia(ctx context.Context, title string) (*Media, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	reqBody, err := json.Marshal(graphqlRequest{
		Query:     mediaQuery,
		Variables: map[string]any{"search": title},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var out mediaResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w (body: %s)", err, string(b))
	}

	// AniList reports "not found" as a GraphQL 404 error, not an empty
	// Media object; treat it as a definitive miss rather than a retry.
	if len(out.Errors) > 0 {
		first := out.Errors[0]
		if first.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("api error (%d): %s", first.Status, first.Message)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(b))
	}

	return out.Data.Media, nil
}

// Package showcase is the consumer side of the contributions API: it fetches
// the aggregated pull requests with bounded retries and filters them locally.
package showcase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"portfolio-contributions/internal/entities"
	"portfolio-contributions/internal/mapper"
	"portfolio-contributions/internal/transport/http/dto"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const pullRequestsPath = "/api/github/pull-requests"

// ErrRateLimited is returned when the API reports an upstream rate limit.
var ErrRateLimited = errors.New("rate limit exceeded, try again later")

// StatusError is a non-success API response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api responded %d: %s", e.StatusCode, e.Message)
}

// Options configures a Client. Zero values select the defaults.
type Options struct {
	HTTPClient *http.Client
	// BaseDelay is the wait before the first retry; it doubles per attempt.
	BaseDelay time.Duration
	// MaxDelay caps a single wait.
	MaxDelay time.Duration
	// MaxRetries bounds the retries after the first attempt.
	MaxRetries uint64
}

// Client reads the aggregation endpoint.
type Client struct {
	log     *zap.SugaredLogger
	baseURL string
	opts    Options
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(log *zap.SugaredLogger, baseURL string, opts Options) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = time.Second
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 2
	}
	return &Client{
		log:     log.Named("showcase.client"),
		baseURL: strings.TrimRight(baseURL, "/"),
		opts:    opts,
	}
}

// PullRequests fetches the feed and wraps it in a View. Network failures and
// 5xx responses are retried with exponential backoff; rate limits and other
// client errors are returned immediately.
func (c *Client) PullRequests(ctx context.Context) (View, error) {
	var body dto.PullRequestsResponse

	attempt := 0
	op := func() error {
		attempt++
		var err error
		body, err = c.fetch(ctx)
		return err
	}
	notify := func(err error, wait time.Duration) {
		c.log.Warnw("pull requests request failed, retrying", "attempt", attempt, "wait", wait, "error", err)
	}

	if err := backoff.RetryNotify(op, c.policy(ctx), notify); err != nil {
		return View{}, err
	}

	return NewView(entities.PullRequestFeed{
		PullRequests: mapper.FromDTOPullList(body.Data),
		Cached:       body.Cached,
		FetchedAt:    fromUnixMilli(body.FetchTime),
	}), nil
}

func (c *Client) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.opts.BaseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = c.opts.MaxDelay
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, c.opts.MaxRetries), ctx)
}

func (c *Client) fetch(ctx context.Context) (dto.PullRequestsResponse, error) {
	var body dto.PullRequestsResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pullRequestsPath, nil)
	if err != nil {
		return body, backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return body, backoff.Permanent(err)
		}
		return body, fmt.Errorf("%w: %v", entities.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return body, backoff.Permanent(fmt.Errorf("%w: %w", ErrRateLimited, statusErr))
		case resp.StatusCode >= http.StatusInternalServerError:
			return body, statusErr
		default:
			return body, backoff.Permanent(statusErr)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return body, backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}
	if !body.Success {
		return body, backoff.Permanent(errors.New("api reported failure"))
	}
	return body, nil
}

func readErrorMessage(r io.Reader) string {
	var e dto.ErrorResponse
	raw, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return ""
	}
	if json.Unmarshal(raw, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(raw))
}

func fromUnixMilli(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

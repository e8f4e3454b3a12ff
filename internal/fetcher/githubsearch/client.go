// Package githubsearch implements the pull request fetcher against the GitHub search API.
package githubsearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"portfolio-contributions/internal/entities"

	gh "github.com/google/go-github/v66/github"
	"go.uber.org/zap"
)

const (
	maxPerPage               = 100
	defaultEnrichConcurrency = 4
)

// Options configures the search client.
type Options struct {
	BaseURL           string
	Token             string
	PerPage           int
	MaxPages          int
	EnrichDetails     bool
	EnrichConcurrency int
	HTTPClient        *http.Client
}

// Client fetches merged pull requests through the GitHub REST API.
type Client struct {
	log  *zap.SugaredLogger
	gh   *gh.Client
	opts Options
}

// New creates a search client. An empty token means anonymous rate limits.
func New(log *zap.SugaredLogger, opts Options) (*Client, error) {
	if opts.PerPage <= 0 || opts.PerPage > maxPerPage {
		opts.PerPage = maxPerPage
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 1
	}
	if opts.EnrichConcurrency <= 0 {
		opts.EnrichConcurrency = defaultEnrichConcurrency
	}

	client := gh.NewClient(opts.HTTPClient)
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}
	if opts.BaseURL != "" {
		base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse base url: %w", err)
		}
		client.BaseURL = base
	}

	return &Client{
		log:  log.Named("fetcher.github"),
		gh:   client,
		opts: opts,
	}, nil
}

// SearchQuery returns the search expression for merged PRs authored by author.
func SearchQuery(author string) string {
	return fmt.Sprintf("author:%s type:pr is:merged", author)
}

// FetchMergedPullRequests searches merged PRs of author, most recently updated first.
// Only the configured number of pages is requested.
func (c *Client) FetchMergedPullRequests(ctx context.Context, author string) ([]entities.PullRequest, error) {
	author = strings.TrimSpace(author)
	if author == "" {
		return nil, fmt.Errorf("%w: author is required", entities.ErrInvalidArgument)
	}

	opts := &gh.SearchOptions{
		Sort:        "updated",
		Order:       "desc",
		ListOptions: gh.ListOptions{PerPage: c.opts.PerPage},
	}

	items := make([]*gh.Issue, 0, c.opts.PerPage)
	for pages := 1; ; pages++ {
		res, resp, err := c.gh.Search.Issues(ctx, SearchQuery(author), opts)
		if err != nil {
			c.log.Errorw("search request failed", "author", author, "page", opts.Page, "error", err)
			return nil, classify(err)
		}
		items = append(items, res.Issues...)

		if resp.NextPage == 0 || pages >= c.opts.MaxPages {
			if resp.NextPage != 0 {
				c.log.Warnw("search results truncated at page limit",
					"author", author, "max_pages", c.opts.MaxPages, "total", res.GetTotal())
			}
			break
		}
		opts.Page = resp.NextPage
	}

	prs := c.normalizeAll(items)
	if c.opts.EnrichDetails && len(prs) > 0 {
		c.enrich(ctx, prs)
	}

	c.log.Infow("fetched merged pull requests", "author", author, "items", len(items), "pull_requests", len(prs))
	return prs, nil
}

func (c *Client) normalizeAll(items []*gh.Issue) []entities.PullRequest {
	prs := make([]entities.PullRequest, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		pr, err := Normalize(item)
		if err != nil {
			c.log.Warnw("skipping malformed search item", "error", err)
			continue
		}
		if _, dup := seen[pr.ID]; dup {
			c.log.Warnw("skipping duplicate search item", "id", pr.ID)
			continue
		}
		seen[pr.ID] = struct{}{}
		prs = append(prs, pr)
	}
	return prs
}

func classify(err error) error {
	var (
		rateErr  *gh.RateLimitError
		abuseErr *gh.AbuseRateLimitError
		respErr  *gh.ErrorResponse
	)
	switch {
	case errors.As(err, &rateErr):
		return &entities.FetchError{StatusCode: statusOf(rateErr.Response), Kind: entities.ErrUpstreamRateLimited, Err: err}
	case errors.As(err, &abuseErr):
		return &entities.FetchError{StatusCode: statusOf(abuseErr.Response), Kind: entities.ErrUpstreamRateLimited, Err: err}
	case errors.As(err, &respErr):
		status := statusOf(respErr.Response)
		kind := entities.ErrUpstreamUnavailable
		if status == http.StatusTooManyRequests {
			kind = entities.ErrUpstreamRateLimited
		}
		return &entities.FetchError{StatusCode: status, Kind: kind, Err: err}
	default:
		return &entities.FetchError{Kind: entities.ErrUpstreamUnavailable, Err: err}
	}
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

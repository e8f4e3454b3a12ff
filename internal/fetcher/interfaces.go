// Package fetcher contains fetcher interfaces for upstream code-hosting APIs.
package fetcher

import (
	"context"

	"portfolio-contributions/internal/entities"
)

// PullRequestFetcher loads every merged PR authored by a user.
// Failures are returned as *entities.FetchError. An author without merged
// PRs yields an empty slice and a nil error.
type PullRequestFetcher interface {
	FetchMergedPullRequests(ctx context.Context, author string) ([]entities.PullRequest, error)
}

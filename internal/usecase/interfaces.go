package usecase

import (
	"context"
	"time"

	"portfolio-contributions/internal/entities"
)

// PullRequestUsecaseInterface abstracts the aggregated read operations.
type PullRequestUsecaseInterface interface {
	PullRequests(ctx context.Context) (entities.PullRequestFeed, error)
	Stats(ctx context.Context) (entities.StatsFeed, error)
}

// CacheUsecaseInterface abstracts cache maintenance operations.
type CacheUsecaseInterface interface {
	Invalidate(ctx context.Context, secret, username string) (time.Time, error)
	Warm(ctx context.Context) error
}

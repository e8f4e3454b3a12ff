// Package domain contains application services orchestrating the aggregation of pull requests.
package domain

import (
	"context"
	"time"

	"portfolio-contributions/internal/cache"
	"portfolio-contributions/internal/fetcher"
	"portfolio-contributions/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Settings holds the process-level identity the usecase serves.
type Settings struct {
	Author           string
	RevalidateSecret string
	FetchTimeout     time.Duration
}

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx      context.Context
	log      *zap.SugaredLogger
	fetcher  fetcher.PullRequestFetcher
	repo     repository.SnapshotInterface
	cache    *cache.Cache
	settings Settings
	timeout  time.Duration
	flight   singleflight.Group
}

// New constructs a new usecase layer with its dependencies. ctx bounds
// background refreshes, which outlive the request that triggered them.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	f fetcher.PullRequestFetcher,
	repo repository.SnapshotInterface,
	c *cache.Cache,
	settings Settings,
	timeout time.Duration,
) *Usecase {
	return &Usecase{
		ctx:      ctx,
		log:      log.Named("usecase"),
		fetcher:  f,
		repo:     repo,
		cache:    c,
		settings: settings,
		timeout:  timeout,
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

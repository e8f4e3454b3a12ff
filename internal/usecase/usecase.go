package usecase

import (
	"context"
	"time"

	"portfolio-contributions/internal/cache"
	"portfolio-contributions/internal/fetcher"
	"portfolio-contributions/internal/repository"
	"portfolio-contributions/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	PullRequestUsecaseInterface
	CacheUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	f fetcher.PullRequestFetcher,
	repo repository.SnapshotInterface,
	c *cache.Cache,
	settings domain.Settings,
	timeout time.Duration,
) InterfaceUsecase {
	return domain.New(log, ctx, f, repo, c, settings, timeout)
}

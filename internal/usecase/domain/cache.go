package domain

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"portfolio-contributions/internal/cache"
	"portfolio-contributions/internal/entities"
)

// Invalidate forces the next read to refetch. secret must match the configured
// revalidation secret; a non-empty username must name the tracked author.
func (u *Usecase) Invalidate(_ context.Context, secret, username string) (time.Time, error) {
	configured := u.settings.RevalidateSecret
	if configured == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(configured)) != 1 {
		u.log.Warnw("rejected cache invalidation: bad secret")
		return time.Time{}, entities.ErrUnauthorized
	}
	if username != "" && !strings.EqualFold(strings.TrimSpace(username), u.settings.Author) {
		u.log.Warnw("rejected cache invalidation: foreign author", "username", username)
		return time.Time{}, entities.ErrForbidden
	}

	u.cache.Invalidate()
	now := u.cache.Now()
	u.log.Infow("cache invalidated", "author", u.settings.Author, "generation", u.cache.Generation())
	return now, nil
}

// Warm seeds an empty cache from the persisted snapshot. The snapshot's own
// fetch time decides whether it starts fresh or stale.
func (u *Usecase) Warm(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	snap, err := u.repo.LoadSnapshot(ctx, u.settings.Author)
	if err != nil {
		if errors.Is(err, entities.ErrSnapshotNotFound) {
			u.log.Debugw("no snapshot to warm from", "author", u.settings.Author)
			return nil
		}
		return err
	}

	cur := u.cache.Get()
	if cur.State != cache.StateEmpty {
		return nil
	}
	u.cache.Set(cache.Entry{PullRequests: snap.PullRequests, FetchedAt: snap.FetchedAt}, cur.Generation)
	u.log.Infow("cache warmed from snapshot",
		"author", u.settings.Author,
		"pull_requests", len(snap.PullRequests),
		"fetched_at", snap.FetchedAt,
		"state", u.cache.Get().State.String(),
	)
	return nil
}

package domain

import (
	"context"
	"fmt"
	"time"

	"portfolio-contributions/internal/cache"
	"portfolio-contributions/internal/entities"

	"github.com/google/uuid"
)

type refreshResult struct {
	entry   cache.Entry
	fetched bool
}

// PullRequests serves the cached pull requests while fresh and refetches otherwise.
// A failed refetch falls back to whatever is cached; only an empty cache turns
// the failure into entities.ErrNoFallbackAvailable.
func (u *Usecase) PullRequests(ctx context.Context) (entities.PullRequestFeed, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	snap := u.cache.Get()
	if snap.State == cache.StateFresh {
		return feedOf(snap.Entry, true), nil
	}

	res, err := u.refresh(ctx, snap.Generation)
	if err == nil {
		return feedOf(res.entry, !res.fetched), nil
	}

	if cur := u.cache.Get(); cur.State != cache.StateEmpty {
		u.log.Warnw("serving stale pull requests",
			"author", u.settings.Author,
			"fetched_at", cur.Entry.FetchedAt,
			"error", err,
		)
		return feedOf(cur.Entry, true), nil
	}
	return entities.PullRequestFeed{}, fmt.Errorf("%w: %w", entities.ErrNoFallbackAvailable, err)
}

// Stats derives statistics from the same feed PullRequests serves.
func (u *Usecase) Stats(ctx context.Context) (entities.StatsFeed, error) {
	feed, err := u.PullRequests(ctx)
	if err != nil {
		return entities.StatsFeed{}, err
	}
	return entities.StatsFeed{
		Stats:        entities.NewStats(feed.PullRequests),
		Repositories: entities.Repositories(feed.PullRequests),
		Cached:       feed.Cached,
		FetchedAt:    feed.FetchedAt,
	}, nil
}

// refresh collapses concurrent refreshes of one cache generation into one
// upstream call, so a read after an invalidation never joins a fetch started
// before it. Callers stop waiting when ctx ends; the shared fetch keeps running
// on the usecase context.
func (u *Usecase) refresh(ctx context.Context, gen uint64) (refreshResult, error) {
	key := fmt.Sprintf("%s/%d", u.settings.Author, gen)
	ch := u.flight.DoChan(key, func() (interface{}, error) {
		return u.fetchAndStore(gen)
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return refreshResult{}, r.Err
		}
		return r.Val.(refreshResult), nil
	case <-ctx.Done():
		return refreshResult{}, ctx.Err()
	}
}

func (u *Usecase) fetchAndStore(gen uint64) (refreshResult, error) {
	snap := u.cache.Get()
	if snap.State == cache.StateFresh {
		return refreshResult{entry: snap.Entry}, nil
	}

	log := u.log.With("refresh_id", uuid.NewString(), "author", u.settings.Author)
	log.Infow("refreshing pull requests", "state", snap.State.String())

	ctx, cancel := withTimeout(u.ctx, u.settings.FetchTimeout)
	defer cancel()

	start := time.Now()
	prs, err := u.fetcher.FetchMergedPullRequests(ctx, u.settings.Author)
	if err != nil {
		log.Errorw("refresh failed", "error", err)
		return refreshResult{}, err
	}
	if prs == nil {
		prs = make([]entities.PullRequest, 0)
	}

	entry := cache.Entry{PullRequests: prs, FetchedAt: u.cache.Now()}
	if !u.cache.Set(entry, gen) {
		log.Infow("refresh superseded by a newer fetch", "pull_requests", len(prs))
		return refreshResult{entry: entry, fetched: true}, nil
	}
	log.Infow("refresh completed",
		"pull_requests", len(prs),
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
	)

	if err := u.repo.SaveSnapshot(ctx, entities.Snapshot{
		Author:       u.settings.Author,
		PullRequests: prs,
		FetchedAt:    entry.FetchedAt,
	}); err != nil {
		log.Warnw("failed to persist snapshot", "error", err)
	}
	return refreshResult{entry: entry, fetched: true}, nil
}

func feedOf(e cache.Entry, cached bool) entities.PullRequestFeed {
	prs := e.PullRequests
	if prs == nil {
		prs = make([]entities.PullRequest, 0)
	}
	return entities.PullRequestFeed{
		PullRequests: prs,
		Cached:       cached,
		FetchedAt:    e.FetchedAt,
	}
}

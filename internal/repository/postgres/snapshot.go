package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"portfolio-contributions/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	selectSnapshotQuery = `SELECT author, payload, fetched_at FROM pr_snapshots WHERE author=$1`
	upsertSnapshotQuery = `
		INSERT INTO pr_snapshots(author, payload, pr_count, fetched_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (author) DO UPDATE
		SET payload = EXCLUDED.payload,
		    pr_count = EXCLUDED.pr_count,
		    fetched_at = EXCLUDED.fetched_at,
		    updated_at = NOW()`
)

// LoadSnapshot reads the last saved fetch of author.
func (p *Postgres) LoadSnapshot(ctx context.Context, author string) (*entities.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.QueryTimeout)
	defer cancel()

	var (
		snap    entities.Snapshot
		payload []byte
	)
	if err := p.db.QueryRow(ctx, selectSnapshotQuery, author).Scan(&snap.Author, &payload, &snap.FetchedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrSnapshotNotFound
		}
		p.log.Errorw("failed to select snapshot", "error", err, "author", author)
		return nil, fmt.Errorf("select snapshot: %w", err)
	}

	if err := json.Unmarshal(payload, &snap.PullRequests); err != nil {
		p.log.Errorw("failed to decode snapshot payload", "error", err, "author", author)
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.PullRequests == nil {
		snap.PullRequests = make([]entities.PullRequest, 0)
	}
	return &snap, nil
}

// SaveSnapshot upserts the snapshot of snap.Author.
func (p *Postgres) SaveSnapshot(ctx context.Context, snap entities.Snapshot) error {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.QueryTimeout)
	defer cancel()

	prs := snap.PullRequests
	if prs == nil {
		prs = make([]entities.PullRequest, 0)
	}
	payload, err := json.Marshal(prs)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if _, err := p.db.Exec(ctx, upsertSnapshotQuery, snap.Author, payload, len(prs), snap.FetchedAt); err != nil {
		p.log.Errorw("failed to upsert snapshot", "error", err, "author", snap.Author)
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	p.log.Infow("snapshot saved", "author", snap.Author, "pull_requests", len(prs))
	return nil
}

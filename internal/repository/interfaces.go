// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"portfolio-contributions/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// SnapshotInterface persists the last successful fetch per author.
type SnapshotInterface interface {
	// LoadSnapshot returns entities.ErrSnapshotNotFound when nothing was saved for author.
	LoadSnapshot(ctx context.Context, author string) (*entities.Snapshot, error)
	// SaveSnapshot replaces the stored snapshot of snap.Author.
	SaveSnapshot(ctx context.Context, snap entities.Snapshot) error
}

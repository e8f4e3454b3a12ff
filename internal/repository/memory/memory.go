// Package memory keeps snapshots in process memory. Nothing survives a restart.
package memory

import (
	"context"
	"slices"
	"sync"

	"portfolio-contributions/internal/entities"

	"go.uber.org/zap"
)

// Memory is an in-process snapshot store.
type Memory struct {
	log   *zap.SugaredLogger
	mu    sync.RWMutex
	items map[string]entities.Snapshot
}

// New creates an empty store.
func New(log *zap.SugaredLogger) *Memory {
	return &Memory{
		log:   log.Named("repo.memory"),
		items: make(map[string]entities.Snapshot),
	}
}

// OnStart is a no-op.
func (m *Memory) OnStart(_ context.Context) error {
	m.log.Debugw("memory snapshot store ready")
	return nil
}

// OnStop is a no-op.
func (m *Memory) OnStop(_ context.Context) error { return nil }

// LoadSnapshot returns a copy of the stored snapshot.
func (m *Memory) LoadSnapshot(_ context.Context, author string) (*entities.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.items[author]
	if !ok {
		return nil, entities.ErrSnapshotNotFound
	}
	snap.PullRequests = slices.Clone(snap.PullRequests)
	return &snap, nil
}

// SaveSnapshot stores snap, replacing any previous one for the same author.
func (m *Memory) SaveSnapshot(_ context.Context, snap entities.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap.PullRequests = slices.Clone(snap.PullRequests)
	m.items[snap.Author] = snap
	return nil
}

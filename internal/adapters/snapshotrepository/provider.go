package snapshotrepository

import (
	"context"
	"fmt"
	"sync"

	"github.com/meeplestats/meeplestats/internal/domain"
	"github.com/meeplestats/meeplestats/internal/logging"
)

type SnapshotStore interface {
	GetVersion(ctx context.Context) (string, error)
	LoadSnapshot(ctx context.Context) (domain.Snapshot, error)
}

// StoreProvider serves the snapshot in a SnapshotStore, only loading the full
// collection again when the stored version changes
type StoreProvider struct {
	store SnapshotStore

	mu       sync.Mutex
	snapshot *domain.Snapshot
}

func NewStoreProvider(store SnapshotStore) *StoreProvider {
	return &StoreProvider{store: store}
}

func (p *StoreProvider) GetSnapshot(ctx context.Context) (domain.Snapshot, error) {
	version, err := p.store.GetVersion(ctx)
	if err != nil {
		// NOTE: SnapshotStore implementations handle their own error reporting
		return domain.Snapshot{}, fmt.Errorf("failed to get stored version: %w", err)
	}

	// Held while loading so concurrent callers share a single load
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.snapshot != nil && p.snapshot.Version == version {
		return *p.snapshot, nil
	}

	snapshot, err := p.store.LoadSnapshot(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	logging.FromContext(ctx).InfoContext(ctx, "Loaded snapshot from store",
		"version", snapshot.Version,
		"plays", len(snapshot.Collection.Plays),
	)

	p.snapshot = &snapshot
	return snapshot, nil
}

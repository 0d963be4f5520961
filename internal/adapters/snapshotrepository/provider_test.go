package snapshotrepository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/meeplestats/meeplestats/internal/adapters/snapshotrepository"
	"github.com/meeplestats/meeplestats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockedSnapshotStore struct {
	mu        sync.Mutex
	version   string
	err       error
	loadCalls int
}

func (m *mockedSnapshotStore) GetVersion(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version, m.err
}

func (m *mockedSnapshotStore) LoadSnapshot(ctx context.Context) (domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls++
	if m.err != nil {
		return domain.Snapshot{}, m.err
	}
	return domain.Snapshot{
		Collection: domain.Collection{SelfPlayerID: m.loadCalls},
		Version:    m.version,
		LoadedAt:   time.Now(),
	}, nil
}

func (m *mockedSnapshotStore) setVersion(version string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.version = version
}

func TestStoreProvider(t *testing.T) {
	t.Parallel()

	t.Run("loads once per version", func(t *testing.T) {
		t.Parallel()

		ctx := t.Context()
		store := &mockedSnapshotStore{version: "v1"}
		provider := snapshotrepository.NewStoreProvider(store)

		for range 3 {
			snapshot, err := provider.GetSnapshot(ctx)
			require.NoError(t, err)
			require.Equal(t, "v1", snapshot.Version)
			require.Equal(t, 1, snapshot.Collection.SelfPlayerID)
		}
		require.Equal(t, 1, store.loadCalls)

		store.setVersion("v2")
		snapshot, err := provider.GetSnapshot(ctx)
		require.NoError(t, err)
		require.Equal(t, "v2", snapshot.Version)
		require.Equal(t, 2, snapshot.Collection.SelfPlayerID)
		require.Equal(t, 2, store.loadCalls)
	})

	t.Run("concurrent callers share a load", func(t *testing.T) {
		t.Parallel()

		ctx := t.Context()
		store := &mockedSnapshotStore{version: "v1"}
		provider := snapshotrepository.NewStoreProvider(store)

		wg := sync.WaitGroup{}
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := provider.GetSnapshot(ctx)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		require.Equal(t, 1, store.loadCalls)
	})

	t.Run("unavailable", func(t *testing.T) {
		t.Parallel()

		store := &mockedSnapshotStore{err: domain.ErrSnapshotUnavailable}
		provider := snapshotrepository.NewStoreProvider(store)

		_, err := provider.GetSnapshot(t.Context())
		require.ErrorIs(t, err, domain.ErrSnapshotUnavailable)
	})

	t.Run("load error is returned", func(t *testing.T) {
		t.Parallel()

		loadErr := errors.New("connection refused")
		store := &mockedSnapshotStore{version: "v1", err: loadErr}
		provider := snapshotrepository.NewStoreProvider(store)

		_, err := provider.GetSnapshot(t.Context())
		require.ErrorIs(t, err, loadErr)
	})
}

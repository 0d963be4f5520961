package snapshotrepository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/meeplestats/meeplestats/internal/domain"
	"github.com/meeplestats/meeplestats/internal/reporting"
)

// Editors and sync tools often write a file in several steps
const reloadDebounce = 200 * time.Millisecond

// LoadFile reads and parses the JSON document at path
func LoadFile(path string, nowFunc func() time.Time) (domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	snapshot, err := ParseDocument(data, nowFunc())
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}

	return snapshot, nil
}

// FileProvider serves the snapshot in a JSON file and reloads it when the file changes.
// A failed reload keeps serving the last good snapshot.
type FileProvider struct {
	path    string
	nowFunc func() time.Time
	logger  *slog.Logger

	mu       sync.RWMutex
	snapshot domain.Snapshot
}

func NewFileProvider(path string, nowFunc func() time.Time, logger *slog.Logger) (*FileProvider, error) {
	snapshot, err := LoadFile(path, nowFunc)
	if err != nil {
		return nil, err
	}

	logger.Info("Loaded snapshot", "path", path, "version", snapshot.Version, "plays", len(snapshot.Collection.Plays))

	return &FileProvider{
		path:     filepath.Clean(path),
		nowFunc:  nowFunc,
		logger:   logger,
		snapshot: snapshot,
	}, nil
}

func (p *FileProvider) GetSnapshot(ctx context.Context) (domain.Snapshot, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot, nil
}

// Reload reads the file again, replacing the served snapshot if the content changed
func (p *FileProvider) Reload(ctx context.Context) error {
	snapshot, err := LoadFile(p.path, p.nowFunc)
	if err != nil {
		reporting.Report(ctx, err, map[string]string{"path": p.path})
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if snapshot.Version == p.snapshot.Version {
		p.logger.InfoContext(ctx, "Snapshot unchanged", "version", snapshot.Version)
		return nil
	}

	p.logger.InfoContext(ctx, "Reloaded snapshot",
		"previousVersion", p.snapshot.Version,
		"version", snapshot.Version,
		"plays", len(snapshot.Collection.Plays),
	)
	p.snapshot = snapshot
	return nil
}

// Watch reloads the snapshot whenever the file is written, created or renamed
// into place. Blocks until ctx is done.
func (p *FileProvider) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directory to survive the file being replaced
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		return fmt.Errorf("failed to watch snapshot directory: %w", err)
	}

	var debounce *time.Timer
	reload := make(chan struct{}, 1)
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("fsnotify event channel closed")
			}
			if filepath.Clean(event.Name) != p.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			// Errors are reported by Reload, keep watching
			_ = p.Reload(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("fsnotify error channel closed")
			}
			p.logger.WarnContext(ctx, "Snapshot watcher error", "error", err)
		}
	}
}

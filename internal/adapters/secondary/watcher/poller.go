package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fredcamaral/simreport/internal/domain/entities"
	"github.com/fredcamaral/simreport/internal/domain/ports"
)

// LogPoller watches simulator logs by polling. A log that is still being
// written is reported once, after it has stopped changing for the settle
// period; a log that disappears is reported at once.
type LogPoller struct {
	interval time.Duration
	settle   time.Duration
	logger   *slog.Logger

	mu        sync.RWMutex
	snapshots map[string]snapshot
	events    chan ports.FileChangeEvent
	wg        sync.WaitGroup
	stopped   bool
	stopCh    chan struct{}
}

// snapshot is what the poller last saw of a log
type snapshot struct {
	Size     int64
	ModTime  time.Time
	Checksum string
}

// NewLogPoller creates a poller from the watcher configuration
func NewLogPoller(cfg entities.WatcherConfig, logger *slog.Logger) *LogPoller {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPoller{
		interval:  cfg.GetInterval(),
		settle:    cfg.GetDebounce(),
		logger:    logger.With("component", "log-poller"),
		snapshots: make(map[string]snapshot),
		events:    make(chan ports.FileChangeEvent, 10),
		stopCh:    make(chan struct{}),
	}
}

// Watch starts polling a log. The log must exist when watching starts.
func (p *LogPoller) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	snap, err := p.take(absPath)
	if err != nil {
		return nil, entities.NewReportError(entities.KindIO, "initial scan", err).WithDetails("%s", path)
	}
	p.mu.Lock()
	p.snapshots[absPath] = snap
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.pollLoop(ctx, absPath)
	}()

	p.logger.Debug("Watching log", slog.String("path", absPath), slog.Duration("interval", p.interval))
	return p.events, nil
}

// Stop stops every poll loop and closes the event channel
func (p *LogPoller) Stop() error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	close(p.stopCh)
	p.mu.Unlock()

	p.wg.Wait()
	close(p.events)
	return nil
}

func (p *LogPoller) pollLoop(ctx context.Context, path string) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var (
		pending    bool
		lastChange time.Time
		gone       bool
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
		}

		state, err := p.poll(path)
		if err != nil {
			p.logger.Warn("Polling log failed", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}

		switch state {
		case stateDeleted:
			pending = false
			if gone {
				continue
			}
			gone = true
			if !p.emit(ctx, path, ports.Deleted) {
				return
			}
		case stateChanged:
			gone = false
			pending = true
			lastChange = time.Now()
		case stateUnchanged:
			if pending && time.Since(lastChange) >= p.settle {
				pending = false
				if !p.emit(ctx, path, ports.Modified) {
					return
				}
			}
		}
	}
}

// emit delivers an event; it reports false once the poller should exit
func (p *LogPoller) emit(ctx context.Context, path string, change ports.ChangeType) bool {
	event := ports.FileChangeEvent{Path: path, Type: change, Timestamp: time.Now()}
	select {
	case p.events <- event:
		p.logger.Debug("Log changed", slog.String("path", path), slog.String("change", change.String()))
		return true
	case <-ctx.Done():
		return false
	case <-p.stopCh:
		return false
	}
}

type pollState int

const (
	stateUnchanged pollState = iota
	stateChanged
	stateDeleted
)

// poll compares the log with its last snapshot
func (p *LogPoller) poll(path string) (pollState, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			p.mu.Lock()
			delete(p.snapshots, path)
			p.mu.Unlock()
			return stateDeleted, nil
		}
		return stateUnchanged, fmt.Errorf("stat log: %w", err)
	}

	p.mu.RLock()
	old, exists := p.snapshots[path]
	p.mu.RUnlock()

	if exists && old.Size == info.Size() && old.ModTime.Equal(info.ModTime()) {
		return stateUnchanged, nil
	}

	snap, err := p.take(path)
	if err != nil {
		return stateUnchanged, err
	}

	p.mu.Lock()
	p.snapshots[path] = snap
	p.mu.Unlock()

	if exists && old.Checksum == snap.Checksum {
		return stateUnchanged, nil
	}
	return stateChanged, nil
}

// take snapshots a log
func (p *LogPoller) take(path string) (snapshot, error) {
	info, err := os.Stat(path)
	if err != nil {
		return snapshot{}, fmt.Errorf("stat log: %w", err)
	}

	checksum, err := checksumFile(path)
	if err != nil {
		return snapshot{}, fmt.Errorf("checksum log: %w", err)
	}

	return snapshot{Size: info.Size(), ModTime: info.ModTime(), Checksum: checksum}, nil
}

func checksumFile(path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 - path is the log named on the command line
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// Ensure LogPoller implements ports.FileWatcher
var _ ports.FileWatcher = (*LogPoller)(nil)

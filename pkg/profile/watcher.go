package profile

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/httprequest/pkg/httprequest"
	"github.com/bft-labs/httprequest/pkg/log"
)

// WatcherConfig holds configuration options for a Watcher.
type WatcherConfig struct {
	// Path is the TOML profile to watch.
	// Default: DefaultPath()
	Path string

	// Base is the profile the file is layered onto on every reload.
	// Default: DefaultProfile()
	Base *Profile

	// DebounceDelay is the delay to wait after a file change before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// Logger receives reload results. Default: no-op.
	Logger log.Logger

	// OnReload, if set, is called with every successfully reloaded profile.
	OnReload func(Profile)
}

// DefaultWatcherConfig returns a WatcherConfig with sensible defaults.
func DefaultWatcherConfig() WatcherConfig {
	base := DefaultProfile()
	return WatcherConfig{
		Path:          DefaultPath(),
		Base:          &base,
		DebounceDelay: 100 * time.Millisecond,
		Logger:        log.NewNoopLogger(),
	}
}

// Watcher keeps a Profile in sync with a file on disk.
type Watcher struct {
	path     string
	base     Profile
	debounce time.Duration
	logger   log.Logger
	onReload func(Profile)

	mu      sync.RWMutex
	current Profile
	timer   *time.Timer
	cancel  context.CancelFunc
	stopped bool
	wg      sync.WaitGroup

	// reloads tracks debounced reloads that are running. No reload starts
	// once stopped is set.
	reloads sync.WaitGroup
}

// NewWatcher loads the profile file, if it exists, and returns a watcher
// serving it. Call Start to follow later changes.
func NewWatcher(cfg WatcherConfig) (*Watcher, error) {
	defaults := DefaultWatcherConfig()
	if cfg.Path == "" {
		cfg.Path = defaults.Path
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("profile path is required")
	}
	if cfg.Base == nil {
		cfg.Base = defaults.Base
	}
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = defaults.DebounceDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = defaults.Logger
	}

	w := &Watcher{
		path:     cfg.Path,
		base:     *cfg.Base,
		debounce: cfg.DebounceDelay,
		logger:   cfg.Logger.With(log.String("profile", cfg.Path)),
		onReload: cfg.OnReload,
		current:  *cfg.Base,
	}
	if FileExists(w.path) {
		if err := w.Reload(); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Current returns the profile as of the last successful reload.
func (w *Watcher) Current() Profile {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// NewRequest creates a request configured by the current profile.
func (w *Watcher) NewRequest(rawURL string, opts ...httprequest.Option) (*httprequest.Request, error) {
	return w.Current().NewRequest(rawURL, opts...)
}

// Reload reads the file again. On failure the current profile is kept.
func (w *Watcher) Reload() error {
	fp, err := LoadFile(w.path)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	p := w.base
	if err := ApplyFile(&p, fp, nil); err != nil {
		return fmt.Errorf("apply profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validate profile: %w", err)
	}

	w.mu.Lock()
	w.current = p
	w.mu.Unlock()

	if w.onReload != nil {
		w.onReload(p)
	}
	return nil
}

// Start begins watching the directory holding the profile file. It
// returns once the watch is registered. A stopped watcher cannot be
// started again.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.RLock()
	stopped := w.stopped
	w.mu.RUnlock()
	if stopped {
		return fmt.Errorf("profile watcher stopped")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	w.wg.Add(1)
	go w.watchLoop(watchCtx, fw)

	w.logger.Info("profile watcher started")
	return nil
}

// Stop ends watching and waits for the watch loop and any reload in
// progress to finish. No reload or OnReload call happens after it returns.
func (w *Watcher) Stop() {
	w.mu.Lock()
	w.stopped = true
	cancel := w.cancel
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
	w.reloads.Wait()
}

func (w *Watcher) watchLoop(ctx context.Context, fw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fw.Close()

	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceReload(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("profile watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) debounceReload(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		if w.stopped || ctx.Err() != nil {
			w.mu.Unlock()
			return
		}
		w.reloads.Add(1)
		w.mu.Unlock()
		defer w.reloads.Done()

		if err := w.Reload(); err != nil {
			w.logger.Warn("profile reload failed, keeping previous profile", log.Err(err))
			return
		}
		w.logger.Info("profile reloaded")
	})
}

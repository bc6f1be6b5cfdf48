package feed

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads one ilk from the market file whenever the file changes.
type Watcher struct {
	path     string
	ilk      string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *zap.Logger
}

// NewWatcher watches the directory holding path. Watching the directory
// rather than the file survives editors and writers that replace the file
// through a rename.
func NewWatcher(path, ilk string, log *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve market file: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch directory %s: %w", filepath.Dir(abs), err)
	}

	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		path:     abs,
		ilk:      ilk,
		watcher:  fsw,
		debounce: 100 * time.Millisecond,
		log:      log.Named("feed"),
	}, nil
}

// Watch starts watching and returns a channel of market updates.
// Cancelling the context stops watching. The returned channel is closed
// when the context is cancelled or the watcher fails.
func (w *Watcher) Watch(ctx context.Context) <-chan MarketUpdate {
	out := make(chan MarketUpdate, 8)

	go func() {
		defer close(out)

		// Initialize a stopped timer
		debounceTimer := time.NewTimer(0)
		if !debounceTimer.Stop() {
			<-debounceTimer.C
		}
		pending := false

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.relevant(event) {
					continue
				}
				pending = true
				debounceTimer.Reset(w.debounce)

			case <-debounceTimer.C:
				if !pending {
					continue
				}
				pending = false

				m, err := LoadMarket(w.path, w.ilk)
				if err != nil {
					w.log.Warn("market reload failed", zap.String("file", w.path), zap.Error(err))
				} else {
					w.log.Debug("market reloaded",
						zap.String("ilk", m.Ilk),
						zap.String("price", m.PriceInfo.CurrentCollateralPrice.String()))
				}
				select {
				case out <- MarketUpdate{Market: m, Err: err, Time: time.Now()}:
				case <-ctx.Done():
					return
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				// Log errors but keep watching
				w.log.Warn("fsnotify error", zap.Error(err))
			}
		}
	}()

	return out
}

// Close stops watching and cleans up resources.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// relevant reports whether ev touches the market file. Temp files used
// for atomic writes are skipped.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if strings.Contains(filepath.Base(ev.Name), ".tmp") {
		return false
	}
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write)
}

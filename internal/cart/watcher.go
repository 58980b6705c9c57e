package cart

import (
	"context"
	"sync"
	"time"

	"void-shop/internal/model"

	"github.com/rs/zerolog"
)

// FetchFunc fetches the full inventory snapshot.
type FetchFunc func(ctx context.Context) (map[string]model.InventoryEntry, error)

// UpdateFunc receives each inventory snapshot. A fetch failure delivers an
// empty snapshot, so consumers treat every product as unavailable until the
// next successful poll.
type UpdateFunc func(snapshot map[string]model.InventoryEntry)

// Watcher periodically re-fetches the inventory and pushes each snapshot to
// an update callback. It owns its polling timer: Start launches the loop and
// Stop tears it down, releasing the scheduled work.
type Watcher struct {
	interval time.Duration
	fetch    FetchFunc
	onUpdate UpdateFunc
	logger   zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher creates a watcher polling every interval.
func NewWatcher(interval time.Duration, fetch FetchFunc, onUpdate UpdateFunc, logger zerolog.Logger) *Watcher {
	return &Watcher{
		interval: interval,
		fetch:    fetch,
		onUpdate: onUpdate,
		logger:   logger.With().Str("component", "watcher").Logger(),
	}
}

// Start launches the polling loop. An immediate fetch runs before the first
// tick. Calling Start on a running watcher is a no-op.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.run(ctx, w.done)

	w.logger.Debug().Dur("interval", w.interval).Msg("watcher started")
}

// Stop tears down the polling loop and waits for it to exit. Stop is
// idempotent; a stopped watcher can be started again.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	done := w.done
	w.cancel = nil
	w.done = nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	w.logger.Debug().Msg("watcher stopped")
}

// run is the polling loop.
func (w *Watcher) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// poll fetches one snapshot and delivers it. On failure the snapshot is
// empty: missing ids read as unavailable.
func (w *Watcher) poll(ctx context.Context) {
	snapshot, err := w.fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Warn().Err(err).Msg("inventory fetch failed, degrading to empty snapshot")
		snapshot = map[string]model.InventoryEntry{}
	}

	w.onUpdate(snapshot)
}

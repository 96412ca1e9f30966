package store

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/acsaprep/preptool/internal/notify"
)

// DefaultFlushInterval is how often queued writes reach the backing store.
const DefaultFlushInterval = 30 * time.Second

// flushConcurrency bounds parallel writes during a flush.
const flushConcurrency = 4

type pendingKey struct {
	profileID uuid.UUID
	key       string
}

type pendingOp struct {
	value   []byte
	deleted bool
}

// Autosaver is a write-behind Store wrapper. Sets and deletes are queued
// in memory (last writer wins per profile/key) and flushed to the backing
// store on a fixed interval and on Stop. Reads observe queued writes.
//
// A failed flush drops the affected writes and raises a one-shot user
// notification; it never propagates to the component that wrote.
type Autosaver struct {
	backing  Store
	notifier notify.Notifier
	interval time.Duration

	mu      sync.Mutex
	pending map[pendingKey]pendingOp

	done     chan struct{}
	stopOnce sync.Once
	loopDone chan struct{}
}

// NewAutosaver wraps backing and starts the flush loop. The notifier
// should dedupe repeats (notify.NewOnce) so a persistently failing store
// produces a single user-facing notice.
func NewAutosaver(backing Store, notifier notify.Notifier, interval time.Duration) *Autosaver {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	a := &Autosaver{
		backing:  backing,
		notifier: notifier,
		interval: interval,
		pending:  make(map[pendingKey]pendingOp),
		done:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}
	go a.loop()
	return a
}

func (a *Autosaver) loop() {
	defer close(a.loopDone)
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.Flush(context.Background())
		case <-a.done:
			return
		}
	}
}

// Get returns the queued value when one exists, otherwise reads through.
func (a *Autosaver) Get(ctx context.Context, profileID uuid.UUID, key string) ([]byte, error) {
	a.mu.Lock()
	op, ok := a.pending[pendingKey{profileID, key}]
	a.mu.Unlock()

	if ok {
		if op.deleted {
			return nil, ErrNotFound
		}
		out := make([]byte, len(op.value))
		copy(out, op.value)
		return out, nil
	}
	return a.backing.Get(ctx, profileID, key)
}

// Set queues a write. It never fails; flush errors surface as a
// notification instead.
func (a *Autosaver) Set(ctx context.Context, profileID uuid.UUID, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	a.mu.Lock()
	a.pending[pendingKey{profileID, key}] = pendingOp{value: stored}
	a.mu.Unlock()
	return nil
}

// Delete queues a removal.
func (a *Autosaver) Delete(ctx context.Context, profileID uuid.UUID, key string) error {
	a.mu.Lock()
	a.pending[pendingKey{profileID, key}] = pendingOp{deleted: true}
	a.mu.Unlock()
	return nil
}

// Flush writes all queued operations to the backing store. Failed writes
// are dropped after notifying once.
func (a *Autosaver) Flush(ctx context.Context) {
	a.mu.Lock()
	if len(a.pending) == 0 {
		a.mu.Unlock()
		return
	}
	batch := a.pending
	a.pending = make(map[pendingKey]pendingOp)
	a.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(flushConcurrency)
	for pk, op := range batch {
		g.Go(func() error {
			if op.deleted {
				return a.backing.Delete(ctx, pk.profileID, pk.key)
			}
			return a.backing.Set(ctx, pk.profileID, pk.key, op.value)
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("[store] autosave flush failed: %v", err)
		if a.notifier != nil {
			a.notifier.Notify(notify.LevelWarning, "Unable to save your progress")
		}
	}
}

// Stop halts the flush loop and performs a final flush.
func (a *Autosaver) Stop(ctx context.Context) {
	a.stopOnce.Do(func() {
		close(a.done)
		<-a.loopDone
		a.Flush(ctx)
	})
}

package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	model "github.com/onflow/dao-dashboard/model/dao"
	"github.com/onflow/dao-dashboard/module"
	"github.com/onflow/dao-dashboard/module/component"
	"github.com/onflow/dao-dashboard/module/irrecoverable"
)

const DefaultRefreshInterval = 10 * time.Second

// ErrNoSnapshot is returned when no refresh has succeeded yet.
var ErrNoSnapshot = errors.New("no snapshot available yet")

// SnapshotSource fetches the current state of the DAO.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*model.Snapshot, error)
}

// Refresher keeps the latest snapshot of the DAO. It refreshes on a fixed interval and
// whenever Trigger is called. A failed refresh keeps the previous snapshot.
type Refresher struct {
	*component.ComponentManager
	log      zerolog.Logger
	source   SnapshotSource
	metrics  module.RefreshMetrics
	interval time.Duration

	snapshot *atomic.Pointer[model.Snapshot]
	trigger  chan struct{}

	mu     sync.Mutex
	errs   *multierror.Error // failures since the last successful refresh
	nextID uint64
	subs   map[uint64]chan *model.Snapshot
}

func NewRefresher(log zerolog.Logger, source SnapshotSource, metrics module.RefreshMetrics, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	r := &Refresher{
		log:      log.With().Str("component", "refresher").Logger(),
		source:   source,
		metrics:  metrics,
		interval: interval,
		snapshot: atomic.NewPointer[model.Snapshot](nil),
		trigger:  make(chan struct{}, 1),
		subs:     make(map[uint64]chan *model.Snapshot),
	}

	r.ComponentManager = component.NewComponentManagerBuilder().
		AddWorker(r.refreshLoop).
		Build()

	return r
}

func (r *Refresher) refreshLoop(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
	// the first snapshot is fetched before the component reports ready, a failure is not fatal
	_ = r.Refresh(ctx)
	ready()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.closeSubscriptions()
			return
		case <-ticker.C:
		case <-r.trigger:
		}
		_ = r.Refresh(ctx)
	}
}

// Trigger requests a refresh without waiting for it. Requests made while one is pending are merged.
func (r *Refresher) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Refresh fetches a snapshot now. On success the snapshot replaces the previous one and
// is published to every subscriber.
func (r *Refresher) Refresh(ctx context.Context) error {
	start := time.Now()
	snapshot, err := r.source.Snapshot(ctx)
	r.metrics.SnapshotRefreshed(time.Since(start), err)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.errs = multierror.Append(r.errs, err)
		r.log.Warn().
			Err(err).
			Int("consecutive_failures", len(r.errs.Errors)).
			Msg("could not refresh snapshot, keeping previous")
		return err
	}

	r.errs = nil
	r.snapshot.Store(snapshot)
	r.log.Debug().
		Int("founders", len(snapshot.Founders)).
		Int("topics", len(snapshot.Topics)).
		Dur("duration", time.Since(start)).
		Msg("snapshot refreshed")

	for _, ch := range r.subs {
		// subscribers only need the latest snapshot
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
	return nil
}

// Snapshot returns the latest successfully fetched snapshot.
func (r *Refresher) Snapshot() (*model.Snapshot, error) {
	snapshot := r.snapshot.Load()
	if snapshot == nil {
		if err := r.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNoSnapshot
	}
	return snapshot, nil
}

// Err returns the failures since the last successful refresh, or nil.
func (r *Refresher) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errs.ErrorOrNil()
}

// Updates returns a channel receiving every new snapshot, starting with the current one
// if any. Slow readers only see the latest snapshot. The channel is closed by the returned
// function or when the refresher shuts down.
func (r *Refresher) Updates() (<-chan *model.Snapshot, func()) {
	ch := make(chan *model.Snapshot, 1)

	// snapshots are stored under the lock, so none is missed between the load and the registration
	r.mu.Lock()
	if snapshot := r.snapshot.Load(); snapshot != nil {
		ch <- snapshot
	}
	id := r.nextID
	r.nextID++
	r.subs[id] = ch
	r.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if _, ok := r.subs[id]; ok {
				delete(r.subs, id)
				close(ch)
			}
		})
	}
}

func (r *Refresher) closeSubscriptions() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, ch := range r.subs {
		delete(r.subs, id)
		close(ch)
	}
}

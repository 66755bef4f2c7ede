package dashboard

import (
	"context"
	"fmt"
	"sync"

	sdk "github.com/onflow/flow-go-sdk"
	"github.com/rs/zerolog"

	"github.com/onflow/dao-dashboard/module/component"
	"github.com/onflow/dao-dashboard/module/irrecoverable"
	"github.com/onflow/dao-dashboard/module/txwatch"
	"github.com/onflow/dao-dashboard/utils/logging"
)

// MessageSealed is the notification shown when a tracked transaction succeeds.
const MessageSealed = "Transaction sealed successfully"

// listenerBuffer holds every event of a transaction: the lifecycle statuses, a few
// processing updates and the terminal event.
const listenerBuffer = 32

type EventKind string

const (
	EventStatus  EventKind = "status"
	EventSuccess EventKind = "success"
	EventFailure EventKind = "failure"
)

// Event is a progress update of a tracked transaction.
type Event struct {
	TransactionID sdk.Identifier
	Kind          EventKind
	Status        sdk.TransactionStatus
	Message       string
}

// Final returns true for the terminal event of a transaction.
func (e Event) Final() bool {
	return e.Kind != EventStatus
}

// Watcher starts watches over transactions.
type Watcher interface {
	Watch(ctx context.Context, txID sdk.Identifier, reporter txwatch.Reporter) (*txwatch.Watch, error)
}

// Trigger requests a refresh of the DAO views.
type Trigger interface {
	Trigger()
}

// Tracker follows submitted transactions. Terminal outcomes become notifications and a
// successful transaction triggers a refresh. Listeners receive every event of a transaction.
//
// A transaction passed to Track is followed until its terminal event. A transaction only
// followed by listeners is dropped once its last listener left.
type Tracker struct {
	*component.ComponentManager
	log           zerolog.Logger
	watcher       Watcher
	notifications *Notifications
	refresh       Trigger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	tracked map[sdk.Identifier]*tracked
	wg      sync.WaitGroup
}

type tracked struct {
	watch     *txwatch.Watch
	events    []Event
	nextID    uint64
	listeners map[uint64]chan Event
	finished  bool
	// pinned transactions were submitted by the dashboard and are never dropped early
	pinned bool
}

func NewTracker(log zerolog.Logger, watcher Watcher, notifications *Notifications, refresh Trigger) *Tracker {
	ctx, cancel := context.WithCancel(context.Background())
	t := &Tracker{
		log:           log.With().Str("component", "tracker").Logger(),
		watcher:       watcher,
		notifications: notifications,
		refresh:       refresh,
		ctx:           ctx,
		cancel:        cancel,
		tracked:       make(map[sdk.Identifier]*tracked),
	}

	t.ComponentManager = component.NewComponentManagerBuilder().
		AddWorker(t.shutdownOnCancel).
		Build()

	return t
}

func (t *Tracker) shutdownOnCancel(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
	ready()
	<-ctx.Done()

	t.cancel()

	t.mu.Lock()
	watches := make([]*txwatch.Watch, 0, len(t.tracked))
	for _, tr := range t.tracked {
		watches = append(watches, tr.watch)
	}
	t.mu.Unlock()

	for _, watch := range watches {
		watch.Cancel()
	}
	t.wg.Wait()
}

// Track follows a transaction until its terminal event, independently of listeners.
// Tracking a transaction twice is a no-op.
func (t *Tracker) Track(txID sdk.Identifier) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tr, err := t.trackLocked(txID)
	if err != nil {
		return err
	}
	tr.pinned = true
	return nil
}

// trackLocked returns the tracked transaction, starting a watch if there is none.
func (t *Tracker) trackLocked(txID sdk.Identifier) (*tracked, error) {
	if t.ctx.Err() != nil {
		return nil, component.ErrComponentShutdown
	}
	if tr, ok := t.tracked[txID]; ok {
		return tr, nil
	}

	tr := &tracked{listeners: make(map[uint64]chan Event)}
	reporter := txwatch.Callbacks{
		Status: func(txID sdk.Identifier, status sdk.TransactionStatus, message string) {
			t.publish(tr, Event{TransactionID: txID, Kind: EventStatus, Status: status, Message: message})
		},
		Success: func(txID sdk.Identifier, result *txwatch.Result) {
			t.notifications.Add(KindSuccess, MessageSealed, txID)
			t.refresh.Trigger()
			t.publish(tr, Event{TransactionID: txID, Kind: EventSuccess, Status: result.Status, Message: MessageSealed})
		},
		Failure: func(txID sdk.Identifier, message string) {
			t.notifications.Add(KindError, message, txID)
			t.publish(tr, Event{TransactionID: txID, Kind: EventFailure, Message: message})
		},
	}

	// the tracker lock is held while the watch starts, callbacks wait for it
	watch, err := t.watcher.Watch(t.ctx, txID, reporter)
	if err != nil {
		return nil, fmt.Errorf("could not track transaction %s: %w", txID, err)
	}
	tr.watch = watch
	t.tracked[txID] = tr

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		<-watch.Done()
		t.forget(txID, tr)
	}()

	t.log.Info().Hex("tx_id", logging.ID(txID)).Msg("tracking transaction")
	return tr, nil
}

// publish records the event and forwards it to the listeners. Listeners are closed after
// the terminal event.
func (t *Tracker) publish(tr *tracked, event Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tr.finished {
		return
	}

	tr.events = append(tr.events, event)
	for id, ch := range tr.listeners {
		select {
		case ch <- event:
		default:
			t.log.Warn().Hex("tx_id", logging.ID(event.TransactionID)).Uint64("listener", id).Msg("dropping event for slow listener")
		}
	}

	if event.Final() {
		tr.finished = true
		for id, ch := range tr.listeners {
			delete(tr.listeners, id)
			close(ch)
		}
	}
}

// forget removes a transaction once its watch ended.
func (t *Tracker) forget(txID sdk.Identifier, tr *tracked) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if current, ok := t.tracked[txID]; ok && current == tr {
		delete(t.tracked, txID)
	}
	for id, ch := range tr.listeners {
		delete(tr.listeners, id)
		close(ch)
	}
}

// Listen returns the events of a transaction, starting with the ones already published,
// and follows the transaction if it is not tracked yet. The channel is closed after the
// terminal event, when the tracker shuts down, or by the returned function. The returned
// function only releases this listener.
func (t *Tracker) Listen(txID sdk.Identifier) (<-chan Event, func(), error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tr, err := t.trackLocked(txID)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan Event, listenerBuffer)
	for _, event := range tr.events {
		ch <- event
	}
	if tr.finished {
		close(ch)
		return ch, func() {}, nil
	}

	id := tr.nextID
	tr.nextID++
	tr.listeners[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			t.release(txID, tr, id)
		})
	}, nil
}

// release removes a listener. An unpinned transaction left without listeners is no longer
// followed, its watch is canceled.
func (t *Tracker) release(txID sdk.Identifier, tr *tracked, listener uint64) {
	t.mu.Lock()
	if ch, ok := tr.listeners[listener]; ok {
		delete(tr.listeners, listener)
		close(ch)
	}
	drop := !tr.pinned && !tr.finished && len(tr.listeners) == 0
	if drop {
		// a later Track or Listen starts a new watch
		if current, ok := t.tracked[txID]; ok && current == tr {
			delete(t.tracked, txID)
		}
	}
	t.mu.Unlock()

	if !drop {
		return
	}
	// the watch lock is taken by Cancel, it must not be called with the tracker lock held
	tr.watch.Cancel()
	t.log.Info().Hex("tx_id", logging.ID(txID)).Msg("stopped tracking transaction without listeners")
}

// Tracked returns true if the transaction is currently tracked.
func (t *Tracker) Tracked(txID sdk.Identifier) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.tracked[txID]
	return ok
}

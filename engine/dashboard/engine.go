// Package dashboard keeps the DAO views fresh, submits DAO transactions on behalf of the
// configured signer and follows them until they are sealed.
package dashboard

import (
	"context"
	"fmt"

	sdk "github.com/onflow/flow-go-sdk"
	"github.com/rs/zerolog"

	model "github.com/onflow/dao-dashboard/model/dao"
	"github.com/onflow/dao-dashboard/module/component"
	"github.com/onflow/dao-dashboard/module/dao"
	"github.com/onflow/dao-dashboard/utils/logging"
)

// SessionInfo describes the signing identity of the dashboard.
type SessionInfo struct {
	LoggedIn  bool
	Address   sdk.Address
	IsFounder bool
}

// Engine ties the DAO client to the refresher, the tracker and the notifications.
type Engine struct {
	*component.ComponentManager
	log           zerolog.Logger
	client        *dao.Client
	refresher     *Refresher
	tracker       *Tracker
	notifications *Notifications
}

func New(
	log zerolog.Logger,
	client *dao.Client,
	refresher *Refresher,
	tracker *Tracker,
	notifications *Notifications,
) *Engine {
	e := &Engine{
		log:           log.With().Str("engine", "dashboard").Logger(),
		client:        client,
		refresher:     refresher,
		tracker:       tracker,
		notifications: notifications,
	}

	e.ComponentManager = component.NewComponentManagerBuilder().
		AddWorker(component.ChildWorker(refresher)).
		AddWorker(component.ChildWorker(tracker)).
		Build()

	return e
}

// Session returns the signing identity. Founder membership is read from the latest
// snapshot, or queried when no snapshot is available.
func (e *Engine) Session(ctx context.Context) (SessionInfo, error) {
	session := e.client.Session()
	info := SessionInfo{
		LoggedIn: session.LoggedIn(),
		Address:  session.Address(),
	}
	if !info.LoggedIn {
		return info, nil
	}

	if snapshot, err := e.refresher.Snapshot(); err == nil {
		info.IsFounder = model.IsFounder(snapshot.Founders, info.Address)
		return info, nil
	}

	isFounder, err := e.client.IsFounder(ctx, info.Address)
	if err != nil {
		return SessionInfo{}, fmt.Errorf("could not check founder status: %w", err)
	}
	info.IsFounder = isFounder
	return info, nil
}

// Snapshot returns the latest DAO views.
func (e *Engine) Snapshot() (*model.Snapshot, error) {
	return e.refresher.Snapshot()
}

// Updates returns a channel of new snapshots, see Refresher.Updates.
func (e *Engine) Updates() (<-chan *model.Snapshot, func()) {
	return e.refresher.Updates()
}

func (e *Engine) Notifications() []Notification {
	return e.notifications.List()
}

func (e *Engine) DismissNotification(id string) bool {
	return e.notifications.Dismiss(id)
}

func (e *Engine) ProposeTopic(ctx context.Context, req dao.ProposeTopicRequest) (sdk.Identifier, error) {
	return e.submit(func() (sdk.Identifier, error) {
		return e.client.ProposeTopic(ctx, req)
	})
}

func (e *Engine) VoteFounder(ctx context.Context, req dao.VoteFounderRequest) (sdk.Identifier, error) {
	return e.submit(func() (sdk.Identifier, error) {
		return e.client.VoteFounder(ctx, req)
	})
}

func (e *Engine) VoteTopic(ctx context.Context, req dao.VoteTopicRequest) (sdk.Identifier, error) {
	return e.submit(func() (sdk.Identifier, error) {
		return e.client.VoteTopic(ctx, req)
	})
}

// AddTopicOption adds an option. Without an explicit topic the latest snapshot is used to
// reject topics that do not accept new options.
func (e *Engine) AddTopicOption(ctx context.Context, req dao.AddTopicOptionRequest) (sdk.Identifier, error) {
	if req.Topic == nil {
		if snapshot, err := e.refresher.Snapshot(); err == nil {
			if topic, ok := snapshot.Topic(req.TopicID); ok {
				req.Topic = topic
			}
		}
	}
	return e.submit(func() (sdk.Identifier, error) {
		return e.client.AddTopicOption(ctx, req)
	})
}

// submit runs a mutation and tracks the submitted transaction. Submission failures are
// also shown as notifications, validation failures are only returned.
func (e *Engine) submit(mutate func() (sdk.Identifier, error)) (sdk.Identifier, error) {
	txID, err := mutate()
	if err != nil {
		if dao.IsSubmissionError(err) {
			e.notifications.Add(KindError, dao.UserMessage(err), sdk.EmptyID)
		}
		return sdk.EmptyID, err
	}

	if err := e.tracker.Track(txID); err != nil {
		e.log.Error().Err(err).Hex("tx_id", logging.ID(txID)).Msg("could not track submitted transaction")
		e.notifications.Add(KindInfo, "Transaction submitted", txID)
	}
	return txID, nil
}

// Listen returns the events of a transaction, following it if it is not tracked yet.
// The returned function releases the listener, see Tracker.Listen.
func (e *Engine) Listen(txID sdk.Identifier) (<-chan Event, func(), error) {
	return e.tracker.Listen(txID)
}

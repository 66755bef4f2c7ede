// Package rest serves the dashboard over HTTP: the DAO views, the mutations and a
// WebSocket stream of the lifecycle of submitted transactions.
package rest

import (
	"context"

	sdk "github.com/onflow/flow-go-sdk"

	"github.com/onflow/dao-dashboard/engine/dashboard"
	model "github.com/onflow/dao-dashboard/model/dao"
	"github.com/onflow/dao-dashboard/module/dao"
)

// API is the dashboard functionality exposed by the REST server.
type API interface {
	Session(ctx context.Context) (dashboard.SessionInfo, error)
	Snapshot() (*model.Snapshot, error)
	Notifications() []dashboard.Notification
	DismissNotification(id string) bool

	ProposeTopic(ctx context.Context, req dao.ProposeTopicRequest) (sdk.Identifier, error)
	VoteFounder(ctx context.Context, req dao.VoteFounderRequest) (sdk.Identifier, error)
	VoteTopic(ctx context.Context, req dao.VoteTopicRequest) (sdk.Identifier, error)
	AddTopicOption(ctx context.Context, req dao.AddTopicOptionRequest) (sdk.Identifier, error)

	// Listen returns the events of a transaction and a function releasing the listener.
	Listen(txID sdk.Identifier) (<-chan dashboard.Event, func(), error)
}

var _ API = (*dashboard.Engine)(nil)

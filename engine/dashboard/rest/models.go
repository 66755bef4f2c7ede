package rest

import (
	"strconv"
	"time"

	sdk "github.com/onflow/flow-go-sdk"

	"github.com/onflow/dao-dashboard/engine/dashboard"
	model "github.com/onflow/dao-dashboard/model/dao"
)

// Numbers are encoded as strings, the same way the Flow access API encodes them.

type Session struct {
	LoggedIn  bool   `json:"loggedIn"`
	Address   string `json:"address,omitempty"`
	IsFounder bool   `json:"isFounder"`
}

func (s *Session) Build(info dashboard.SessionInfo) {
	s.LoggedIn = info.LoggedIn
	s.IsFounder = info.IsFounder
	if info.LoggedIn {
		s.Address = "0x" + info.Address.Hex()
	}
}

type Founder struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Votes   string `json:"votes"`
}

func (f *Founder) Build(founder model.Founder) {
	f.ID = strconv.FormatUint(founder.ID, 10)
	f.Address = "0x" + founder.Address.Hex()
	f.Votes = strconv.FormatUint(founder.Votes, 10)
}

type FounderVote struct {
	Address string `json:"address"`
	Votes   string `json:"votes"`
}

func (v *FounderVote) Build(vote model.FounderVote) {
	v.Address = "0x" + vote.Address.Hex()
	v.Votes = strconv.FormatUint(vote.Votes, 10)
}

type TopicOption struct {
	Index string `json:"index"`
	Label string `json:"label"`
	Votes string `json:"votes"`
}

type Topic struct {
	ID                    string        `json:"id"`
	Title                 string        `json:"title"`
	Description           string        `json:"description"`
	Proposer              string        `json:"proposer"`
	AllowAnyoneAddOptions bool          `json:"allowAnyoneAddOptions"`
	IsFoundersTopic       bool          `json:"isFoundersTopic"`
	Closed                bool          `json:"closed"`
	Votable               bool          `json:"votable"`
	HasVoted              bool          `json:"hasVoted"`
	Options               []TopicOption `json:"options"`
}

// Build converts a topic. HasVoted is reported for the given address, if any.
func (t *Topic) Build(topic *model.Topic, voter sdk.Address) {
	t.ID = strconv.FormatInt(topic.ID, 10)
	t.Title = topic.Title
	t.Description = topic.Description
	t.Proposer = "0x" + topic.Proposer.Hex()
	t.AllowAnyoneAddOptions = topic.AllowAnyoneAddOptions
	t.IsFoundersTopic = topic.IsFoundersTopic
	t.Closed = topic.Closed
	t.Votable = topic.Votable()
	t.HasVoted = voter != sdk.EmptyAddress && topic.HasVoted(voter)

	options := topic.Options()
	t.Options = make([]TopicOption, len(options))
	for i, option := range options {
		t.Options[i] = TopicOption{
			Index: strconv.FormatUint(option.Index, 10),
			Label: option.Label,
			Votes: strconv.Itoa(option.Votes),
		}
	}
}

type Notification struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	Message       string    `json:"message"`
	TransactionID string    `json:"transactionId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

func (n *Notification) Build(notification dashboard.Notification) {
	n.ID = notification.ID
	n.Kind = string(notification.Kind)
	n.Message = notification.Message
	if notification.TransactionID != sdk.EmptyID {
		n.TransactionID = notification.TransactionID.String()
	}
	n.CreatedAt = notification.CreatedAt
	n.ExpiresAt = notification.ExpiresAt
}

type TransactionEvent struct {
	TransactionID string `json:"transactionId"`
	Kind          string `json:"kind"`
	Status        string `json:"status,omitempty"`
	Message       string `json:"message"`
	Final         bool   `json:"final"`
}

func (e *TransactionEvent) Build(event dashboard.Event) {
	e.TransactionID = event.TransactionID.String()
	e.Kind = string(event.Kind)
	if event.Status != sdk.TransactionStatusUnknown {
		e.Status = event.Status.String()
	}
	e.Message = event.Message
	e.Final = event.Final()
}

type SubmittedTransaction struct {
	TransactionID string `json:"transactionId"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

// Request bodies of the mutations.

type ProposeTopicBody struct {
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	Options               []string `json:"options"`
	AllowAnyoneAddOptions bool     `json:"allowAnyoneAddOptions"`
}

type VoteFounderBody struct {
	Candidates []string `json:"candidates"`
}

type VoteTopicBody struct {
	// Option is the index of the selected option, nil when nothing is selected.
	Option *string `json:"option"`
}

type AddTopicOptionBody struct {
	Option string `json:"option"`
}

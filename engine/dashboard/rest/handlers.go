package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	sdk "github.com/onflow/flow-go-sdk"

	model "github.com/onflow/dao-dashboard/model/dao"
	"github.com/onflow/dao-dashboard/module/dao"
	"github.com/onflow/dao-dashboard/module/txwatch"
)

const messageNoSnapshot = "DAO state is not available yet"

// snapshot returns the latest DAO views, or a service unavailable error until the first
// refresh succeeds.
func snapshot(api API) (*model.Snapshot, error) {
	s, err := api.Snapshot()
	if err != nil {
		return nil, NewRestError(http.StatusServiceUnavailable, messageNoSnapshot, err)
	}
	return s, nil
}

// GetSession returns the signing identity of the dashboard.
func GetSession(r *http.Request, api API) (interface{}, error) {
	info, err := api.Session(r.Context())
	if err != nil {
		return nil, err
	}

	var session Session
	session.Build(info)
	return session, nil
}

// GetFounders returns the founders with their vote counts, ordered by id.
func GetFounders(_ *http.Request, api API) (interface{}, error) {
	s, err := snapshot(api)
	if err != nil {
		return nil, err
	}

	founders := make([]Founder, len(s.Founders))
	for i, f := range s.Founders {
		founders[i].Build(f)
	}
	return founders, nil
}

// GetFounderVotes returns the founder votes ordered by descending count.
func GetFounderVotes(_ *http.Request, api API) (interface{}, error) {
	s, err := snapshot(api)
	if err != nil {
		return nil, err
	}

	votes := make([]FounderVote, len(s.FounderVotes))
	for i, v := range s.FounderVotes {
		votes[i].Build(v)
	}
	return votes, nil
}

func GetUnclaimedFounders(_ *http.Request, api API) (interface{}, error) {
	s, err := snapshot(api)
	if err != nil {
		return nil, err
	}

	addresses := make([]string, len(s.Unclaimed))
	for i, addr := range s.Unclaimed {
		addresses[i] = "0x" + addr.Hex()
	}
	return addresses, nil
}

// GetTopics returns the latest topics. Votes of the signer are flagged on each topic.
func GetTopics(r *http.Request, api API) (interface{}, error) {
	s, err := snapshot(api)
	if err != nil {
		return nil, err
	}

	voter := sdk.EmptyAddress
	if info, err := api.Session(r.Context()); err == nil && info.LoggedIn {
		voter = info.Address
	}

	topics := make([]Topic, len(s.Topics))
	for i := range s.Topics {
		topics[i].Build(&s.Topics[i], voter)
	}
	return topics, nil
}

func GetNotifications(_ *http.Request, api API) (interface{}, error) {
	live := api.Notifications()
	notifications := make([]Notification, len(live))
	for i, n := range live {
		notifications[i].Build(n)
	}
	return notifications, nil
}

// DismissNotification removes a notification and returns the remaining ones.
func DismissNotification(r *http.Request, api API) (interface{}, error) {
	id := mux.Vars(r)["id"]
	if !api.DismissNotification(id) {
		err := fmt.Errorf("notification %s not found", id)
		return nil, NewNotFoundError(err.Error(), err)
	}
	return GetNotifications(r, api)
}

func ProposeTopic(r *http.Request, api API) (interface{}, error) {
	var body ProposeTopicBody
	if err := decodeBody(r, &body); err != nil {
		return nil, err
	}

	txID, err := api.ProposeTopic(r.Context(), dao.ProposeTopicRequest{
		Title:                 body.Title,
		Description:           body.Description,
		Options:               body.Options,
		AllowAnyoneAddOptions: body.AllowAnyoneAddOptions,
	})
	return submitted(txID, err)
}

func VoteFounder(r *http.Request, api API) (interface{}, error) {
	var body VoteFounderBody
	if err := decodeBody(r, &body); err != nil {
		return nil, err
	}

	var req dao.VoteFounderRequest
	if len(body.Candidates) > len(req.Candidates) {
		return nil, NewBadRequestError(fmt.Errorf("at most %d candidates can be voted for", len(req.Candidates)))
	}
	copy(req.Candidates[:], body.Candidates)

	txID, err := api.VoteFounder(r.Context(), req)
	return submitted(txID, err)
}

func VoteTopic(r *http.Request, api API) (interface{}, error) {
	topicID, err := parseTopicID(r)
	if err != nil {
		return nil, err
	}

	var body VoteTopicBody
	if err := decodeBody(r, &body); err != nil {
		return nil, err
	}

	req := dao.VoteTopicRequest{TopicID: topicID}
	if body.Option != nil && strings.TrimSpace(*body.Option) != "" {
		option, err := strconv.ParseUint(strings.TrimSpace(*body.Option), 10, 64)
		if err != nil {
			return nil, NewBadRequestError(fmt.Errorf("invalid option %q", *body.Option))
		}
		req.Option = &option
	}

	txID, err := api.VoteTopic(r.Context(), req)
	return submitted(txID, err)
}

func AddTopicOption(r *http.Request, api API) (interface{}, error) {
	topicID, err := parseTopicID(r)
	if err != nil {
		return nil, err
	}

	var body AddTopicOptionBody
	if err := decodeBody(r, &body); err != nil {
		return nil, err
	}

	txID, err := api.AddTopicOption(r.Context(), dao.AddTopicOptionRequest{
		TopicID: topicID,
		Option:  body.Option,
	})
	return submitted(txID, err)
}

func submitted(txID sdk.Identifier, err error) (interface{}, error) {
	if err != nil {
		return nil, mutationError(err)
	}
	return SubmittedTransaction{TransactionID: txID.String()}, nil
}

func parseTopicID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, NewBadRequestError(fmt.Errorf("invalid topic ID %q", raw))
	}
	return id, nil
}

// parseTransactionID parses a hex encoded transaction ID, with or without 0x prefix.
func parseTransactionID(raw string) (sdk.Identifier, error) {
	id, err := txwatch.ParseTransactionID(raw)
	if err != nil {
		return sdk.EmptyID, NewRestError(http.StatusBadRequest, "invalid ID format", err)
	}
	return id, nil
}

package rest

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdk "github.com/onflow/flow-go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/onflow/dao-dashboard/engine/dashboard"
	mockapi "github.com/onflow/dao-dashboard/engine/dashboard/rest/mock"
	model "github.com/onflow/dao-dashboard/model/dao"
	"github.com/onflow/dao-dashboard/module/dao"
	"github.com/onflow/dao-dashboard/module/irrecoverable"
	"github.com/onflow/dao-dashboard/module/metrics"
	"github.com/onflow/dao-dashboard/utils/unittest"
)

func newTestRouter(api API) http.Handler {
	return NewRouter(api, unittest.Logger(), metrics.NewNoopCollector(), DefaultStreamConfig())
}

func executeRequest(req *http.Request, api API) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	newTestRouter(api).ServeHTTP(rr, req)
	return rr
}

func assertResponse(t *testing.T, req *http.Request, expectedCode int, expectedBody string, api API) {
	rr := executeRequest(req, api)
	actualResponseBody := rr.Body.String()
	require.JSONEq(t,
		expectedBody,
		actualResponseBody,
		"Failed Request: %s\n Expected JSON:\n %s \n Actual JSON:\n %s\n", req.URL, expectedBody, actualResponseBody,
	)
	require.Equal(t, expectedCode, rr.Code, "Status code mismatch: %s", req.URL)
}

func newRequest(t *testing.T, method string, url string, body string) *http.Request {
	var req *http.Request
	var err error
	if body == "" {
		req, err = http.NewRequest(method, url, nil)
	} else {
		req, err = http.NewRequest(method, url, bytes.NewBufferString(body))
	}
	require.NoError(t, err)
	return req
}

func TestGetSession(t *testing.T) {
	api := mockapi.NewAPI(t)
	addr := unittest.AddressFixture()

	t.Run("logged in founder", func(t *testing.T) {
		api.On("Session", mock.Anything).Return(dashboard.SessionInfo{
			LoggedIn:  true,
			Address:   addr,
			IsFounder: true,
		}, nil).Once()

		expected := fmt.Sprintf(`{"loggedIn": true, "address": "%s", "isFounder": true}`, "0x"+addr.Hex())
		assertResponse(t, newRequest(t, http.MethodGet, "/v1/session", ""), http.StatusOK, expected, api)
	})

	t.Run("logged out", func(t *testing.T) {
		api.On("Session", mock.Anything).Return(dashboard.SessionInfo{}, nil).Once()

		expected := `{"loggedIn": false, "isFounder": false}`
		assertResponse(t, newRequest(t, http.MethodGet, "/v1/session", ""), http.StatusOK, expected, api)
	})

	t.Run("founder status unavailable", func(t *testing.T) {
		api.On("Session", mock.Anything).Return(dashboard.SessionInfo{}, fmt.Errorf("access node unavailable")).Once()

		expected := `{"message": "internal server error"}`
		assertResponse(t, newRequest(t, http.MethodGet, "/v1/session", ""), http.StatusInternalServerError, expected, api)
	})
}

func TestGetFounderViews(t *testing.T) {
	first := unittest.AddressFixture()
	second := unittest.AddressFixture()
	unclaimed := unittest.AddressFixture()

	snapshot := &model.Snapshot{
		Founders: []model.Founder{
			{ID: 1, Address: first, Votes: 3},
			{ID: 2, Address: second},
		},
		FounderVotes: []model.FounderVote{{Address: first, Votes: 3}},
		Unclaimed:    []sdk.Address{unclaimed},
		FetchedAt:    time.Now(),
	}

	api := mockapi.NewAPI(t)
	api.On("Snapshot").Return(snapshot, nil)

	t.Run("founders", func(t *testing.T) {
		expected := fmt.Sprintf(`[
			{"id": "1", "address": "%s", "votes": "3"},
			{"id": "2", "address": "%s", "votes": "0"}
		]`, "0x"+first.Hex(), "0x"+second.Hex())
		assertResponse(t, newRequest(t, http.MethodGet, "/v1/founders", ""), http.StatusOK, expected, api)
	})

	t.Run("votes", func(t *testing.T) {
		expected := fmt.Sprintf(`[{"address": "%s", "votes": "3"}]`, "0x"+first.Hex())
		assertResponse(t, newRequest(t, http.MethodGet, "/v1/founders/votes", ""), http.StatusOK, expected, api)
	})

	t.Run("unclaimed", func(t *testing.T) {
		expected := fmt.Sprintf(`["%s"]`, "0x"+unclaimed.Hex())
		assertResponse(t, newRequest(t, http.MethodGet, "/v1/founders/unclaimed", ""), http.StatusOK, expected, api)
	})
}

func TestGetFounders_NoSnapshot(t *testing.T) {
	api := mockapi.NewAPI(t)
	api.On("Snapshot").Return(nil, dashboard.ErrNoSnapshot)

	expected := `{"message": "DAO state is not available yet"}`
	assertResponse(t, newRequest(t, http.MethodGet, "/v1/founders", ""), http.StatusServiceUnavailable, expected, api)
}

func TestGetTopics(t *testing.T) {
	voter := unittest.AddressFixture()
	candidate := unittest.AddressFixture()

	founders := unittest.TopicFixture(unittest.AsFoundersTopic(candidate), unittest.WithVote(0, voter))
	founders.ID = 0
	open := unittest.TopicFixture(unittest.AllowingNewOptions(), unittest.WithVote(1, unittest.AddressFixture()))
	open.ID = 1

	api := mockapi.NewAPI(t)
	api.On("Snapshot").Return(&model.Snapshot{Topics: []model.Topic{founders, open}}, nil)
	api.On("Session", mock.Anything).Return(dashboard.SessionInfo{LoggedIn: true, Address: voter}, nil)

	expected := fmt.Sprintf(`[
		{
			"id": "0",
			"title": "%[1]s",
			"description": "%[2]s",
			"proposer": "%[3]s",
			"allowAnyoneAddOptions": false,
			"isFoundersTopic": true,
			"closed": false,
			"votable": true,
			"hasVoted": true,
			"options": [{"index": "0", "label": "%[4]s", "votes": "1"}]
		},
		{
			"id": "1",
			"title": "%[1]s",
			"description": "%[2]s",
			"proposer": "%[5]s",
			"allowAnyoneAddOptions": true,
			"isFoundersTopic": false,
			"closed": false,
			"votable": true,
			"hasVoted": false,
			"options": [
				{"index": "0", "label": "yes", "votes": "0"},
				{"index": "1", "label": "no", "votes": "1"}
			]
		}
	]`, founders.Title, founders.Description, "0x"+founders.Proposer.Hex(), "0x"+candidate.Hex(), "0x"+open.Proposer.Hex())

	assertResponse(t, newRequest(t, http.MethodGet, "/v1/topics", ""), http.StatusOK, expected, api)
}

func TestNotifications(t *testing.T) {
	txID := unittest.IdentifierFixture()
	created := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	notification := dashboard.Notification{
		ID:            "3f1b4c36-4f0e-4a57-9d8b-0d7f5e3c1a2b",
		Kind:          dashboard.KindSuccess,
		Message:       dashboard.MessageSealed,
		TransactionID: txID,
		CreatedAt:     created,
		ExpiresAt:     created.Add(8 * time.Second),
	}

	api := mockapi.NewAPI(t)

	t.Run("list", func(t *testing.T) {
		api.On("Notifications").Return([]dashboard.Notification{notification}).Once()

		expected := fmt.Sprintf(`[{
			"id": "%s",
			"kind": "success",
			"message": "Transaction sealed successfully",
			"transactionId": "%s",
			"createdAt": "2023-05-01T12:00:00Z",
			"expiresAt": "2023-05-01T12:00:08Z"
		}]`, notification.ID, txID.String())
		assertResponse(t, newRequest(t, http.MethodGet, "/v1/notifications", ""), http.StatusOK, expected, api)
	})

	t.Run("dismiss", func(t *testing.T) {
		api.On("DismissNotification", notification.ID).Return(true).Once()
		api.On("Notifications").Return([]dashboard.Notification{}).Once()

		req := newRequest(t, http.MethodDelete, "/v1/notifications/"+notification.ID, "")
		assertResponse(t, req, http.StatusOK, `[]`, api)
	})

	t.Run("dismiss unknown", func(t *testing.T) {
		api.On("DismissNotification", "unknown").Return(false).Once()

		req := newRequest(t, http.MethodDelete, "/v1/notifications/unknown", "")
		assertResponse(t, req, http.StatusNotFound, `{"message": "notification unknown not found"}`, api)
	})
}

func TestProposeTopic(t *testing.T) {
	txID := unittest.IdentifierFixture()
	api := mockapi.NewAPI(t)

	t.Run("accepted", func(t *testing.T) {
		api.On("ProposeTopic", mock.Anything, dao.ProposeTopicRequest{
			Title:                 "Treasury",
			Description:           "Fund the community grants",
			Options:               []string{"yes", "no"},
			AllowAnyoneAddOptions: true,
		}).Return(txID, nil).Once()

		body := `{"title": "Treasury", "description": "Fund the community grants", "options": ["yes", "no"], "allowAnyoneAddOptions": true}`
		expected := fmt.Sprintf(`{"transactionId": "%s"}`, txID.String())
		assertResponse(t, newRequest(t, http.MethodPost, "/v1/topics", body), http.StatusAccepted, expected, api)
	})

	t.Run("validation error", func(t *testing.T) {
		api.On("ProposeTopic", mock.Anything, mock.Anything).
			Return(sdk.EmptyID, dao.NewValidationError(dao.MessageMissingTitle)).Once()

		body := `{"title": "", "description": "d", "options": ["yes", "no"]}`
		expected := `{"message": "Please enter a title"}`
		assertResponse(t, newRequest(t, http.MethodPost, "/v1/topics", body), http.StatusBadRequest, expected, api)
	})

	t.Run("submission error", func(t *testing.T) {
		api.On("ProposeTopic", mock.Anything, mock.Anything).
			Return(sdk.EmptyID, &dao.SubmissionError{Message: "Only founders can perform this action."}).Once()

		body := `{"title": "t", "description": "d", "options": ["yes", "no"]}`
		expected := `{"message": "Only founders can perform this action."}`
		assertResponse(t, newRequest(t, http.MethodPost, "/v1/topics", body), http.StatusBadGateway, expected, api)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := newRequest(t, http.MethodPost, "/v1/topics", `{"title": "t", "unknown": true}`)
		rr := executeRequest(req, api)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "request body contains an invalid JSON")
	})

	t.Run("empty body", func(t *testing.T) {
		req := newRequest(t, http.MethodPost, "/v1/topics", "")
		assertResponse(t, req, http.StatusBadRequest, `{"message": "request body must not be empty"}`, api)
	})
}

func TestVoteFounder(t *testing.T) {
	txID := unittest.IdentifierFixture()
	api := mockapi.NewAPI(t)

	t.Run("accepted", func(t *testing.T) {
		api.On("VoteFounder", mock.Anything, dao.VoteFounderRequest{
			Candidates: [3]string{"0x01", "0x02", ""},
		}).Return(txID, nil).Once()

		body := `{"candidates": ["0x01", "0x02"]}`
		expected := fmt.Sprintf(`{"transactionId": "%s"}`, txID.String())
		assertResponse(t, newRequest(t, http.MethodPost, "/v1/founders/votes", body), http.StatusAccepted, expected, api)
	})

	t.Run("too many candidates", func(t *testing.T) {
		body := `{"candidates": ["0x01", "0x02", "0x03", "0x04"]}`
		expected := `{"message": "at most 3 candidates can be voted for"}`
		assertResponse(t, newRequest(t, http.MethodPost, "/v1/founders/votes", body), http.StatusBadRequest, expected, api)
	})
}

func TestVoteTopic(t *testing.T) {
	txID := unittest.IdentifierFixture()
	api := mockapi.NewAPI(t)

	t.Run("accepted", func(t *testing.T) {
		api.On("VoteTopic", mock.Anything, mock.MatchedBy(func(req dao.VoteTopicRequest) bool {
			return req.TopicID == 4 && req.Option != nil && *req.Option == 1
		})).Return(txID, nil).Once()

		expected := fmt.Sprintf(`{"transactionId": "%s"}`, txID.String())
		assertResponse(t, newRequest(t, http.MethodPost, "/v1/topics/4/votes", `{"option": "1"}`), http.StatusAccepted, expected, api)
	})

	t.Run("no selection", func(t *testing.T) {
		api.On("VoteTopic", mock.Anything, mock.MatchedBy(func(req dao.VoteTopicRequest) bool {
			return req.TopicID == 4 && req.Option == nil
		})).Return(sdk.EmptyID, dao.NewValidationError(dao.MessageMissingSelection)).Once()

		expected := `{"message": "Please select an option"}`
		assertResponse(t, newRequest(t, http.MethodPost, "/v1/topics/4/votes", `{"option": null}`), http.StatusBadRequest, expected, api)
	})

	t.Run("negative topic", func(t *testing.T) {
		api.On("VoteTopic", mock.Anything, mock.MatchedBy(func(req dao.VoteTopicRequest) bool {
			return req.TopicID == -1
		})).Return(sdk.EmptyID, dao.NewValidationError(dao.MessageTopicNotVotable)).Once()

		expected := `{"message": "This topic cannot be voted on"}`
		assertResponse(t, newRequest(t, http.MethodPost, "/v1/topics/-1/votes", `{"option": "0"}`), http.StatusBadRequest, expected, api)
	})

	t.Run("invalid topic id", func(t *testing.T) {
		expected := `{"message": "invalid topic ID \"abc\""}`
		assertResponse(t, newRequest(t, http.MethodPost, "/v1/topics/abc/votes", `{"option": "0"}`), http.StatusBadRequest, expected, api)
	})

	t.Run("invalid option", func(t *testing.T) {
		expected := `{"message": "invalid option \"first\""}`
		assertResponse(t, newRequest(t, http.MethodPost, "/v1/topics/4/votes", `{"option": "first"}`), http.StatusBadRequest, expected, api)
	})
}

func TestAddTopicOption(t *testing.T) {
	txID := unittest.IdentifierFixture()
	api := mockapi.NewAPI(t)

	api.On("AddTopicOption", mock.Anything, dao.AddTopicOptionRequest{TopicID: 2, Option: "maybe"}).
		Return(txID, nil).Once()

	expected := fmt.Sprintf(`{"transactionId": "%s"}`, txID.String())
	assertResponse(t, newRequest(t, http.MethodPost, "/v1/topics/2/options", `{"option": "maybe"}`), http.StatusAccepted, expected, api)
}

func TestUnknownRoute(t *testing.T) {
	rr := executeRequest(newRequest(t, http.MethodGet, "/v1/unknown", ""), mockapi.NewAPI(t))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_StartAndStop(t *testing.T) {
	api := mockapi.NewAPI(t)
	api.On("Session", mock.Anything).Return(dashboard.SessionInfo{}, nil)

	server := NewServer(api, Config{ListenAddress: "127.0.0.1:0"}, unittest.Logger(), metrics.NewNoopCollector())

	ctx, cancel := irrecoverableContext(t)
	server.Start(ctx)
	unittest.RequireCloseBefore(t, server.Ready(), time.Second, "server not ready")

	req := newRequest(t, http.MethodGet, fmt.Sprintf("http://%s/v1/session", server.Address()), "")
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	cancel()
	unittest.RequireCloseBefore(t, server.Done(), 2*shutdownTimeout, "server did not stop")
}

func irrecoverableContext(t *testing.T) (*irrecoverable.MockSignalerContext, context.CancelFunc) {
	return irrecoverable.NewMockSignalerContextWithCancel(t, context.Background())
}

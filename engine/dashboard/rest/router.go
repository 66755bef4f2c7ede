package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/onflow/dao-dashboard/module"
)

type route struct {
	Name          string
	Method        string
	Pattern       string
	Handler       ApiHandlerFunc
	SuccessStatus int
}

var Routes = []route{{
	Method:  http.MethodGet,
	Pattern: "/session",
	Name:    "getSession",
	Handler: GetSession,
}, {
	Method:  http.MethodGet,
	Pattern: "/founders",
	Name:    "getFounders",
	Handler: GetFounders,
}, {
	Method:  http.MethodGet,
	Pattern: "/founders/votes",
	Name:    "getFounderVotes",
	Handler: GetFounderVotes,
}, {
	Method:  http.MethodGet,
	Pattern: "/founders/unclaimed",
	Name:    "getUnclaimedFounders",
	Handler: GetUnclaimedFounders,
}, {
	Method:  http.MethodGet,
	Pattern: "/topics",
	Name:    "getTopics",
	Handler: GetTopics,
}, {
	Method:  http.MethodGet,
	Pattern: "/notifications",
	Name:    "getNotifications",
	Handler: GetNotifications,
}, {
	Method:  http.MethodDelete,
	Pattern: "/notifications/{id}",
	Name:    "dismissNotification",
	Handler: DismissNotification,
}, {
	Method:        http.MethodPost,
	Pattern:       "/founders/votes",
	Name:          "voteFounder",
	Handler:       VoteFounder,
	SuccessStatus: http.StatusAccepted,
}, {
	Method:        http.MethodPost,
	Pattern:       "/topics",
	Name:          "proposeTopic",
	Handler:       ProposeTopic,
	SuccessStatus: http.StatusAccepted,
}, {
	Method:        http.MethodPost,
	Pattern:       "/topics/{id}/votes",
	Name:          "voteTopic",
	Handler:       VoteTopic,
	SuccessStatus: http.StatusAccepted,
}, {
	Method:        http.MethodPost,
	Pattern:       "/topics/{id}/options",
	Name:          "addTopicOption",
	Handler:       AddTopicOption,
	SuccessStatus: http.StatusAccepted,
}}

// NewRouter returns the versioned router of the dashboard API, including the transaction stream.
func NewRouter(api API, logger zerolog.Logger, restCollector module.RestMetrics, streamConfig StreamConfig) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	v1SubRouter := router.PathPrefix("/v1").Subrouter()

	// common middleware for all request
	v1SubRouter.Use(LoggingMiddleware(logger))
	v1SubRouter.Use(MetricsMiddleware(restCollector))

	for _, r := range Routes {
		h := NewHandler(logger, api, r.Handler, r.SuccessStatus)
		v1SubRouter.
			Methods(r.Method).
			Path(r.Pattern).
			Name(r.Name).
			Handler(h)
	}

	v1SubRouter.
		Methods(http.MethodGet).
		Path("/transactions/{id}/stream").
		Name("streamTransaction").
		Handler(NewStreamHandler(logger, api, streamConfig))

	return router
}

package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

const maxRequestSize = 1 << 20 // 1MB

// ApiHandlerFunc is a function that contains endpoint handling logic,
// it fetches necessary resources and returns an error or response model.
type ApiHandlerFunc func(r *http.Request, api API) (interface{}, error)

// Handler is custom http handler implementing custom handler function.
// Handler function allows easier handling of errors and responses as it
// wraps functionality for handling error and responses outside of endpoint handling.
type Handler struct {
	logger         zerolog.Logger
	api            API
	apiHandlerFunc ApiHandlerFunc
	successStatus  int
}

func NewHandler(logger zerolog.Logger, api API, handlerFunc ApiHandlerFunc, successStatus int) *Handler {
	if successStatus == 0 {
		successStatus = http.StatusOK
	}
	return &Handler{
		logger:         logger,
		api:            api,
		apiHandlerFunc: handlerFunc,
		successStatus:  successStatus,
	}
}

// ServerHTTP function acts as a wrapper to each request providing common handling functionality
// such as logging, error handling, request decorators
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// create a logger
	errLog := h.logger.With().Str("request_url", r.URL.String()).Logger()

	response, err := h.apiHandlerFunc(r, h.api)
	if err != nil {
		h.errorHandler(w, err, errLog)
		return
	}

	h.jsonResponse(w, h.successStatus, response, errLog)
}

func (h *Handler) errorHandler(w http.ResponseWriter, err error, errorLogger zerolog.Logger) {
	// rest status type error should be returned with status and user message provided
	var statusErr StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Status() >= http.StatusInternalServerError {
			errorLogger.Warn().Err(err).Msg("request failed")
		}
		h.errorResponse(w, statusErr.Status(), statusErr.UserMessage(), errorLogger)
		return
	}

	// stop going further - catch all error
	msg := "internal server error"
	errorLogger.Error().Err(err).Msg(msg)
	h.errorResponse(w, http.StatusInternalServerError, msg, errorLogger)
}

// jsonResponse builds a JSON response and send it to the client
func (h *Handler) jsonResponse(w http.ResponseWriter, code int, response interface{}, errLogger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")

	encodedResponse, err := json.Marshal(response)
	if err != nil {
		errLogger.Error().Err(err).Str("response", fmt.Sprintf("%v", response)).Msg("failed to encode response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)
	_, err = w.Write(encodedResponse)
	if err != nil {
		errLogger.Error().Err(err).Msg("failed to write http response")
	}
}

// errorResponse sends an HTTP error response to the client with the given return code
// and a model error with the given response message in the response body
func (h *Handler) errorResponse(w http.ResponseWriter, returnCode int, responseMessage string, logger zerolog.Logger) {
	h.jsonResponse(w, returnCode, ErrorResponse{Message: responseMessage}, logger)
}

// decodeBody reads a JSON request body into the given model. Unknown fields are rejected.
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return NewBadRequestError(errors.New("request body must not be empty"))
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestSize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return NewBadRequestError(errors.New("request body must not be empty"))
		}
		return NewBadRequestError(fmt.Errorf("request body contains an invalid JSON: %w", err))
	}
	return nil
}

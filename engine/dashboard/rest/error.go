package rest

import (
	"net/http"

	"github.com/onflow/dao-dashboard/module/dao"
)

// StatusError provides custom error with http status.
type StatusError interface {
	error                // this is the actual error that occurred
	Status() int         // the HTTP status code to return
	UserMessage() string // the error message to return to the client
}

// NewRestError creates an error returned to user with provided status
// user displayed message and internal error
func NewRestError(status int, msg string, err error) *Error {
	return &Error{
		status:      status,
		userMessage: msg,
		err:         err,
	}
}

// NewNotFoundError creates a new not found rest error.
func NewNotFoundError(msg string, err error) *Error {
	return NewRestError(http.StatusNotFound, msg, err)
}

// NewBadRequestError creates a new bad request rest error.
func NewBadRequestError(err error) *Error {
	return NewRestError(http.StatusBadRequest, err.Error(), err)
}

// mutationError maps the errors of a DAO mutation: rejected input is the caller's fault,
// a failed submission is the access node's.
func mutationError(err error) error {
	switch {
	case dao.IsValidationError(err):
		return NewRestError(http.StatusBadRequest, dao.UserMessage(err), err)
	case dao.IsSubmissionError(err):
		return NewRestError(http.StatusBadGateway, dao.UserMessage(err), err)
	default:
		return err
	}
}

// Error is implementation of status error.
type Error struct {
	status      int
	userMessage string
	err         error
}

func (e *Error) UserMessage() string {
	return e.userMessage
}

// Status returns error http status code.
func (e *Error) Status() int {
	return e.status
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

package dao

import (
	"errors"
	"fmt"

	"github.com/onflow/dao-dashboard/module/scripts"
	"github.com/onflow/dao-dashboard/module/txerrors"
)

const (
	MessageNotLoggedIn        = "Please connect your wallet first"
	MessageMissingTitle       = "Please enter a title"
	MessageMissingDescription = "Please enter a description"
	MessageTooFewOptions      = "Please provide at least 2 options"
	MessageMissingFounders    = "Please provide all three addresses"
	MessageInvalidAddress     = "Invalid address: "
	MessageTopicNotVotable    = "This topic cannot be voted on"
	MessageMissingSelection   = "Please select an option"
	MessageMissingOption      = "Please enter an option"
	MessageOptionsNotAllowed  = "This topic does not allow adding options"
)

// ErrNotLoggedIn is returned by mutations when no signer is configured.
var ErrNotLoggedIn = errors.New("no signer configured")

// ValidationError is returned when a mutation is rejected locally, before any network call.
type ValidationError struct {
	Message string
	err     error
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// SubmissionError is returned when a transaction could not be built, signed or sent.
// Message is fit to be shown to the user.
type SubmissionError struct {
	Transaction scripts.Name
	Message     string
	err         error
}

func newSubmissionError(name scripts.Name, err error) *SubmissionError {
	return &SubmissionError{
		Transaction: name,
		Message:     txerrors.HumanizeError(err),
		err:         err,
	}
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("could not submit %s transaction: %v", e.Transaction, e.err)
}

func (e *SubmissionError) Unwrap() error {
	return e.err
}

func IsSubmissionError(err error) bool {
	var submissionErr *SubmissionError
	return errors.As(err, &submissionErr)
}

// UserMessage returns the message to show to a user for an error returned by a mutation.
func UserMessage(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	var submissionErr *SubmissionError
	if errors.As(err, &submissionErr) {
		return submissionErr.Message
	}
	return txerrors.HumanizeError(err)
}

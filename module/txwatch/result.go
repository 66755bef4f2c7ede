package txwatch

import (
	sdk "github.com/onflow/flow-go-sdk"
)

// Result is the terminal resolution of a transaction.
type Result struct {
	TransactionID sdk.Identifier
	Status        sdk.TransactionStatus
	// StatusCode is 0 for successful transactions.
	StatusCode   uint
	ErrorMessage string
}

// NewResult converts a transaction result returned by the access API.
// The access API does not expose the numeric error code, a non-nil error yields status code 1.
func NewResult(txID sdk.Identifier, result *sdk.TransactionResult) *Result {
	r := &Result{
		TransactionID: txID,
		Status:        result.Status,
	}
	if result.Error != nil {
		r.StatusCode = 1
		r.ErrorMessage = result.Error.Error()
	}
	return r
}

// Expired returns true if the transaction expired before being sealed.
func (r *Result) Expired() bool {
	return r.Status == sdk.TransactionStatusExpired
}

func (r *Result) Succeeded() bool {
	return r.StatusCode == 0 && !r.Expired()
}

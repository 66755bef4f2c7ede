// Package txwatch follows submitted transactions through their lifecycle and reports
// exactly one terminal outcome per transaction.
package txwatch

import (
	"fmt"
	"strings"

	sdk "github.com/onflow/flow-go-sdk"
)

const (
	MessagePending    = "Transaction pending..."
	MessageFinalized  = "Transaction finalized..."
	MessageExecuted   = "Transaction executed..."
	MessageSealed     = "Transaction sealed, verifying..."
	MessageProcessing = "Processing transaction..."
)

// lifecycle is the ordered progression of statuses reported to a Reporter.
var lifecycle = []sdk.TransactionStatus{
	sdk.TransactionStatusPending,
	sdk.TransactionStatusFinalized,
	sdk.TransactionStatusExecuted,
	sdk.TransactionStatusSealed,
}

// StatusMessage returns the display string for a status.
func StatusMessage(status sdk.TransactionStatus) string {
	switch status {
	case sdk.TransactionStatusPending:
		return MessagePending
	case sdk.TransactionStatusFinalized:
		return MessageFinalized
	case sdk.TransactionStatusExecuted:
		return MessageExecuted
	case sdk.TransactionStatusSealed:
		return MessageSealed
	default:
		return MessageProcessing
	}
}

func inLifecycle(status sdk.TransactionStatus) bool {
	for _, s := range lifecycle {
		if s == status {
			return true
		}
	}
	return false
}

// IsFinal returns true for statuses after which a transaction no longer changes.
func IsFinal(status sdk.TransactionStatus) bool {
	return status == sdk.TransactionStatusSealed || status == sdk.TransactionStatusExpired
}

// ParseTransactionID parses a hex encoded transaction ID, with or without 0x prefix.
func ParseTransactionID(raw string) (sdk.Identifier, error) {
	hex := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "0x"))
	if len(hex) != 2*len(sdk.EmptyID) {
		return sdk.EmptyID, fmt.Errorf("invalid transaction ID %q: expected %d hex characters", raw, 2*len(sdk.EmptyID))
	}

	id := sdk.HexToID(hex)
	if id.String() != hex {
		return sdk.EmptyID, fmt.Errorf("invalid transaction ID %q: not hex encoded", raw)
	}
	return id, nil
}

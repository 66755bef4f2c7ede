package metrics

const (
	LabelScript      = "script"
	LabelTransaction = "transaction"
	LabelResult      = "result"
	LabelOutcome     = "outcome"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

const (
	OutcomeSealed   = "sealed"
	OutcomeFailed   = "failed"
	OutcomeCanceled = "canceled"
)

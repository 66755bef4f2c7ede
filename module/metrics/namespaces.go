package metrics

// Prometheus metric namespaces
const (
	namespaceDAO  = "dao"
	namespaceRest = "dao_rest"
)

// DAO subsystems
const (
	subsystemScripts      = "scripts"
	subsystemTransactions = "transactions"
	subsystemSnapshot     = "snapshot"
)

package metrics

import (
	grpcprometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
)

// NewAccessClientMetrics registers the gRPC client metrics of the access node connection.
// Its interceptors are passed to access.NewClient.
func NewAccessClientMetrics(registerer prometheus.Registerer) (*grpcprometheus.ClientMetrics, error) {
	clientMetrics := grpcprometheus.NewClientMetrics()
	clientMetrics.EnableClientHandlingTimeHistogram()
	if err := registerer.Register(clientMetrics); err != nil {
		return nil, err
	}
	return clientMetrics, nil
}

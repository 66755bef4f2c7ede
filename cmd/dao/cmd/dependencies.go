package cmd

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/onflow/dao-dashboard/config"
	"github.com/onflow/dao-dashboard/module/access"
	"github.com/onflow/dao-dashboard/module/dao"
	"github.com/onflow/dao-dashboard/module/metrics"
	"github.com/onflow/dao-dashboard/module/scripts"
	"github.com/onflow/dao-dashboard/module/txwatch"
)

// dependencies are the components shared by all commands.
type dependencies struct {
	env        scripts.Environment
	access     access.Client
	registry   *prometheus.Registry
	metrics    *metrics.DashboardCollector
	client     *dao.Client
	subscriber *txwatch.PollingSubscriber
	watcher    *txwatch.Watcher
}

func newDependencies(log zerolog.Logger, cfg config.Config) (*dependencies, error) {
	env, err := cfg.Environment()
	if err != nil {
		return nil, err
	}

	registry, err := scripts.NewRegistry(env)
	if err != nil {
		return nil, fmt.Errorf("could not load scripts: %w", err)
	}

	session, err := dao.NewSession(cfg.Signer(), env.ChainID)
	if err != nil {
		return nil, fmt.Errorf("invalid signer: %w", err)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector, err := metrics.NewDashboardCollector(promRegistry)
	if err != nil {
		return nil, fmt.Errorf("could not register metrics: %w", err)
	}

	grpcMetrics, err := metrics.NewAccessClientMetrics(promRegistry)
	if err != nil {
		return nil, fmt.Errorf("could not register access client metrics: %w", err)
	}

	grpcClient, err := access.NewClient(env.AccessAddress, cfg.GRPCMaxMsgSize, grpcMetrics.UnaryClientInterceptor())
	if err != nil {
		return nil, err
	}
	accessClient := access.NewBreakerClient(log, grpcClient, cfg.CircuitBreaker())

	subscriber := txwatch.NewPollingSubscriber(log, accessClient, cfg.PollInterval)

	log.Debug().
		Str("network", env.Network).
		Str("access_address", env.AccessAddress).
		Str("dao_address", "0x"+env.DAOAddress.Hex()).
		Bool("logged_in", session.LoggedIn()).
		Msg("dependencies initialized")

	return &dependencies{
		env:        env,
		access:     accessClient,
		registry:   promRegistry,
		metrics:    collector,
		client:     dao.NewClient(log, accessClient, registry, session, collector, cfg.ComputeLimit),
		subscriber: subscriber,
		watcher:    txwatch.NewWatcher(log, subscriber, collector, cfg.SealTimeout),
	}, nil
}

func (d *dependencies) Close() {
	if err := d.access.Close(); err != nil {
		log.Warn().Err(err).Msg("could not close access client")
	}
}

// withDependencies runs a command body with the shared components.
func withDependencies(run func(d *dependencies) error) error {
	d, err := newDependencies(log, cfg)
	if err != nil {
		return err
	}
	defer d.Close()
	return run(d)
}

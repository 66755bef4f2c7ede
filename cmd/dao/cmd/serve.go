package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/onflow/dao-dashboard/engine/dashboard"
	"github.com/onflow/dao-dashboard/engine/dashboard/rest"
	"github.com/onflow/dao-dashboard/module/component"
	"github.com/onflow/dao-dashboard/module/irrecoverable"
	"github.com/onflow/dao-dashboard/module/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API, refreshing the DAO state and tracking submitted transactions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDependencies(func(d *dependencies) error {
			err := component.RunComponent(cmd.Context(), func() (component.Component, error) {
				return newDashboard(d), nil
			}, func(err error) component.ErrorHandlingResult {
				log.Error().Err(err).Msg("dashboard failed")
				return component.ErrorHandlingStop
			})
			if errors.Is(err, context.Canceled) {
				log.Info().Msg("dashboard stopped")
				return nil
			}
			return err
		})
	},
}

// newDashboard assembles the engine, the REST server and the metrics server.
func newDashboard(d *dependencies) component.Component {
	notifications := dashboard.NewNotifications(cfg.NotificationTTL)
	refresher := dashboard.NewRefresher(log, d.client, d.metrics, cfg.RefreshInterval)
	tracker := dashboard.NewTracker(log, d.watcher, notifications, refresher)
	engine := dashboard.New(log, d.client, refresher, tracker, notifications)

	server := rest.NewServer(engine, rest.Config{
		ListenAddress: cfg.ListenAddress,
		Stream:        rest.DefaultStreamConfig(),
	}, log, d.metrics)

	builder := component.NewComponentManagerBuilder().
		AddWorker(component.ChildWorker(engine)).
		AddWorker(component.ChildWorker(server))

	if cfg.MetricsPort > 0 {
		builder.AddWorker(serveMetrics(metrics.NewServer(log, cfg.MetricsPort, d.registry)))
	}

	return builder.Build()
}

func serveMetrics(server *metrics.Server) component.ComponentWorker {
	return func(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
		<-server.Ready()
		ready()
		<-ctx.Done()
		<-server.Done()
	}
}

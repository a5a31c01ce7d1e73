package cmd

import (
	"context"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/benedict-erwin/store-console/config"
	"github.com/benedict-erwin/store-console/http/v1/handler"
	"github.com/benedict-erwin/store-console/internal/services/health"
	"github.com/benedict-erwin/store-console/pkg/logger"
	"github.com/benedict-erwin/store-console/pkg/metrics"
	"github.com/benedict-erwin/store-console/pkg/token"
	"github.com/benedict-erwin/store-console/server"
)

// serveListener is the socket handed over by overseer, nil in dev mode
var serveListener net.Listener

// SetListener lets main pass the overseer listener to the serve command
func SetListener(l net.Listener) {
	serveListener = l
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP Server",
	Long:  `Starts the dashboard backend. Runs under overseer for zero-downtime restarts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runServer(); err != nil {
			logger.WithScope("serveCmd").Error().Err(err).Msg("Failed to start server")
			return err
		}
		return nil
	},
}

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Start HTTP Server without overseer",
	Long:  `Starts the dashboard backend in the foreground, for hot reload during development`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runServer(); err != nil {
			logger.WithScope("devCmd").Error().Err(err).Msg("Failed to start server")
			return err
		}
		return nil
	},
}

// runServer wires metrics, health probes and the request-scoped API client into echo
func runServer() error {
	cfg := config.Get()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	s, err := openSession(collector.Hooks())
	if err != nil {
		return err
	}

	e := server.New(handler.Dependencies{
		Store:    s.svc,
		Health:   health.NewChecker(cfg.App.Version, probes(cfg, s)),
		Codec:    token.NewCodec(0, nil),
		PageSize: cfg.Server.PageSize,
	}, reg)
	if serveListener != nil {
		e.Listener = serveListener
	}

	return server.Start(e, cfg.App.Port, s.Close)
}

// probes checks the store API and, for the redis driver, the token store
func probes(cfg *config.Config, s *session) map[string]health.Probe {
	p := map[string]health.Probe{
		"store_api": health.UpstreamProbe(&http.Client{Timeout: cfg.API.Timeout}, s.client.BaseURL()),
	}
	if hc, ok := s.tokens.(interface{ Health() error }); ok {
		p["token_store"] = func(context.Context) error { return hc.Health() }
	}
	return p
}

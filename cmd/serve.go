package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrE-Fog/webteam-hubot/internal/config"
	"github.com/MrE-Fog/webteam-hubot/internal/explain"
	"github.com/MrE-Fog/webteam-hubot/internal/instrumentation"
	"github.com/MrE-Fog/webteam-hubot/internal/logging"
	"github.com/MrE-Fog/webteam-hubot/internal/server"
	"github.com/MrE-Fog/webteam-hubot/internal/sheets"
)

func newServeCmd() *cobra.Command {
	var (
		debugMode      bool
		httpAddr       string
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the slash-command webhook server",
		Long: `Start the HTTP server handling the Mattermost slash-command webhooks
for /meet and /explain.

Required configuration (environment, or a local .env file):
  HUBOT_SPREADSHEET_ID       ID of the team glossary spreadsheet
  HUBOT_GOOGLE_CLIENT_EMAIL  service-account email with read access
  HUBOT_GOOGLE_PRIVATE_KEY   service-account private key (PEM)
  HUBOT_MEET_TOKEN           shared secret of the /meet slash command
  HUBOT_EXPLAIN_TOKEN        shared secret of the /explain slash command

Optional:
  HUBOT_PROXY_URL            HTTP proxy for outbound Google API calls

Prometheus metrics are served on a dedicated port (default :9090) so
operational data never shares a listener with webhook traffic.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(debugMode)

			// Env fallbacks for flags that were not set explicitly.
			if !cmd.Flags().Changed("http-addr") {
				if addr := os.Getenv("HTTP_ADDR"); addr != "" {
					httpAddr = addr
				}
			}
			if !cmd.Flags().Changed("metrics-enabled") {
				if v := os.Getenv("METRICS_ENABLED"); v != "" {
					if parsed, err := strconv.ParseBool(v); err == nil {
						metricsEnabled = parsed
					}
				}
			}
			if !cmd.Flags().Changed("metrics-addr") {
				if addr := os.Getenv("METRICS_ADDR"); addr != "" {
					metricsAddr = addr
				}
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			shutdownCtx, cancel := signal.NotifyContext(context.Background(),
				os.Interrupt, syscall.SIGTERM)
			defer cancel()

			// Instrumentation provider (metrics + tracing)
			instrConfig := instrumentation.DefaultConfig()
			instrConfig.ServiceVersion = version
			if err := instrConfig.Validate(); err != nil {
				return fmt.Errorf("invalid instrumentation configuration: %w", err)
			}

			provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
			if err != nil {
				return fmt.Errorf("failed to create instrumentation provider: %w", err)
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := provider.Shutdown(ctx); err != nil {
					slog.Error("failed to shutdown instrumentation provider", logging.Err(err))
				}
			}()

			sheetsClient, err := sheets.NewClient(shutdownCtx, cfg, provider.Metrics())
			if err != nil {
				return fmt.Errorf("failed to create Sheets client: %w", err)
			}

			explainer := explain.NewService(sheetsClient, slog.Default())

			srv := server.New(cfg, explainer, slog.Default(), provider.Metrics())
			srv.SetAddr(httpAddr)

			// Dedicated metrics server
			var metricsServer *server.MetricsServer
			if metricsEnabled && provider.Enabled() {
				metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
					Addr:                    metricsAddr,
					Enabled:                 metricsEnabled,
					InstrumentationProvider: provider,
				})
				if err != nil {
					return fmt.Errorf("failed to create metrics server: %w", err)
				}

				go func() {
					if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						slog.Error("metrics server failed", logging.Err(err))
					}
				}()
			}

			serverErr := make(chan error, 1)
			go func() {
				serverErr <- srv.Start()
			}()

			select {
			case err := <-serverErr:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("webhook server failed: %w", err)
				}
			case <-shutdownCtx.Done():
				slog.Info("shutdown signal received")
			}

			ctx, cancelShutdown := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
			defer cancelShutdown()

			if metricsServer != nil {
				if err := metricsServer.Shutdown(ctx); err != nil {
					slog.Error("failed to shutdown metrics server", logging.Err(err))
				}
			}
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("failed to shutdown webhook server: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&httpAddr, "http-addr", server.DefaultAddr, "Webhook server address. Can also use HTTP_ADDR env var.")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

// setupLogging configures the default slog logger.
func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinicaflow/console/internal/config"
	"github.com/clinicaflow/console/internal/platform/poller"
	"github.com/clinicaflow/console/internal/platform/telemetry"
	"github.com/clinicaflow/console/internal/platform/websocket"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "clinic-console",
		Short:        "Clinic front-desk console and BFF",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("token", os.Getenv("CLINIC_TOKEN"), "Bearer token for one-shot commands")

	root.AddCommand(serveCmd())
	root.AddCommand(loginCmd())
	root.AddCommand(queueCmd())
	root.AddCommand(historyCmd())
	root.AddCommand(patientsCmd())
	root.AddCommand(staffCmd())
	return root
}

func newLogger(env, level string, out io.Writer) zerolog.Logger {
	logger := zerolog.New(out).With().Timestamp().Logger()
	if env == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Logger()
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return logger.Level(lvl)
}

// loadConfig reads and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the console BFF server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	logger := newLogger(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"), os.Stdout)

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	logger = newLogger(cfg.Env, cfg.LogLevel, os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing := telemetry.Setup(ctx, telemetry.TracingConfig{
		ServiceName: "clinic-console",
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
	}, logger)

	a := newApp(cfg, logger, nil)
	defer a.close()

	hub := websocket.NewHub(logger)
	a.board.PublishTo(hub, logger)
	e := a.server(hub)

	// The queue screen stays live; other pages refresh on demand.
	if err := a.board.Mount(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial queue load failed")
	}
	go poller.New("queue", cfg.PollInterval(), a.board.Refresh, logger).Run(ctx)

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("backend", cfg.APIBaseURL).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("tracer shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

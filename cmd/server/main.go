package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jt828/hello-metrics/internal/bootstrap"
	"github.com/jt828/hello-metrics/internal/config"
	"github.com/jt828/hello-metrics/internal/controller"
	"github.com/jt828/hello-metrics/internal/interceptor"
	"github.com/jt828/hello-metrics/internal/router"
	"github.com/jt828/hello-metrics/internal/service"
	"github.com/jt828/hello-metrics/pkg/observability"
	"github.com/jt828/hello-metrics/pkg/observability/implementation"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := &cobra.Command{
		Use:          "hello-metrics",
		Short:        "Greeting service with Prometheus metrics and an Alertmanager webhook",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return run(cmd.Context(), cfg)
		},
	}
	rootCmd.Flags().Int("port", config.DefaultPort, "port to listen on (overrides PORT)")
	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	obs, err := implementation.NewObservability(ctx, implementation.Config{
		ServiceName:       cfg.OTel.ServiceName,
		LogLevel:          cfg.Log.Level,
		OTLPEndpoint:      cfg.OTel.Endpoint,
		RuntimeCollectors: cfg.Metrics.RuntimeCollectors,
	})
	if err != nil {
		return fmt.Errorf("initializing observability: %w", err)
	}
	log := obs.Logger()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := obs.Close(shutdownCtx); err != nil {
			log.Error("failed to close observability", observability.Err(err))
		}
	}()

	metrics, err := bootstrap.InitializeMetrics(obs.Meter())
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	idGen, err := bootstrap.InitializeSnowflake()
	if err != nil {
		return fmt.Errorf("initializing snowflake: %w", err)
	}

	greetingSvc := service.NewGreetingService(service.GreetingDelay)
	alertSvc := service.NewAlertService(
		metrics.NotificationsTotal,
		implementation.NewZapEventLogger(os.Stdout),
		log,
	)

	handler := router.New(
		router.Dependencies{
			Log:    log,
			Tracer: obs.Tracer(),
			RequestMetrics: interceptor.RequestMetrics{
				Requests: metrics.RequestsTotal,
				Duration: metrics.RequestDuration,
			},
			RequestIDs: idGen,
		},
		router.Controllers{
			Hello:   controller.NewHelloController(greetingSvc),
			Metrics: controller.NewMetricsController(obs.Meter()),
			Alert:   controller.NewAlertController(alertSvc, log, cfg.Alert.MaxBodyBytes),
		},
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server running", observability.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("serving HTTP: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("HTTP server stopped")

	return <-errCh
}

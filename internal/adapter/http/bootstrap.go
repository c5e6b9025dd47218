package http

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"tasknotes/internal/adapter/http/routes"
	adaptertelemetry "tasknotes/internal/adapter/telemetry"
	"tasknotes/internal/core/port"
	"tasknotes/internal/core/telemetry"
	"tasknotes/pkg/config"
	"tasknotes/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// StartServerWithConfig runs the API until SIGINT or SIGTERM and then drains
// in-flight requests.
func StartServerWithConfig(cfg *config.AppConfig, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var (
		metrics *telemetry.AppMetrics
		probe   port.Telemetry
	)

	if cfg.Telemetry.Enabled {
		telemetryContainer, err := adaptertelemetry.NewContainer(ctx, adaptertelemetry.Config{
			ServiceName:    log.ServiceName,
			ServiceVersion: "1.0.0",
			Environment:    cfg.Environment,
			MetricsPort:    cfg.Telemetry.MetricsPort,
			OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		}, log.Logger.Logger)

		if err != nil {
			return err
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := telemetryContainer.Shutdown(shutdownCtx); err != nil {
				log.Warn("Telemetry shutdown failed", zap.Error(err))
			}
		}()

		metrics = telemetryContainer.AppMetrics
		probe = telemetryContainer.NewTelemetryProbe(log.Logger.Logger)
	}

	container, err := NewContainer(ctx, cfg, log, probe)

	if err != nil {
		return err
	}

	defer container.Close()

	router := routes.SetupRouterWithConfig(container.Handlers(), metrics, log, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("database", cfg.Database.Driver),
		zap.String("cache", cfg.Cache.Driver),
		zap.Bool("https_enforced", cfg.EnforceHTTPS),
		zap.Bool("telemetry", cfg.Telemetry.Enabled))

	errCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"log"

	"go.uber.org/zap"

	server "tasknotes/internal/adapter/http"
	"tasknotes/pkg/config"
	"tasknotes/pkg/logger"
)

func main() {
	cfg, err := config.Load()

	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	appLogger, err := logger.New("tasknotes", cfg.LogLevel, !cfg.IsProduction())

	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}

	defer appLogger.Sync()

	if err := server.StartServerWithConfig(cfg, appLogger); err != nil {
		appLogger.Fatal("Server stopped", zap.Error(err))
	}

	appLogger.Info("Shut down gracefully")
}

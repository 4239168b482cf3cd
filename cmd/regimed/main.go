package main

import (
	"cmp"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pivotlab/regime-core/internal/logger"
	"github.com/pivotlab/regime-core/internal/postgres"
	"github.com/pivotlab/regime-core/internal/regime"
	"github.com/pivotlab/regime-core/internal/server"
)

func main() {
	zapLogger, loggerSync, err := logger.NewZapLogger(logger.ParseLevel(os.Getenv("LOG_LEVEL")))
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}
	defer loggerSync()

	if err := godotenv.Load(); err != nil {
		zapLogger.Warnf("can't detect .env file")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pgConfig := postgres.NewConfigFromEnv().Setup()
	db, err := postgres.NewDB(pgConfig)
	if err != nil {
		zapLogger.Fatalf("%s: can't connect to db", err)
	}

	store := regime.NewStore(db, zapLogger)
	handler := server.NewRegimeHandler(store, zapLogger)

	port := cmp.Or(os.Getenv("HTTP_PORT"), "8080")
	httpServer := server.NewHTTPServer(ctx, port, handler.Routes(), zapLogger)

	if err := httpServer.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zapLogger.Fatalf("%s: http server stopped", err)
	}
	zapLogger.Infof("shutdown complete")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/PratikDhanave/car-inventory-bot/internal/app"
	"github.com/PratikDhanave/car-inventory-bot/internal/config"
	"github.com/PratikDhanave/car-inventory-bot/internal/logging"
)

// main boots the service: config → logger → store → clients → HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; zap's example logger keeps the line structured.
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		zap.NewExample().Fatal("build logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("start service", zap.Error(err))
	}
	defer func() { _ = svc.Close() }()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           svc.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown", zap.Error(err))
		return
	}
	log.Info("server stopped")
}

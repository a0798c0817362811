package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dharmasatrya/flightfinder/internal/app"
	"github.com/dharmasatrya/flightfinder/internal/config"
	"github.com/dharmasatrya/flightfinder/internal/handler"
	"github.com/dharmasatrya/flightfinder/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger(cfg.Debug)
	defer log.Sync()

	log.Info("Starting flight search server", "port", cfg.Port, "provider", cfg.AmadeusBaseURL)

	ctx := context.Background()
	application, err := app.New(ctx, cfg, prometheus.DefaultRegisterer, log)
	if err != nil {
		log.Fatal("Failed to initialize application", "error", err)
	}

	searchHandler := handler.NewSearchHandler(application.Service, log)
	e := handler.NewRouter(searchHandler, promhttp.Handler(), log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	application.Close(shutdownCtx)

	log.Info("Server exited")
}

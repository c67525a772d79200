// @title HerpTracker API
// @version 1.0
// @description Registro de cuidados de reptiles: alimentación, mudas, mediciones, defecaciones, reproducción y limpiezas.
// @BasePath /
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"herptracker/internal/config"
	"herptracker/internal/platform/logger"
)

func main() {
	envFile := flag.String("env", "", "archivo .env (opcional)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	if s, ok := log.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := newApp(ctx, cfg, log)
	if err != nil {
		log.Error("app: init failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	srv := application.server
	log.Info("http: listening", map[string]any{"addr": srv.Addr})

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		log.Info("app: shutdown signal received", nil)
	case err := <-serverErrCh:
		if err != nil {
			log.Error("http: server failed", map[string]any{"addr": srv.Addr, "error": err.Error()})
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", map[string]any{"error": err.Error()})
		exitCode = 1
	}
	if err := application.Close(); err != nil {
		log.Error("app: close failed", map[string]any{"error": err.Error()})
		exitCode = 1
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
	log.Info("app: stopped", nil)
}

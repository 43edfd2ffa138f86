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

	"parts-matching-client/internal/adapters/backend"
	"parts-matching-client/internal/adapters/transport"
	"parts-matching-client/internal/api"
	"parts-matching-client/internal/config"
	"parts-matching-client/internal/platform/obs"
)

// main is the view server's composition root. It holds no session of its
// own: every backend call carries the caller's bearer token.
func main() {
	verbose := config.Get("LOG_VERBOSE", "") != ""
	logger, flush, err := obs.NewLogger(verbose)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer flush()

	cfg, err := config.Load("")
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	tc, err := transport.NewClient(transport.Config{
		BaseURL:     cfg.APIURL,
		Timeout:     cfg.HTTPTimeout,
		MaxAttempts: cfg.MaxAttempts,
	}, nil)
	if err != nil {
		logger.Fatal("build transport", zap.Error(err))
	}

	router := api.NewRouter(backend.New(tc))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("api_url", cfg.APIURL))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serve", zap.Error(err))
	}
	logger.Info("server stopped")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/adapters/http"
	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/adapters/gateway"
	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/app"
	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	registry := app.NewRegistry()
	store := app.NewSnapshotStore(registry, cfg.SnapshotPath, cfg.SnapshotInterval)
	store.Load()

	storeDone := make(chan struct{})
	go func() {
		defer close(storeDone)
		store.Run(ctx)
	}()

	ctl := gateway.NewController(cfg, registry)
	r := router.SetupRouter(ctx, cfg, registry, store, ctl)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("game server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Wait for the final snapshot drain before exiting.
	select {
	case <-storeDone:
	case <-time.After(5 * time.Second):
		log.Error().Msg("snapshot drain timed out")
	}
	log.Info().Msg("Server exited gracefully")
}

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

	router "github.com/KeithOruwari19/walkingbuddy/internal/adapters/http"
	"github.com/KeithOruwari19/walkingbuddy/internal/app"
	"github.com/KeithOruwari19/walkingbuddy/internal/config"
	"github.com/KeithOruwari19/walkingbuddy/internal/nav"
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

	users := app.NewUserStore()
	rooms := app.NewRegistry()
	chat := app.NewChatLogStore()
	hub := app.NewHub()
	bookings := app.NewBookingBoard()
	orch := app.NewOrchestrator(users, rooms, chat, hub, bookings)

	navClient := nav.NewClient(cfg.NominatimURL, cfg.OSRMURL, cfg.NavUserAgent, cfg.GeocodeTimeout, cfg.RouteTimeout)

	go hub.Run(ctx)

	r := router.SetupRouter(ctx, cfg, orch, navClient)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("walkingbuddy server started")
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
	<-hub.Done()
	log.Info().Msg("Server exited gracefully")
}

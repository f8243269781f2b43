package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jobdeck/jobboard-client/internal/client"
	"github.com/jobdeck/jobboard-client/internal/gateway"
	"github.com/jobdeck/jobboard-client/internal/pkg/config"
	"github.com/jobdeck/jobboard-client/internal/session"
	"github.com/jobdeck/jobboard-client/internal/web"
	"github.com/jobdeck/jobboard-client/pkg/logger"
)

func main() {
	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	storage, err := session.NewFileStorage(cfg.StateDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.StateDir).Msg("cannot open state directory")
	}
	store := session.NewStore(storage, log)
	store.Restore()

	gw := gateway.New(cfg.APIBaseURL, store, log)

	e := web.NewRouter(web.Deps{
		Store: store,
		Auth:  client.NewAuth(gw),
		Jobs:  client.NewJobs(gw),
		Apps:  client.NewApplications(gw),
		Log:   log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().
		Str("port", cfg.Port).
		Str("api", cfg.APIBaseURL).
		Bool("session", store.Authenticated()).
		Msg("job board client started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/corepay/identity-service/internal/config"
	"github.com/corepay/identity-service/internal/handler"
	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/server"
	"github.com/corepay/identity-service/internal/service"
	"github.com/corepay/identity-service/internal/store"
	"github.com/corepay/identity-service/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("identity-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	repositories := store.NewRepositories(db, log)
	services := service.NewServices(repositories, *cfg, log)

	// the same signals that stop the HTTP server stop the workers
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	backgroundWorkers := workers.NewWorkers(
		workers.NewSessionSweeper(repositories.SessionRepository, cfg.App.SessionSweepInterval, log),
	)
	backgroundWorkers.Run(ctx)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

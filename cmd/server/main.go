package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-uid-panel/internal/app"
	"github.com/MKhiriev/go-uid-panel/internal/config"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Printf("go-uid-panel %s\n", buildInfo)

	log := logger.NewLogger("uid-panel-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Dur("request_timeout", cfg.Server.RequestTimeout).
		Bool("archive_enabled", cfg.Storage.Archive.Enabled()).
		Dur("activity_cleanup_interval", cfg.Workers.ActivityCleanupInterval).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	application, err := app.New(ctx, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating application")
	}

	if err = application.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application stopped")
}

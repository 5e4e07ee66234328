package handler

import (
	"github.com/MKhiriev/go-uid-panel/internal/config"
	"github.com/MKhiriev/go-uid-panel/internal/handler/http"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/internal/service"
	"github.com/MKhiriev/go-uid-panel/models"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHTTPAddress
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg, buildInfo, logger),
	}, nil
}

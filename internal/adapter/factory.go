package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-uid-panel/internal/config"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
)

type clientFactory struct {
	settings SettingsProvider
	timeout  time.Duration

	logger *logger.Logger
}

// NewClientFactory returns a [ClientFactory] that resolves settings through
// settings on every NewClient call.
func NewClientFactory(cfg config.Adapter, settings SettingsProvider, logger *logger.Logger) ClientFactory {
	return &clientFactory{
		settings: settings,
		timeout:  cfg.RequestTimeout,
		logger:   logger,
	}
}

// NewClient implements [ClientFactory].
func (f *clientFactory) NewClient(ctx context.Context) (BypassClient, error) {
	settings, err := f.settings.ExternalAPISettings(ctx)
	if err != nil {
		if errors.Is(err, ErrSettingsNotConfigured) {
			return nil, err
		}
		return nil, fmt.Errorf("error resolving external api settings: %w", err)
	}

	return NewBypassClient(settings, f.timeout, f.logger)
}

package service

import (
	"github.com/MKhiriev/go-uid-panel/internal/adapter"
	"github.com/MKhiriev/go-uid-panel/internal/config"
	"github.com/MKhiriev/go-uid-panel/internal/lock"
	"github.com/MKhiriev/go-uid-panel/internal/logger"
	"github.com/MKhiriev/go-uid-panel/internal/store"
)

type Services struct {
	UIDService      UIDService
	AuthService     AuthService
	UserService     UserService
	ActivityService ActivityService
	SettingsService SettingsService
	APIKeyService   APIKeyService
}

// NewServices wires every service over storages. The services that change
// credits share one keyed lock.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	locks := lock.NewKeyed()
	settings := NewSettingsProvider(storages.SettingsRepository, cfg.Adapter.SettingsCacheTTL)
	clients := adapter.NewClientFactory(cfg.Adapter, settings, logger)

	return &Services{
		UIDService:      NewUIDService(storages, clients, locks, cfg, logger),
		AuthService:     NewAuthService(storages.UserRepository, storages.ActivityRepository, cfg.App, logger),
		UserService:     NewUserService(storages, locks, logger),
		ActivityService: NewActivityService(storages, logger),
		SettingsService: NewSettingsService(storages.SettingsRepository, settings, logger),
		APIKeyService:   NewAPIKeyService(storages, cfg.App, logger),
	}
}

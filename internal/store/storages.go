package store

import "github.com/MKhiriev/go-uid-panel/internal/logger"

// Storages groups every repository the services depend on.
type Storages struct {
	Transactor         Transactor
	UserRepository     UserRepository
	UIDRepository      UIDRepository
	ActivityRepository ActivityRepository
	SettingsRepository SettingsRepository
	APIKeyRepository   APIKeyRepository
	ActivityArchive    ActivityArchive
}

// NewStorages wires the PostgreSQL repositories over db. archive may be nil,
// in which case activity is purged without being archived.
func NewStorages(db *DB, archive ActivityArchive, log *logger.Logger) *Storages {
	if archive == nil {
		archive = noopActivityArchive{}
	}

	return &Storages{
		Transactor:         db,
		UserRepository:     NewUserRepository(db, log),
		UIDRepository:      NewUIDRepository(db, log),
		ActivityRepository: NewActivityRepository(db, log),
		SettingsRepository: NewSettingsRepository(db, log),
		APIKeyRepository:   NewAPIKeyRepository(db, log),
		ActivityArchive:    archive,
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// server invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the ErrInvalid*Configs
// sentinels wrapped with the offending field.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.validateStorage(); err != nil {
		return err
	}

	if cfg.App.SessionSignKey == "" {
		return fmt.Errorf("%w: session sign key is empty", ErrInvalidAppConfigs)
	}
	if cfg.App.APIKeyHashKey == "" {
		return fmt.Errorf("%w: api key hash key is empty", ErrInvalidAppConfigs)
	}
	if cfg.App.SessionDuration <= 0 {
		return fmt.Errorf("%w: session duration must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is empty", ErrInvalidServerConfigs)
	}
	if cfg.Server.RequestTimeout <= cfg.Adapter.RequestTimeout {
		return fmt.Errorf("%w: request timeout must exceed the adapter timeout", ErrInvalidServerConfigs)
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidAdapterConfigs)
	}
	if cfg.Adapter.SettingsCacheTTL < 0 || cfg.Adapter.ListMaxPages < 1 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.ActivityCleanupInterval < 0 {
		return ErrInvalidWorkerConfigs
	}
	if cfg.Workers.ActivityCleanupInterval > 0 && cfg.Workers.ActivityRetentionDays < 1 {
		return fmt.Errorf("%w: retention days must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (cfg *StructuredConfig) validateStorage() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database uri is empty", ErrInvalidStorageConfigs)
	}

	if cfg.Storage.Archive.Enabled() && cfg.Storage.Archive.Bucket == "" {
		return fmt.Errorf("%w: archive bucket is empty", ErrInvalidStorageConfigs)
	}

	return nil
}

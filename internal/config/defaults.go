package config

import "time"

const (
	defaultHTTPAddress           = "localhost:8080"
	defaultServerRequestTimeout  = 30 * time.Second
	defaultSessionIssuer         = "go-uid-panel"
	defaultSessionDuration       = 24 * time.Hour
	defaultRegion                = "global"
	defaultVersion               = "dev"
	defaultAdapterRequestTimeout = 20 * time.Second
	defaultListMaxPages          = 20
	defaultActivityRetentionDays = 2
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SessionIssuer:   defaultSessionIssuer,
			SessionDuration: defaultSessionDuration,
			DefaultRegion:   defaultRegion,
			Version:         defaultVersion,
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultServerRequestTimeout,
		},
		Adapter: Adapter{
			RequestTimeout: defaultAdapterRequestTimeout,
			ListMaxPages:   defaultListMaxPages,
		},
		Workers: Workers{
			ActivityRetentionDays: defaultActivityRetentionDays,
		},
	}
}

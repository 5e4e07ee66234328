package models

import "time"

// ExternalAPISettings is the single configuration row used to reach the
// external bypass service. Last write wins.
type ExternalAPISettings struct {
	BaseURL   string    `json:"base_url"`
	APIKey    string    `json:"api_key"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Masked returns a copy safe to show in the dashboard: only the last four
// characters of the API key are kept.
func (s ExternalAPISettings) Masked() ExternalAPISettings {
	if n := len(s.APIKey); n > 4 {
		s.APIKey = "****" + s.APIKey[n-4:]
	} else if n > 0 {
		s.APIKey = "****"
	}
	return s
}

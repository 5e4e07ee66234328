package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg through its `env`/`envPrefix` tags. A nil environ reads
// the process environment; otherwise the variables are looked up in environ,
// which is how the JSON file is applied as well.
func parseEnv(cfg *StructuredConfig, environ map[string]string) error {
	var err error
	if environ == nil {
		err = env.Parse(cfg)
	} else {
		err = env.ParseWithOptions(cfg, env.Options{Environment: environ})
	}
	if err != nil {
		return fmt.Errorf("error parsing config variables: %w", err)
	}

	return nil
}

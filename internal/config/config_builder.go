package config

import (
	"fmt"

	"dario.cat/mergo"
)

// source yields one configuration layer. loaded holds the layers read
// before it, highest priority first. A nil layer without an error means the
// source has nothing to contribute.
type source func(loaded []*StructuredConfig) (*StructuredConfig, error)

// load reads every source in priority order and merges the layers: a field
// keeps the first non-zero value it is given.
func load(validate func(*StructuredConfig) error, sources ...source) (*StructuredConfig, error) {
	loaded := make([]*StructuredConfig, 0, len(sources))
	for _, src := range sources {
		layer, err := src(loaded)
		if err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
		if layer != nil {
			loaded = append(loaded, layer)
		}
	}

	cfg := new(StructuredConfig)
	for _, layer := range loaded {
		if err := mergo.Merge(cfg, layer); err != nil {
			return nil, fmt.Errorf("error merging config: %w", err)
		}
	}

	if validate != nil {
		if err := validate(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func fromEnv([]*StructuredConfig) (*StructuredConfig, error) {
	cfg := new(StructuredConfig)
	if err := parseEnv(cfg, nil); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromArgs(args []string) source {
	return func([]*StructuredConfig) (*StructuredConfig, error) {
		return parseFlags(args)
	}
}

// fromJSONFile loads the file named by the highest-priority layer that sets
// a path.
func fromJSONFile(loaded []*StructuredConfig) (*StructuredConfig, error) {
	for _, layer := range loaded {
		if layer.JSONFilePath != "" {
			return parseJSONFile(layer.JSONFilePath)
		}
	}
	return nil, nil
}

func fromDefaults([]*StructuredConfig) (*StructuredConfig, error) {
	return defaultConfig(), nil
}

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// parseJSONFile reads a flat JSON object keyed by the environment variable
// names, for example
//
//	{"SERVER_ADDRESS": ":8080", "ADAPTER_REQUEST_TIMEOUT": "20s", "ADAPTER_LIST_MAX_PAGES": 10}
//
// Strings, numbers and booleans are accepted; null leaves a variable unset.
// Durations have to be strings with a unit. The values go through the same
// tags as the environment, so both sources accept exactly the same keys.
func parseJSONFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	environ, err := decodeJSONVariables(data)
	if err != nil {
		return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
	}

	cfg := new(StructuredConfig)
	if err = parseEnv(cfg, environ); err != nil {
		return nil, err
	}
	// a config file cannot point to another one
	cfg.JSONFilePath = ""

	return cfg, nil
}

func decodeJSONVariables(data []byte) (map[string]string, error) {
	var raw map[string]any

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	environ := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
		case string:
			environ[key] = v
		case json.Number:
			environ[key] = v.String()
		case bool:
			environ[key] = fmt.Sprint(v)
		default:
			return nil, fmt.Errorf("%s: expected a string, number or boolean", key)
		}
	}

	return environ, nil
}

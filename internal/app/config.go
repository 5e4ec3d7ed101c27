package app

import "errors"

// AppConfig holds all the necessary configuration for an App instance to run.
type AppConfig struct {
	GridPath    string // grid files (.hcl, .yaml, .yml)
	Product     bool   // print the full cross product instead of per-table rows
	NamePattern string // custom unit-name pattern; empty keeps the default

	LogFormat string
	LogLevel  string
}

// NewAppConfig validates a config value.
func NewAppConfig(cfg AppConfig) (*AppConfig, error) {
	if cfg.GridPath == "" {
		return nil, errors.New("GridPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}

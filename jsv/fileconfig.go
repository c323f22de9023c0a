package jsv

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// LoadConfig loads a configuration file in YAML or JSON format. Fields left
// out of the file take their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses configuration data in YAML or JSON format.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	sc := cfg.storeConfig()
	cfg.Store = &sc
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

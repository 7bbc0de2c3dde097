package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"adjconst-generator/internal/common"
	"adjconst-generator/internal/gen"
	"adjconst-generator/internal/plan"
)

const (
	filePerm = 0o644

	defaultDebounce = 100 * time.Millisecond
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config with defaults applied. Unknown keys
// are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	// An empty document yields the defaults.
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.CollectionTypes == nil {
		cfg.CollectionTypes = append([]string(nil), plan.DefaultCollectionTypes...)
	}

	def := gen.DefaultGeneratorConfig()

	if cfg.Adjustment.Suffix == "" {
		cfg.Adjustment.Suffix = def.AdjSuffix
	}

	if cfg.Adjustment.BaseType == "" {
		cfg.Adjustment.BaseType = def.BaseType
	}

	if cfg.Adjustment.Instance == "" {
		cfg.Adjustment.Instance = def.Instance
	}

	if cfg.Guard.Open == "" {
		cfg.Guard.Open = def.Guard.Open
	}

	if cfg.Guard.Separator == "" {
		cfg.Guard.Separator = def.Guard.Separator
	}

	if cfg.Guard.Close == "" {
		cfg.Guard.Close = def.Guard.Close
	}

	if cfg.Indent == "" {
		cfg.Indent = def.Indent
	}

	if cfg.LineEnding == "" {
		cfg.LineEnding = def.LineEnding.String()
	}

	retry := common.DefaultRetryPolicy()

	if cfg.IO.Retries == 0 {
		cfg.IO.Retries = retry.Attempts
	}

	if cfg.IO.RetryDelay == 0 {
		cfg.IO.RetryDelay = retry.Delay
	}

	if cfg.IO.Parallelism == 0 {
		cfg.IO.Parallelism = runtime.GOMAXPROCS(0)
	}

	if cfg.IO.Debounce == 0 {
		cfg.IO.Debounce = defaultDebounce
	}
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteFile writes a Config to the given path.
func WriteFile(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

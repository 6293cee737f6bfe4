// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
)

// Config holds the full service configuration. Zero values are filled in
// from [Default] before file and environment values are applied.
type Config struct {
	Server  ServerConfig  `config:"server"`
	Logging LoggingConfig `config:"logging"`
	Metrics MetricsConfig `config:"metrics"`
}

// ServerConfig configures the Gemini listener.
type ServerConfig struct {
	Address      string        `config:"address"`
	Hostname     string        `config:"hostname"`
	CertFile     string        `config:"cert_file"`
	KeyFile      string        `config:"key_file"`
	ReadTimeout  time.Duration `config:"read_timeout"`
	WriteTimeout time.Duration `config:"write_timeout"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `config:"level"`
	Format string `config:"format"`
}

// MetricsConfig configures the Prometheus scrape endpoint.
type MetricsConfig struct {
	Enabled bool   `config:"enabled"`
	Address string `config:"address"`
	Path    string `config:"path"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Address:      ":1965",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Address: ":9090",
			Path:    "/metrics",
		},
	}
}

// Load builds a Config from defaults, an optional file, and environment
// overrides, in that order of precedence (environment wins). The file
// format is detected from the extension: .yaml/.yml or .toml. An empty
// path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		fileValues, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := decodeInto(fileValues, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	envValues := envOverrides(os.Environ())
	if len(envValues) > 0 {
		if err := decodeInto(envValues, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: environment overrides: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readFile parses a configuration file into a nested map.
func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	values := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("config: parse yaml %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("config: parse toml %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return values, nil
}

// decodeInto merges a nested value map into cfg, overriding existing
// fields. Durations accept Go syntax ("30s", "1m30s").
func decodeInto(values map[string]any, cfg *Config) error {
	var layer Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &layer,
		TagName:          "config",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(values); err != nil {
		return err
	}
	return mergo.Merge(cfg, layer, mergo.WithOverride)
}

// Validate checks cross-field constraints a decoded Config must satisfy.
func (c Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("config: %w", ErrEmptyAddress)
	}
	if (c.Server.CertFile == "") != (c.Server.KeyFile == "") {
		return fmt.Errorf("config: %w", ErrPartialCertPair)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: %w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text", "console":
	default:
		return fmt.Errorf("config: %w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	if c.Metrics.Enabled {
		if c.Metrics.Address == "" {
			return fmt.Errorf("config: %w", ErrEmptyMetricsAddress)
		}
		if c.Metrics.Path == "" {
			return fmt.Errorf("config: %w", ErrEmptyMetricsPath)
		}
	}
	return nil
}

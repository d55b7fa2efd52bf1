// Copyright 2025 walteh LLC
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
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexlab/pkg/engine"
	"github.com/walteh/regexlab/pkg/library"
)

const (
	// DefaultPath is the config file looked up when none is given
	DefaultPath = ".regexlab.yaml"
	// DefaultAddr is where the browser UI listens
	DefaultAddr = "127.0.0.1:7341"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🌐 ServerConfig configures the browser UI server
type ServerConfig struct {
	Addr    string `json:"addr,omitempty" yaml:"addr,omitempty"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"` // prefix of shared links
}

// 📚 Config represents the complete configuration
type Config struct {
	Engine       string          `json:"engine,omitempty" yaml:"engine,omitempty"`
	MatchTimeout string          `json:"match_timeout,omitempty" yaml:"match_timeout,omitempty"`
	Server       ServerConfig    `json:"server" yaml:"server"`
	PrefsPath    string          `json:"prefs_path,omitempty" yaml:"prefs_path,omitempty"`
	Library      []library.Entry `json:"library,omitempty" yaml:"library,omitempty"`

	backend  engine.Backend
	timeout  time.Duration
	location string
}

// Default returns a validated config with every default filled in
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// 🎯 Load loads the configuration at path. A missing file yields Default.
func Load(ctx context.Context, path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
		return Default(), nil
	}
	return LoadFile(ctx, path)
}

// LoadFile is Load without the missing-file fallback
func LoadFile(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	cfg.location = path

	return cfg, nil
}

// 🔍 Validate fills in defaults and checks the values
func (cfg *Config) Validate() error {
	backend, err := engine.ParseBackend(cfg.Engine)
	if err != nil {
		return errors.Errorf("engine: %w", err)
	}
	cfg.backend = backend
	cfg.Engine = string(backend)

	cfg.timeout = 0
	if cfg.MatchTimeout != "" {
		d, err := time.ParseDuration(cfg.MatchTimeout)
		if err != nil {
			return errors.Errorf("match_timeout: %w", err)
		}
		if d < 0 {
			return errors.Errorf("match_timeout must not be negative")
		}
		cfg.timeout = d
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://" + cfg.Server.Addr + "/"
	}

	for i, e := range cfg.Library {
		if e.Name == "" {
			return errors.Errorf("library[%d]: name is required", i)
		}
		if e.Pattern == "" {
			return errors.Errorf("library[%d] %q: pattern is required", i, e.Name)
		}
	}

	return nil
}

// EngineOptions returns the evaluator settings
func (cfg *Config) EngineOptions() engine.Options {
	return engine.Options{Backend: cfg.backend, MatchTimeout: cfg.timeout}
}

// NewLibrary returns the built-in library extended with the configured entries
func (cfg *Config) NewLibrary() *library.Library {
	return library.New(cfg.Library...)
}

// Location is the file the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	src := cfg.location
	if src == "" {
		src = "defaults"
	}
	return fmt.Sprintf("%s: engine=%s addr=%s library+%d", src, cfg.Engine, cfg.Server.Addr, len(cfg.Library))
}

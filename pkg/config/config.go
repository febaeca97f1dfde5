// Copyright 2025 Jason Poonia
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
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔑 Environment fallbacks for credentials the config file omits. Keeping the
// application password out of committed config files is the expected setup.
const (
	EnvUsername    = "WPMIGRATE_USERNAME"
	EnvAppPassword = "WPMIGRATE_APP_PASSWORD"
)

// DefaultDelay separates consecutive post transfers and listing pages so a
// shared host never sees a request burst.
const DefaultDelay = time.Second

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

// 🌐 Site identifies the source site content is read from
type Site struct {
	URL string `json:"url" yaml:"url"` // Site base URL (e.g. https://src.example.com)
}

// 🔑 Destination identifies the target site and its credentials
type Destination struct {
	URL         string `json:"url" yaml:"url"`                                   // Site base URL
	Username    string `json:"username,omitempty" yaml:"username,omitempty"`     // Account username
	AppPassword string `json:"app_password,omitempty" yaml:"app_password,omitempty"` // Application password
}

// 🔄 Replacement represents a string replacement in transferred content
type Replacement struct {
	Old string `json:"old" yaml:"old"` // Original string to replace
	New string `json:"new" yaml:"new"` // New string to use
}

// 🔧 MigrateArgs tunes how content moves between the sites
type MigrateArgs struct {
	RewriteLinks bool          `json:"rewrite_links,omitempty" yaml:"rewrite_links,omitempty"` // Point source-site links at the destination
	Replacements []Replacement `json:"replacements,omitempty" yaml:"replacements,omitempty"`   // String replacements to apply
	Exclude      []string      `json:"exclude,omitempty" yaml:"exclude,omitempty"`             // Glob patterns for URLs to skip
	Include      []string      `json:"include,omitempty" yaml:"include,omitempty"`             // Glob patterns URLs must match, when set
	ItemDelay    string        `json:"item_delay,omitempty" yaml:"item_delay,omitempty"`       // Pause between items (e.g. "1s")
	PageDelay    string        `json:"page_delay,omitempty" yaml:"page_delay,omitempty"`       // Pause between listing pages

	// Parsed durations, populated by Validate
	ItemDelayDur time.Duration `json:"-" yaml:"-"`
	PageDelayDur time.Duration `json:"-" yaml:"-"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Source      Site         `json:"source" yaml:"source"`
	Destination Destination  `json:"destination" yaml:"destination"`
	Migrate     *MigrateArgs `json:"migrate,omitempty" yaml:"migrate,omitempty"`
}

// 🔑 Overrides carries credential values collected outside the config file,
// e.g. command-line flags. Non-empty fields win over the file and environment.
type Overrides struct {
	Username    string
	AppPassword string
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	return load(ctx, path, Overrides{}, true)
}

// 🎯 LoadWithOverrides loads the configuration and applies credential
// overrides before validation.
func LoadWithOverrides(ctx context.Context, path string, o Overrides) (*Config, error) {
	return load(ctx, path, o, true)
}

// 🎯 LoadDiscovery loads the configuration for read-only commands that never
// touch the destination. Destination settings are only validated when present.
func LoadDiscovery(ctx context.Context, path string) (*Config, error) {
	return load(ctx, path, Overrides{}, false)
}

func load(ctx context.Context, path string, o Overrides, requireDest bool) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Overrides beat the file, the file beats the environment
	if o.Username != "" {
		cfg.Destination.Username = o.Username
	}
	if o.AppPassword != "" {
		cfg.Destination.AppPassword = o.AppPassword
	}
	cfg.applyEnvFallbacks()

	// Validate
	if err := cfg.validate(requireDest); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// applyEnvFallbacks fills credential fields the file left empty.
func (cfg *Config) applyEnvFallbacks() {
	if cfg.Destination.Username == "" {
		cfg.Destination.Username = os.Getenv(EnvUsername)
	}
	if cfg.Destination.AppPassword == "" {
		cfg.Destination.AppPassword = os.Getenv(EnvAppPassword)
	}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	return cfg.validate(true)
}

func (cfg *Config) validate(requireDest bool) error {
	// Check required fields
	src, err := normalizeBaseURL(cfg.Source.URL)
	if err != nil {
		return errors.Errorf("source.url: %w", err)
	}
	cfg.Source.URL = src

	if requireDest || cfg.Destination.URL != "" {
		dst, err := normalizeBaseURL(cfg.Destination.URL)
		if err != nil {
			return errors.Errorf("destination.url: %w", err)
		}
		cfg.Destination.URL = dst
	}

	if requireDest {
		if cfg.Destination.Username == "" {
			return errors.Errorf("destination.username is required (or set %s)", EnvUsername)
		}
		if cfg.Destination.AppPassword == "" {
			return errors.Errorf("destination.app_password is required (or set %s)", EnvAppPassword)
		}
	}

	// Set defaults
	if cfg.Migrate == nil {
		cfg.Migrate = &MigrateArgs{}
	}
	if err := cfg.Migrate.validate(); err != nil {
		return err
	}

	return nil
}

func (m *MigrateArgs) validate() error {
	for i, r := range m.Replacements {
		if r.Old == "" {
			return errors.Errorf("migrate.replacements[%d]: old is required", i)
		}
	}

	for _, pattern := range append(append([]string{}, m.Exclude...), m.Include...) {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid glob pattern: %q", pattern)
		}
	}

	var err error
	if m.ItemDelayDur, err = parseDelay(m.ItemDelay); err != nil {
		return errors.Errorf("migrate.item_delay: %w", err)
	}
	if m.PageDelayDur, err = parseDelay(m.PageDelay); err != nil {
		return errors.Errorf("migrate.page_delay: %w", err)
	}

	return nil
}

// parseDelay reads a duration string, defaulting empty to DefaultDelay.
// Negative delays are rejected; zero is allowed for tests and dry runs.
func parseDelay(s string) (time.Duration, error) {
	if s == "" {
		return DefaultDelay, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Errorf("parsing duration: %w", err)
	}
	if d < 0 {
		return 0, errors.Errorf("delay must not be negative: %s", s)
	}
	return d, nil
}

// normalizeBaseURL validates a site base URL and strips any trailing slash so
// downstream path joins are uniform.
func normalizeBaseURL(raw string) (string, error) {
	if raw == "" {
		return "", errors.Errorf("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Errorf("parsing url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.Errorf("url must be http or https: %q", raw)
	}
	if u.Host == "" {
		return "", errors.Errorf("url must include a host: %q", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s -> %s", cfg.Source.URL, cfg.Destination.URL)
}

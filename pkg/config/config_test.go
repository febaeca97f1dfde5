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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Keep ambient credentials out of the table cases
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvAppPassword, "")

	tests := []struct {
		name        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_config",
			config: `
source:
  url: https://src.example.com
destination:
  url: https://dst.example.com
  username: admin
  app_password: abcd efgh ijkl
migrate:
  rewrite_links: true
  replacements:
    - old: Old Company
      new: New Company
  exclude:
    - "*landing*"
  item_delay: 2s
  page_delay: 500ms
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://src.example.com", cfg.Source.URL, "source url should match")
				assert.Equal(t, "https://dst.example.com", cfg.Destination.URL, "destination url should match")
				assert.Equal(t, "admin", cfg.Destination.Username, "username should match")
				assert.Equal(t, "abcd efgh ijkl", cfg.Destination.AppPassword, "app password should match")
				require.NotNil(t, cfg.Migrate, "migrate should not be nil")
				assert.True(t, cfg.Migrate.RewriteLinks, "rewrite_links should be true")
				require.Len(t, cfg.Migrate.Replacements, 1, "should have 1 replacement")
				assert.Equal(t, "Old Company", cfg.Migrate.Replacements[0].Old, "replacement old should match")
				assert.Equal(t, "New Company", cfg.Migrate.Replacements[0].New, "replacement new should match")
				assert.Equal(t, []string{"*landing*"}, cfg.Migrate.Exclude, "exclude patterns should match")
				assert.Equal(t, 2*time.Second, cfg.Migrate.ItemDelayDur, "item delay should parse")
				assert.Equal(t, 500*time.Millisecond, cfg.Migrate.PageDelayDur, "page delay should parse")
			},
		},
		{
			name: "minimal_config_defaults",
			config: `
source:
  url: https://src.example.com
destination:
  url: https://dst.example.com
  username: admin
  app_password: secret
`,
			check: func(t *testing.T, cfg *Config) {
				require.NotNil(t, cfg.Migrate, "migrate should default to an empty block")
				assert.False(t, cfg.Migrate.RewriteLinks, "rewrite_links should default off")
				assert.Equal(t, DefaultDelay, cfg.Migrate.ItemDelayDur, "item delay should default")
				assert.Equal(t, DefaultDelay, cfg.Migrate.PageDelayDur, "page delay should default")
			},
		},
		{
			name: "trailing_slash_normalized",
			config: `
source:
  url: https://src.example.com/
destination:
  url: https://dst.example.com/
  username: admin
  app_password: secret
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://src.example.com", cfg.Source.URL, "trailing slash should be stripped")
				assert.Equal(t, "https://dst.example.com", cfg.Destination.URL, "trailing slash should be stripped")
			},
		},
		{
			name: "missing_source_url",
			config: `
destination:
  url: https://dst.example.com
  username: admin
  app_password: secret
`,
			wantErr:     true,
			errContains: "source.url",
		},
		{
			name: "source_url_wrong_scheme",
			config: `
source:
  url: ftp://src.example.com
destination:
  url: https://dst.example.com
  username: admin
  app_password: secret
`,
			wantErr:     true,
			errContains: "must be http or https",
		},
		{
			name: "missing_credentials",
			config: `
source:
  url: https://src.example.com
destination:
  url: https://dst.example.com
`,
			wantErr:     true,
			errContains: "destination.username is required",
		},
		{
			name: "empty_replacement_old",
			config: `
source:
  url: https://src.example.com
destination:
  url: https://dst.example.com
  username: admin
  app_password: secret
migrate:
  replacements:
    - old: ""
      new: anything
`,
			wantErr:     true,
			errContains: "old is required",
		},
		{
			name: "invalid_exclude_pattern",
			config: `
source:
  url: https://src.example.com
destination:
  url: https://dst.example.com
  username: admin
  app_password: secret
migrate:
  exclude:
    - "[unclosed"
`,
			wantErr:     true,
			errContains: "invalid glob pattern",
		},
		{
			name: "invalid_item_delay",
			config: `
source:
  url: https://src.example.com
destination:
  url: https://dst.example.com
  username: admin
  app_password: secret
migrate:
  item_delay: soon
`,
			wantErr:     true,
			errContains: "item_delay",
		},
		{
			name: "negative_page_delay",
			config: `
source:
  url: https://src.example.com
destination:
  url: https://dst.example.com
  username: admin
  app_password: secret
migrate:
  page_delay: -1s
`,
			wantErr:     true,
			errContains: "must not be negative",
		},
		{
			name: "unknown_field_rejected",
			config: `
source:
  url: https://src.example.com
destnation:
  url: https://dst.example.com
`,
			wantErr:     true,
			errContains: "not found",
		},
	}

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temporary config file
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configPath, []byte(tt.config), 0644)
			require.NoError(t, err, "writing config file should succeed")

			// Load config
			cfg, err := Load(ctx, configPath)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoad_EnvCredentialFallback(t *testing.T) {
	t.Setenv(EnvUsername, "env-admin")
	t.Setenv(EnvAppPassword, "env-secret")

	config := `
source:
  url: https://src.example.com
destination:
  url: https://dst.example.com
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0644))

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())
	cfg, err := Load(ctx, configPath)
	require.NoError(t, err, "environment should satisfy the credential requirement")

	assert.Equal(t, "env-admin", cfg.Destination.Username)
	assert.Equal(t, "env-secret", cfg.Destination.AppPassword)
}

func TestLoad_FileCredentialsWinOverEnv(t *testing.T) {
	t.Setenv(EnvUsername, "env-admin")
	t.Setenv(EnvAppPassword, "env-secret")

	config := `
source:
  url: https://src.example.com
destination:
  url: https://dst.example.com
  username: file-admin
  app_password: file-secret
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0644))

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())
	cfg, err := Load(ctx, configPath)
	require.NoError(t, err)

	assert.Equal(t, "file-admin", cfg.Destination.Username, "file value should win over environment")
	assert.Equal(t, "file-secret", cfg.Destination.AppPassword, "file value should win over environment")
}

func TestLoad_MissingFile(t *testing.T) {
	ctx := zerolog.New(os.Stderr).WithContext(context.Background())
	_, err := Load(ctx, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoadWithOverrides(t *testing.T) {
	t.Setenv(EnvUsername, "env-admin")
	t.Setenv(EnvAppPassword, "env-secret")

	config := `
source:
  url: https://src.example.com
destination:
  url: https://dst.example.com
  username: file-admin
  app_password: file-secret
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0644))

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())
	cfg, err := LoadWithOverrides(ctx, configPath, Overrides{
		Username:    "flag-admin",
		AppPassword: "flag-secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "flag-admin", cfg.Destination.Username, "override should win over file and environment")
	assert.Equal(t, "flag-secret", cfg.Destination.AppPassword, "override should win over file and environment")
}

func TestLoadDiscovery(t *testing.T) {
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvAppPassword, "")

	// Source only; no destination at all.
	config := `
source:
  url: https://src.example.com
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0644))

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	_, err := Load(ctx, configPath)
	require.Error(t, err, "a full load still demands a destination")

	cfg, err := LoadDiscovery(ctx, configPath)
	require.NoError(t, err, "discovery loads need only the source")
	assert.Equal(t, "https://src.example.com", cfg.Source.URL)
	require.NotNil(t, cfg.Migrate, "defaults still apply")
}

func TestGetParser(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     any
	}{
		{
			name:     "yaml_extension",
			filename: ".wpmigrate.yaml",
			want:     &YAMLParser{},
		},
		{
			name:     "yml_extension",
			filename: "config.yml",
			want:     &YAMLParser{},
		},
		{
			name:     "hcl_extension",
			filename: "config.hcl",
			want:     &HCLParser{},
		},
		{
			name:     "json_extension",
			filename: "config.json",
			want:     &JSONParser{},
		},
		{
			name:     "unsupported_extension",
			filename: "config.toml",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "no parser should match")
				return
			}
			assert.IsType(t, tt.want, got, "parser type should match")
		})
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{
		Source:      Site{URL: "https://src.example.com"},
		Destination: Destination{URL: "https://dst.example.com"},
	}
	assert.Equal(t, "https://src.example.com -> https://dst.example.com", cfg.String())
}

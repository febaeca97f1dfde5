package opts

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/jasonpoonia/wpmigrate/pkg/config"
	"github.com/jasonpoonia/wpmigrate/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile  string      // config file path from --config
	Debug       bool        // enable debug logging
	Username    string      // destination username override from --username
	AppPassword string      // destination app password override from --app-password
	Console     *log.Logger // user-facing console output
}

// LoadConfig loads and validates the full run configuration
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.LoadWithOverrides(ctx, o.ConfigFile, config.Overrides{
		Username:    o.Username,
		AppPassword: o.AppPassword,
	})
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// LoadDiscoveryConfig loads the configuration for read-only commands
func (o *RootOpts) LoadDiscoveryConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.LoadDiscovery(ctx, o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

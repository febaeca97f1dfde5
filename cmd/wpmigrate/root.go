package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jasonpoonia/wpmigrate/cmd/wpmigrate/opts"
	"github.com/jasonpoonia/wpmigrate/pkg/log"
)

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", ".wpmigrate.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&o.Username, "username", "", "destination username (overrides config file)")
	cmd.PersistentFlags().StringVar(&o.AppPassword, "app-password", "", "destination application password (overrides config file)")
}

// setupLogging configures zerolog and the console logger based on flags
func setupLogging(o *opts.RootOpts) {
	level := zerolog.InfoLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
	zerolog.DefaultContextLogger = &zlog

	o.Console = log.New(os.Stdout, level)
}

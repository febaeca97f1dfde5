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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jasonpoonia/wpmigrate/cmd/wpmigrate/commands"
	"github.com/jasonpoonia/wpmigrate/cmd/wpmigrate/opts"
)

func main() {
	// An interrupt mid-run must stop cleanly between items, not mid-request.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "wpmigrate",
		Short: "A tool for migrating content between WordPress sites",
		Long: `wpmigrate moves published posts and their featured media from one
WordPress site to another over the REST API, discovering content through
the source's sitemap and falling back to API enumeration when none exists.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(rootOpts)
		},
	}

	// Add shared flags
	addRootFlags(rootCmd, rootOpts)

	// Add commands
	rootCmd.AddCommand(
		commands.NewMigrateCmd(rootOpts),
		commands.NewDiscoverCmd(rootOpts),
		newVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(err)
		os.Exit(1)
	}
}

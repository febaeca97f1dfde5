package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/jasonpoonia/wpmigrate/cmd/wpmigrate/opts"
	"github.com/jasonpoonia/wpmigrate/pkg/migrate"
	"github.com/jasonpoonia/wpmigrate/pkg/transport"
)

// NewMigrateCmd creates a new migrate command
func NewMigrateCmd(ro *opts.RootOpts) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Transfer posts and featured media to the destination site",
		Long: `Migrate moves the source site's published content to the destination.
It will:
1. Probe the source's sitemap locations for content URLs
2. Fall back to enumerating the posts API when no index exists
3. Create each post on the destination and carry its featured media over
4. Pace every request so neither site sees a burst`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "migrate").Logger().WithContext(ctx)

			cfg, err := ro.LoadConfig(ctx)
			if err != nil {
				return err
			}

			ro.Console.Header("migrating " + cfg.String())

			m := migrate.New(cfg, transport.New(transport.Options{}), NewConsoleReporter(ro.Console))
			m.DryRun = dryRun

			summary, err := m.Run(ctx)
			if err != nil {
				if errors.Is(err, migrate.ErrNoContent) {
					ro.Console.Warning("the source offered no content to migrate")
					return err
				}
				return errors.Errorf("running migration: %w", err)
			}

			if dryRun {
				ro.Console.Infof("dry run: %d of %d items would transfer (%d skipped)",
					summary.Transferred, summary.Total, summary.Skipped)
				return nil
			}

			if summary.Failed > 0 {
				ro.Console.Warningf("%d of %d items failed; %d transferred, %d skipped",
					summary.Failed, summary.Total, summary.Transferred, summary.Skipped)
				return nil
			}

			ro.Console.Successf("transferred %d items via %s (%d media files, %d replacements)",
				summary.Transferred, summary.Mode, summary.MediaUploaded, summary.Replacements)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "resolve and count items without writing to the destination")

	return cmd
}

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/jasonpoonia/wpmigrate/cmd/wpmigrate/opts"
	"github.com/jasonpoonia/wpmigrate/pkg/migrate"
	"github.com/jasonpoonia/wpmigrate/pkg/transport"
)

// NewDiscoverCmd creates a new discover command
func NewDiscoverCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List the content a migration would transfer, without writing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "discover").Logger().WithContext(ctx)

			// Discovery never writes, so destination credentials are optional.
			cfg, err := ro.LoadDiscoveryConfig(ctx)
			if err != nil {
				return err
			}

			ro.Console.Header("discovering content on " + cfg.Source.URL)

			m := migrate.New(cfg, transport.New(transport.Options{}), nil)
			urls, err := m.Discover(ctx)
			if err != nil {
				return errors.Errorf("discovering content: %w", err)
			}

			if len(urls) == 0 {
				ro.Console.Warning("no sitemap index found; a migration would enumerate the posts API instead")
				return nil
			}

			for _, u := range urls {
				ro.Console.Info(u)
			}
			ro.Console.Successf("%d content URLs discovered", len(urls))
			return nil
		},
	}

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kcaldas/tabslimiter/pkg/config"
	"github.com/kcaldas/tabslimiter/pkg/limiter"
)

// initialLimit is written by config --init.
const initialLimit = 10

func newConfigCommand(opts *rootOptions) *cobra.Command {
	var (
		initFile bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings",
		Long: `Print the effective settings: the settings file with environment overrides
applied. With --init a settings file with default values is written first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.settings()
			if err != nil {
				return err
			}
			if initFile {
				cfg := limiter.DefaultConfig()
				cfg.Limit = initialLimit
				if err := settings.Write(cfg, force); err != nil {
					return err
				}
			}
			if _, err := settings.Load(); err != nil {
				return err
			}

			data, err := config.Marshal(settings.Reload(limiter.DefaultConfig()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", settings.Path(), data)
			return nil
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "write a settings file with default values")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing settings file with --init")
	return cmd
}

package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kcaldas/tabslimiter/pkg/config"
	"github.com/kcaldas/tabslimiter/pkg/logging"
	"github.com/kcaldas/tabslimiter/pkg/version"
)

const debugLogFile = "tabslimiter.log"

type rootOptions struct {
	settingsPath string
	workingDir   string
	verbose      bool
	quiet        bool
}

// settings returns the settings source selected by --settings, or the
// default location.
func (o *rootOptions) settings() (*config.Settings, error) {
	if o.settingsPath != "" {
		return config.NewSettings(o.settingsPath), nil
	}
	path, err := config.DefaultSettingsPath()
	if err != nil {
		return nil, err
	}
	return config.NewSettings(path), nil
}

// logger picks the process logger. TABSLIMITER_DEBUG_FILE switches logging
// to that file; --verbose still lowers its level to debug.
func (o *rootOptions) logger() logging.Logger {
	if os.Getenv(logging.EnvDebugFile) != "" {
		logger := logging.NewFileLoggerFromEnv(debugLogFile)
		if o.verbose {
			logger.SetLevel(slog.LevelDebug)
		}
		return logger
	}
	switch {
	case o.quiet:
		return logging.NewQuietLogger()
	case o.verbose:
		return logging.NewVerboseLogger()
	default:
		return logging.NewDefaultLogger()
	}
}

// NewRootCommand builds the tabslimiter command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tabslimiter",
		Short: "Close editor tabs automatically past a limit",
		Long: `tabslimiter keeps the number of open editor tabs under a limit by closing
one clean, inactive tab whenever the limit is reached. These commands let you
inspect the settings and replay scripted editor sessions against them.`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.workingDir
			if dir == "" {
				dir = "."
			}
			if err := config.LoadDotEnv(dir); err != nil {
				return fmt.Errorf("failed to load environment: %w", err)
			}
			logging.SetGlobalLogger(opts.logger())
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.settingsPath, "settings", "", "settings file (default ~/.config/tabslimiter/TabsLimiter.yaml)")
	cmd.PersistentFlags().StringVar(&opts.workingDir, "cwd", "", "directory to load .env from")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output (debug level)")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "quiet output (errors only)")

	cmd.AddCommand(
		newSimulateCommand(opts),
		newConfigCommand(opts),
		newOrderCommand(opts),
		newVersionCommand(),
	)
	return cmd
}

// Execute runs the CLI with all commands
func Execute() {
	rootCmd := NewRootCommand()
	rootCmd.SetVersionTemplate("tabslimiter version {{.Version}}\n")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

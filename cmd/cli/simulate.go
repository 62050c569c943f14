package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kcaldas/tabslimiter/internal/di"
	"github.com/kcaldas/tabslimiter/pkg/scenario"
)

var errNoScenario = errors.New("no scenario given: pass a file or pipe one on stdin")

func newSimulateCommand(opts *rootOptions) *cobra.Command {
	var useStdin bool

	cmd := &cobra.Command{
		Use:   "simulate [scenario.yaml]",
		Short: "Replay a scripted editor session",
		Long: `Replay a scripted editor session against an in-memory editor and report
every tab the limiter closes.

Scenarios without a settings block use the settings file.

Examples:
  tabslimiter simulate session.yaml
  cat session.yaml | tabslimiter simulate`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				sc  *scenario.Scenario
				err error
			)
			switch {
			case len(args) == 1:
				sc, err = scenario.Load(args[0])
			case useStdin || hasStdinInput():
				sc, err = scenario.Read(cmd.InOrStdin())
			default:
				return errNoScenario
			}
			if err != nil {
				return err
			}

			settings, err := opts.settings()
			if err != nil {
				return err
			}

			runner := di.InitializeRunner(sc, settings, cmd.OutOrStdout())
			result, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d steps, open [%s], closed [%s]\n",
				displayName(result.Name), result.Steps,
				strings.Join(result.Open, ", "), strings.Join(result.Closed, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&useStdin, "stdin", false, "read the scenario from stdin")
	return cmd
}

func displayName(name string) string {
	if name == "" {
		return "scenario"
	}
	return name
}

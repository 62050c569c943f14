package cli

import (
	"fmt"
	"math"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kcaldas/tabslimiter/pkg/access"
	"github.com/kcaldas/tabslimiter/pkg/host"
	"github.com/kcaldas/tabslimiter/pkg/host/memory"
	"github.com/kcaldas/tabslimiter/pkg/limiter"
)

func newOrderCommand(opts *rootOptions) *cobra.Command {
	var orderName string

	cmd := &cobra.Command{
		Use:   "order FILE...",
		Short: "Show the order in which files would be considered for closing",
		Long: `Show the order in which the given files, opened as tabs in that order,
would be considered for closing. Access times are read from the filesystem.

Without --order the close order from the settings file is used.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source limiter.ConfigSource
			if orderName != "" {
				order, err := limiter.ParseCloseOrder(orderName)
				if err != nil {
					return err
				}
				source = limiter.StaticConfig(limiter.Config{CloseOrder: order})
			} else {
				settings, err := opts.settings()
				if err != nil {
					return err
				}
				source = settings
			}

			h := memory.NewHost(1)
			docs := make([]host.Document, len(args))
			for i, path := range args {
				docs[i] = h.NewDocument(path)
			}
			tracker := access.NewTracker()
			engine := limiter.NewEngine(h, tracker, limiter.WithConfigSource(source))
			ordered := engine.Order(docs)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "# %s\n", engine.Config().CloseOrder)
			for i, doc := range ordered {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, doc.FileName(), formatAccessTime(tracker.LastAccessTime(doc)))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&orderName, "order", "", "close order: left, right, active or inactive")
	return cmd
}

func formatAccessTime(seconds float64) string {
	if seconds == 0 {
		return "unknown"
	}
	whole, frac := math.Modf(seconds)
	return time.Unix(int64(whole), int64(frac*float64(time.Second))).UTC().Format(time.RFC3339)
}

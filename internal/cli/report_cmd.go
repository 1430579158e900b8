package cli

import (
	"fmt"

	"github.com/alexanderramin/focusbox/internal/aggregate"
	"github.com/alexanderramin/focusbox/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summaries of recorded work",
	}

	cmd.AddCommand(
		newReportDaysCmd(app),
		newReportTimelineCmd(app),
	)

	return cmd
}

func newReportDaysCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "days",
		Short: "Measurements grouped by calendar day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			groups := app.View.Days()
			if days > 0 && len(groups) > days {
				groups = groups[:days]
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDays(groups, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of most recent days with entries to show (0 for all)")
	return cmd
}

func newReportTimelineCmd(app *App) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Today's measurements on a 24-hour strip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			now := app.now()

			fmt.Fprintln(out, formatter.Header("Today"))
			fmt.Fprint(out, formatter.FormatTimeline(app.View.Timeline(now), width))
			fmt.Fprintf(out, "\n%s\n",
				formatter.GoalLine(app.minutesToday(ctx), app.Settings.DailyWorkMinutes(), 20))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", aggregate.MinutesPerDay/30, "Width of the strip in cells")
	return cmd
}

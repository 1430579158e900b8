package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/focusbox/internal/cli/formatter"
	"github.com/alexanderramin/focusbox/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newMeasureCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "measure",
		Aliases: []string{"m"},
		Short:   "Track free-form work measurements",
	}

	cmd.AddCommand(
		newMeasureStartCmd(app),
		newMeasureStopCmd(app),
		newMeasureStatusCmd(app),
		newMeasureAddCmd(app),
		newMeasureEditCmd(app),
		newMeasureDeleteCmd(app),
		newMeasureRestoreCmd(app),
		newMeasureListCmd(app),
	)

	return cmd
}

func newMeasureStartCmd(app *App) *cobra.Command {
	var detail string

	cmd := &cobra.Command{
		Use:   "start LABEL",
		Short: "Start measuring, recording any measurement already running",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			label := strings.Join(args, " ")

			previous, err := app.Tracker.Start(ctx, label, detail)
			if err != nil {
				return err
			}
			if previous != nil {
				fmt.Fprintf(out, "Recorded %s\n", formatter.FormatMeasurement(*previous, app.location()))
				app.checkDailyGoal(ctx)
			}
			fmt.Fprintf(out, "Started %s at %s\n",
				formatter.Bold(domain.NormalizeLabel(label)), app.now().Format("15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&detail, "detail", "", "Free-form detail stored with the measurement")
	return cmd
}

func newMeasureStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop and record the running measurement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := app.Tracker.Stop(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s\n", formatter.FormatMeasurement(*m, app.location()))
			app.checkDailyGoal(ctx)
			return nil
		},
	}
}

func newMeasureStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running measurement and today's total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			active, err := app.Tracker.Current(ctx)
			if err != nil {
				return err
			}
			if active == nil {
				fmt.Fprintln(out, formatter.Dim("Nothing is running."))
			} else {
				elapsed := app.Clock.Now().Sub(active.Start)
				line := fmt.Sprintf("%s %s since %s (%s)",
					formatter.StyleGreen.Render("●"),
					formatter.Bold(active.Label),
					active.Start.In(app.location()).Format("15:04"),
					formatter.FormatDuration(elapsed))
				if active.Detail != "" {
					line += " " + formatter.Dim(active.Detail)
				}
				fmt.Fprintln(out, line)
			}

			fmt.Fprintf(out, "Today: %s\n",
				formatter.GoalLine(app.minutesToday(ctx), app.Settings.DailyWorkMinutes(), 20))
			app.checkDailyGoal(ctx)
			return nil
		},
	}
}

func newMeasureAddCmd(app *App) *cobra.Command {
	var detail string
	var span spanFlags

	cmd := &cobra.Command{
		Use:   "add [LABEL]",
		Short: "Record a finished measurement",
		Long: "Record a finished measurement. Without a label on an interactive " +
			"terminal, the fields are asked for in a form.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := app.now()

			var m domain.Measurement
			if len(args) == 0 {
				if !app.interactive() {
					return fmt.Errorf("a label is required when not running interactively")
				}
				var err error
				if m, err = promptMeasurement(app, now); err != nil {
					return err
				}
			} else {
				start, end, err := span.resolve(domain.Measurement{}, now)
				if err != nil {
					return err
				}
				m = domain.Measurement{
					Label:  strings.Join(args, " "),
					Detail: detail,
					Start:  start,
					End:    end,
				}
			}
			m.ID = uuid.New().String()

			stored, err := app.Store.AddMeasurement(ctx, m)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", formatter.FormatMeasurement(stored, app.location()))
			app.checkDailyGoal(ctx)
			return nil
		},
	}

	cmd.Flags().StringVar(&detail, "detail", "", "Free-form detail")
	addSpanFlags(cmd.Flags(), &span)
	return cmd
}

// promptMeasurement runs the interactive add form.
func promptMeasurement(app *App, now time.Time) (domain.Measurement, error) {
	labels := make([]string, 0)
	for name := range app.Store.Catalog() {
		labels = append(labels, name)
	}
	sort.Strings(labels)

	var v addMeasurementValues
	if err := addMeasurementForm(&v, labels).Run(); err != nil {
		return domain.Measurement{}, err
	}
	start, err := parseWhen(v.Start, now)
	if err != nil {
		return domain.Measurement{}, err
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(v.Minutes))
	if err != nil {
		return domain.Measurement{}, domain.NewValidationError("minutes", "must be a whole number")
	}
	return domain.Measurement{
		Label:  v.Label,
		Detail: v.Detail,
		Start:  start,
		End:    start.Add(time.Duration(minutes) * time.Minute),
	}, nil
}

func newMeasureEditCmd(app *App) *cobra.Command {
	var label, detail string
	var span spanFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a recorded measurement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveMeasurementID(app, args[0])
			if err != nil {
				return err
			}
			m, err := app.Store.Measurement(id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("label") {
				m.Label = label
			}
			if cmd.Flags().Changed("detail") {
				m.Detail = detail
			}
			if m.Start, m.End, err = span.resolve(m, app.now()); err != nil {
				return err
			}

			updated, err := app.Store.UpdateMeasurement(ctx, m)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", formatter.FormatMeasurement(updated, app.location()))
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "New label")
	cmd.Flags().StringVar(&detail, "detail", "", "New detail")
	addSpanFlags(cmd.Flags(), &span)
	return cmd
}

func newMeasureDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a measurement (undo with restore)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveMeasurementID(app, args[0])
			if err != nil {
				return err
			}

			if !yes && app.interactive() {
				m, err := app.Store.Measurement(id)
				if err != nil {
					return err
				}
				ok := true
				form := confirmForm("Delete measurement?",
					formatter.FormatMeasurement(m, app.location()), &ok)
				if err := form.Run(); err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			removed, err := app.Trash.Delete(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n%s\n",
				formatter.FormatMeasurement(removed, app.location()),
				formatter.Dim("Run `focusbox measure restore` to undo."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newMeasureRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore the most recently deleted measurement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.Trash.Restore(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", formatter.FormatMeasurement(m, app.location()))
			return nil
		},
	}
}

func newMeasureListCmd(app *App) *cobra.Command {
	var days int
	var label string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded measurements, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cutoff time.Time
			if days > 0 {
				now := app.now()
				y, mo, d := now.Date()
				cutoff = time.Date(y, mo, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(days - 1))
			}
			want := domain.NormalizeLabel(label)

			var ms []domain.Measurement
			for _, m := range app.Store.Measurements() {
				if !cutoff.IsZero() && m.Start.Before(cutoff) {
					continue
				}
				if want != "" && domain.NormalizeLabel(m.Label) != want {
					continue
				}
				ms = append(ms, m)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMeasurements(ms, app.Store.Catalog(), app.location()))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Only show the last N calendar days (0 for all)")
	cmd.Flags().StringVar(&label, "label", "", "Only show measurements with this label")
	return cmd
}

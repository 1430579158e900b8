package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/focusbox/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect settings",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg := app.Settings.Current()

			file := app.Settings.File()
			if file == "" {
				file = formatter.Dim("(none, using defaults)")
			}
			fmt.Fprintf(out, "Config file: %s\n\n", file)

			zone := cfg.Timer.Timezone
			if zone == "" {
				zone = "local"
			}
			rows := [][]string{
				{"timer.work_minutes", strconv.Itoa(cfg.Timer.WorkMinutes)},
				{"timer.break_minutes", strconv.Itoa(cfg.Timer.BreakMinutes)},
				{"timer.daily_work_minutes", strconv.Itoa(cfg.Timer.DailyWorkMinutes)},
				{"timer.tick_ms", strconv.Itoa(cfg.Timer.TickMillis)},
				{"timer.timezone", zone},
				{"sound.enabled", strconv.FormatBool(cfg.Sound.Enabled)},
				{"sound.volume", strconv.FormatFloat(cfg.Sound.Volume, 'f', -1, 64)},
				{"sound.command", cfg.Sound.Command},
				{"sound.dir", cfg.Sound.Dir},
				{"notifications.banner", strconv.FormatBool(cfg.Notifications.Banner)},
				{"logging.level", cfg.Logging.Level},
				{"logging.format", cfg.Logging.Format},
				{"logging.file", cfg.Logging.File},
				{"paths.database", cfg.Paths.Database},
				{"debug", strconv.FormatBool(cfg.Debug)},
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"KEY", "VALUE"}, rows))
			return nil
		},
	}
}

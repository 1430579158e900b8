package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/focusbox/internal/aggregate"
	"github.com/alexanderramin/focusbox/internal/clock"
	"github.com/alexanderramin/focusbox/internal/config"
	"github.com/alexanderramin/focusbox/internal/service"
	"github.com/alexanderramin/focusbox/internal/timer"
	"github.com/spf13/cobra"
)

// ConfigFlag names the persistent flag selecting the config file.
const ConfigFlag = "config"

// App holds everything CLI commands need. Fields are wired in main.
type App struct {
	Store    *service.SessionStore
	Tracker  service.TrackerService
	Trash    service.TrashService
	Exchange service.ExchangeService
	View     *aggregate.View

	Settings *config.Live
	Effects  timer.Effects
	Guards   timer.GuardStore
	Clock    clock.Clock
	Logger   *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) location() *time.Location {
	return a.Settings.Current().Timer.Location()
}

func (a *App) now() time.Time {
	return a.Clock.Now().In(a.location())
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// dailyNotifier returns the daily-goal notifier with its guard loaded.
func (a *App) dailyNotifier(ctx context.Context) *timer.ThresholdNotifier {
	opts := []timer.NotifierOption{
		timer.WithLocation(a.location()),
		timer.WithNotifierLogger(a.logger()),
	}
	if a.Guards != nil {
		opts = append(opts, timer.WithGuardStore(a.Guards))
	}
	n := timer.NewDailyWorkNotifier(a.Effects, opts...)
	if err := n.Load(ctx); err != nil {
		a.logger().Warn("daily notifier guard unavailable", "error", err)
	}
	return n
}

// minutesToday sums today's recorded minutes plus the running measurement.
func (a *App) minutesToday(ctx context.Context) int {
	active, err := a.Tracker.Current(ctx)
	if err != nil {
		a.logger().Warn("reading active measurement", "error", err)
		active = nil
	}
	return aggregate.MinutesToday(a.Store.Measurements(), active, a.now(), a.location())
}

// checkDailyGoal fires the daily-goal notification if today's total has just
// reached the configured goal.
func (a *App) checkDailyGoal(ctx context.Context) {
	n := a.dailyNotifier(ctx)
	n.Observe(ctx, a.minutesToday(ctx), a.Settings.DailyWorkMinutes(), a.now())
}

// NewRootCmd creates the top-level "focusbox" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "focusbox",
		Short:         "Focus timer and work tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Read by main before the App is built; declared here for help and parsing.
	root.PersistentFlags().String(ConfigFlag, "", "Config file (default "+config.ConfigFile()+")")

	root.AddCommand(
		newMeasureCmd(app),
		newBoxCmd(app),
		newReportCmd(app),
		newCatalogCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newConfigCmd(app),
	)

	return root
}

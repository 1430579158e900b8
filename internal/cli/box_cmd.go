package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/focusbox/internal/cli/formatter"
	"github.com/alexanderramin/focusbox/internal/config"
	"github.com/alexanderramin/focusbox/internal/domain"
	"github.com/alexanderramin/focusbox/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoxCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "box",
		Short: "Run and review fixed-length work/break boxes",
	}

	cmd.AddCommand(
		newBoxRunCmd(app),
		newBoxListCmd(app),
	)

	return cmd
}

func newBoxRunCmd(app *App) *cobra.Command {
	var headless bool
	var cycles int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the box timer",
		Long: "Run the box timer. On a terminal this opens a full-screen view; " +
			"with --headless (or without a terminal) boxes start automatically " +
			"and state changes are printed as lines.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if headless || !app.interactive() {
				return runHeadless(ctx, app, cmd.OutOrStdout(), cycles)
			}

			p := tea.NewProgram(newBoxModel(ctx, app), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&headless, "headless", false, "Print state changes instead of opening the interactive view")
	cmd.Flags().IntVar(&cycles, "cycles", 0, "Stop after N work/break cycles in headless mode (0 runs until interrupted)")
	return cmd
}

func newBoxListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List completed boxes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			boxes := app.Store.Boxes()
			if limit > 0 && len(boxes) > limit {
				boxes = boxes[:limit]
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBoxes(boxes, app.location()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum boxes to show (0 for all)")
	return cmd
}

// newMachine builds a box machine reading durations from the live settings.
func newMachine(app *App) *timer.Machine {
	return timer.NewMachine(app.Settings, app.Effects, app.Store,
		timer.WithStrict(app.Settings.Current().Debug),
		timer.WithMachineLogger(app.logger()),
	)
}

// headlessRun drives a machine without a terminal. Boxes start
// automatically whenever the machine is ready.
type headlessRun struct {
	app     *App
	machine *timer.Machine
	daily   *timer.ThresholdNotifier
	out     io.Writer

	cycles    int
	completed int
	last      domain.BoxState
}

func newHeadlessRun(ctx context.Context, app *App, out io.Writer, cycles int) *headlessRun {
	return &headlessRun{
		app:     app,
		machine: newMachine(app),
		daily:   app.dailyNotifier(ctx),
		out:     out,
		cycles:  cycles,
		last:    domain.BoxReady,
	}
}

// step ticks once and reports whether the requested cycles are done.
func (h *headlessRun) step(ctx context.Context, now time.Time) bool {
	snap := h.machine.Tick(ctx, now)

	if snap.State != h.last {
		fmt.Fprintf(h.out, "%s  %s  %s\n",
			now.In(h.app.location()).Format("15:04:05"),
			formatter.StateIndicator(snap.State),
			snap.Clock())
		if h.last == domain.BoxFinished && snap.State == domain.BoxReady {
			h.completed++
		}
		h.last = snap.State
	}
	if snap.Err != nil {
		fmt.Fprintf(h.out, "Error: %v\n", snap.Err)
		h.machine.DismissError()
	}

	h.daily.Observe(ctx, h.app.minutesToday(ctx), h.app.Settings.DailyWorkMinutes(), now)

	if snap.State == domain.BoxReady {
		if h.cycles > 0 && h.completed >= h.cycles {
			return true
		}
		if snap.Pending == nil {
			h.machine.RequestTransition()
		}
	}
	return false
}

// runHeadless ticks until ctx is done or the requested cycles complete. A
// settings reload restarts the ticker at the new tick interval; durations
// take effect from the next phase.
func runHeadless(ctx context.Context, app *App, out io.Writer, cycles int) error {
	h := newHeadlessRun(ctx, app, out, cycles)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reloaded := make(chan struct{}, 1)
	app.Settings.OnChange(func(config.Config) {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})

	for {
		cfg := app.Settings.Current()
		runCtx, stopRun := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() {
			done <- timer.Run(runCtx, app.Clock, cfg.Timer.TickInterval(), func(now time.Time) {
				if h.step(ctx, now) {
					cancel()
				}
			})
		}()

		select {
		case <-reloaded:
			stopRun()
			<-done
			next := app.Settings.Current().Timer
			fmt.Fprintf(out, "Settings reloaded: work %s, break %s, tick %s\n",
				formatter.FormatMinutes(next.WorkMinutes),
				formatter.FormatMinutes(next.BreakMinutes),
				next.TickInterval())
		case err := <-done:
			stopRun()
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

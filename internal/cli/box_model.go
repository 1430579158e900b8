package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focusbox/internal/cli/formatter"
	"github.com/alexanderramin/focusbox/internal/domain"
	"github.com/alexanderramin/focusbox/internal/timer"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// boxTickMsg asks the model to tick the machine. The time is read from the
// app clock, not from the message.
type boxTickMsg struct{}

type boxKeyMap struct {
	Toggle  key.Binding
	Dismiss key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k boxKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Help, k.Quit}
}

func (k boxKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Toggle, k.Dismiss}, {k.Help, k.Quit}}
}

func newBoxKeyMap() boxKeyMap {
	return boxKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start/stop"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dismiss error"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// boxModel is the interactive box timer. It owns the machine; every tick
// is handled inside Update and the next tick is scheduled only afterwards,
// so ticks never overlap.
type boxModel struct {
	ctx      context.Context
	app      *App
	machine  *timer.Machine
	daily    *timer.ThresholdNotifier
	interval time.Duration

	snap  timer.Snapshot
	today int

	keys  boxKeyMap
	help  help.Model
	bar   progress.Model
	width int
}

func newBoxModel(ctx context.Context, app *App) *boxModel {
	bar := progress.New(progress.WithSolidFill(string(formatter.ColorGreen)), progress.WithoutPercentage())
	bar.Width = 40

	return &boxModel{
		ctx:      ctx,
		app:      app,
		machine:  newMachine(app),
		daily:    app.dailyNotifier(ctx),
		interval: app.Settings.Current().Timer.TickInterval(),
		snap:     timer.Snapshot{State: domain.BoxReady},
		keys:     newBoxKeyMap(),
		help:     help.New(),
		bar:      bar,
	}
}

func (m *boxModel) Init() tea.Cmd {
	return m.scheduleTick()
}

func (m *boxModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return boxTickMsg{} })
}

func (m *boxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.Width = min(max(msg.Width-8, 10), 60)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.machine.RequestTransition()
			pending := domain.Transition{To: m.machine.State().Progressed(), Trigger: domain.TriggerManual}
			m.snap.Pending = &pending
		case key.Matches(msg, m.keys.Dismiss):
			m.machine.DismissError()
			m.snap.Err = nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case boxTickMsg:
		now := m.app.Clock.Now()
		m.snap = m.machine.Tick(m.ctx, now)
		m.today = m.app.minutesToday(m.ctx)
		m.daily.Observe(m.ctx, m.today, m.app.Settings.DailyWorkMinutes(), now)
		return m, m.scheduleTick()
	}
	return m, nil
}

// fraction is how much of the current phase has elapsed.
func (m *boxModel) fraction() float64 {
	var length time.Duration
	switch m.snap.State {
	case domain.BoxRunning:
		length = m.app.Settings.WorkDuration()
	case domain.BoxFinished:
		length = m.app.Settings.BreakDuration()
	default:
		return 0
	}
	if length <= 0 {
		return 1
	}
	return min(max(1-float64(m.snap.Remaining)/float64(length), 0), 1)
}

func (m *boxModel) View() string {
	var b strings.Builder

	clock := m.snap.Clock()
	if m.snap.State == domain.BoxReady {
		clock = timer.FormatRemaining(m.app.Settings.WorkDuration())
	}
	fmt.Fprintf(&b, "%s  %s\n\n", formatter.StateIndicator(m.snap.State), formatter.Bold(clock))
	b.WriteString(m.bar.ViewAs(m.fraction()))
	b.WriteString("\n\n")

	if m.snap.Pending != nil {
		b.WriteString(formatter.Dim("→ " + string(m.snap.Pending.To) + " on next tick"))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Today %s\n",
		formatter.GoalLine(m.today, m.app.Settings.DailyWorkMinutes(), 20))

	if m.snap.Err != nil {
		b.WriteString("\n")
		b.WriteString(formatter.StyleRed.Render("Error: " + m.snap.Err.Error()))
		b.WriteString(formatter.Dim("  (d to dismiss)"))
		b.WriteString("\n")
	}

	content := formatter.RenderBox("focusbox", b.String())
	return content + "\n" + m.help.View(m.keys) + "\n"
}

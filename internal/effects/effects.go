// Package effects delivers audible cues and desktop notifications. Every
// external program runs in the background; callers never wait on it.
package effects

import (
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
)

// Runner starts an external program without waiting for it to exit.
type Runner interface {
	Start(name string, args ...string) error
}

// execRunner starts commands and reaps each one in its own goroutine.
type execRunner struct {
	reap func(*exec.Cmd)
}

func newExecRunner() execRunner {
	return execRunner{reap: func(cmd *exec.Cmd) { _ = cmd.Wait() }}
}

func (r execRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go r.reap(cmd)
	return nil
}

// AudioPlayer plays a named cue at volume in [0,1].
type AudioPlayer interface {
	PlayCue(name string, volume float64) error
}

// Notifier shows a desktop notification.
type Notifier interface {
	Notify(title, body string) error
}

// Gate reports the user's current sound and banner preferences.
type Gate interface {
	SoundEnabled() bool
	SoundVolume() float64
	BannerEnabled() bool
}

// Dispatcher applies the preferences in Gate and swallows delivery errors
// after logging them.
type Dispatcher struct {
	gate     Gate
	player   AudioPlayer
	notifier Notifier
	logger   *slog.Logger
}

func NewDispatcher(gate Gate, player AudioPlayer, notifier Notifier, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{gate: gate, player: player, notifier: notifier, logger: logger}
}

// NewSystemDispatcher wires the platform player and notifier.
func NewSystemDispatcher(gate Gate, soundDir, soundCommand string, logger *slog.Logger) *Dispatcher {
	player := NewCuePlayer(newExecRunner(), os.Stdout, runtime.GOOS,
		WithSoundDir(soundDir), WithSoundCommand(soundCommand))
	notifier := NewDesktopNotifier(newExecRunner(), runtime.GOOS)
	return NewDispatcher(gate, player, notifier, logger)
}

func (d *Dispatcher) Cue(name string) {
	if !d.gate.SoundEnabled() {
		return
	}
	if err := d.player.PlayCue(name, d.gate.SoundVolume()); err != nil {
		d.logger.Warn("cue playback failed", "cue", name, "error", err)
	}
}

func (d *Dispatcher) Notify(title, body string) {
	if !d.gate.BannerEnabled() {
		return
	}
	if err := d.notifier.Notify(title, body); err != nil {
		d.logger.Warn("notification failed", "title", title, "error", err)
	}
}

// ringBell writes the terminal bell character.
func ringBell(w io.Writer) error {
	_, err := w.Write([]byte{'\a'})
	return err
}

package effects

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
)

// darwinSounds maps cues to built-in macOS alert sounds.
var darwinSounds = map[string]string{
	"begin":      "/System/Library/Sounds/Tink.aiff",
	"work-end":   "/System/Library/Sounds/Glass.aiff",
	"break-end":  "/System/Library/Sounds/Hero.aiff",
	"daily-goal": "/System/Library/Sounds/Purr.aiff",
}

// CuePlayer plays cue sounds with the platform's command-line player and
// falls back to the terminal bell.
type CuePlayer struct {
	runner  Runner
	bell    io.Writer
	goos    string
	dir     string
	command string
}

type CueOption func(*CuePlayer)

// WithSoundDir looks for <dir>/<cue>.* before the platform defaults.
func WithSoundDir(dir string) CueOption {
	return func(p *CuePlayer) { p.dir = dir }
}

// WithSoundCommand replaces the platform player; the file path is passed as
// the only argument.
func WithSoundCommand(cmd string) CueOption {
	return func(p *CuePlayer) { p.command = cmd }
}

func NewCuePlayer(runner Runner, bell io.Writer, goos string, opts ...CueOption) *CuePlayer {
	p := &CuePlayer{runner: runner, bell: bell, goos: goos}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *CuePlayer) PlayCue(name string, volume float64) error {
	path := p.cueFile(name)

	switch {
	case path != "" && p.command != "":
		return p.runner.Start(p.command, path)
	case path != "" && p.goos == "darwin":
		return p.runner.Start("afplay", "-v", strconv.FormatFloat(volume, 'f', 2, 64), path)
	case path != "" && p.goos == "linux":
		// paplay volume is linear, 65536 = 100%.
		return p.runner.Start("paplay", fmt.Sprintf("--volume=%d", int(volume*65536)), path)
	default:
		return ringBell(p.bell)
	}
}

func (p *CuePlayer) cueFile(name string) string {
	if p.dir != "" {
		if matches, _ := filepath.Glob(filepath.Join(p.dir, name+".*")); len(matches) > 0 {
			return matches[0]
		}
	}
	if p.goos == "darwin" {
		return darwinSounds[name]
	}
	return ""
}

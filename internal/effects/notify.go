package effects

import (
	"fmt"
	"strings"
)

// DesktopNotifier posts banners with osascript on macOS and notify-send on
// Linux.
type DesktopNotifier struct {
	runner Runner
	goos   string
}

func NewDesktopNotifier(runner Runner, goos string) *DesktopNotifier {
	return &DesktopNotifier{runner: runner, goos: goos}
}

func (n *DesktopNotifier) Notify(title, body string) error {
	switch n.goos {
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s", appleScriptQuote(body), appleScriptQuote(title))
		return n.runner.Start("osascript", "-e", script)
	case "linux":
		return n.runner.Start("notify-send", "--app-name=focusbox", title, body)
	default:
		return fmt.Errorf("desktop notifications are not supported on %s", n.goos)
	}
}

func appleScriptQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

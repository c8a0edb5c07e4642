package tui

import (
	"strings"

	"github.com/muesli/termenv"
)

// Banner returns the styled wordmark shown at the start of a study run.
func Banner() string {
	p := termenv.ColorProfile()

	s1 := termenv.String("        _     _             _ _       ").Foreground(p.Color("#818cf8"))
	s2 := termenv.String("   ___ | |___| |_ _   _  __| (_) ___  ").Foreground(p.Color("#a78bfa"))
	s3 := termenv.String("  / _ \\| / __| __| | | |/ _` | |/ _ \\ ").Foreground(p.Color("#c084fc"))
	s4 := termenv.String(" | (_) | \\__ \\ |_| |_| | (_| | | (_) |").Foreground(p.Color("#e879f9"))
	s5 := termenv.String("  \\___/|_|___/\\__|\\__,_|\\__,_|_|\\___/ ").Foreground(p.Color("#f472b6"))
	tag := termenv.String("  session-scoped OLS regression studies").Faint()

	return strings.Join([]string{
		s1.String(), s2.String(), s3.String(), s4.String(), s5.String(), "", tag.String(), "",
	}, "\n")
}

// Warn styles a diagnostic line so model warnings stand out in the report.
func Warn(line string) string {
	p := termenv.ColorProfile()
	return termenv.String(line).Foreground(p.Color("#f59e0b")).String()
}

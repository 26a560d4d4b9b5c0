package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the formation banner with the version line.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	if !IsTerminal(w) {
		p = termenv.Ascii
	}
	// Pitch green into chalk white
	lines := []struct {
		text  string
		color string
	}{
		{"   ___                       _   _          ", "#15803d"},
		{"  / __\\__  _ __ _ __ ___   __ _| |_(_) ___  _ __ ", "#16a34a"},
		{" / _\\/ _ \\| '__| '_ ` _ \\ / _` | __| |/ _ \\| '_ \\", "#22c55e"},
		{"/ / | (_) | |  | | | | | | (_| | |_| | (_) | | | |", "#4ade80"},
		{"\\/   \\___/|_|  |_| |_| |_|\\__,_|\\__|_|\\___/|_| |_|", "#bbf7d0"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, p.String("  v"+version).Faint())
	fmt.Fprintln(w)
}

// Status formats a one-line status message, green when ok and red otherwise.
func Status(w io.Writer, ok bool, format string, args ...any) {
	p := termenv.ColorProfile()
	if !IsTerminal(w) {
		p = termenv.Ascii
	}
	mark, color := "✔", "#22c55e"
	if !ok {
		mark, color = "✘", "#ef4444"
	}
	fmt.Fprintf(w, "%s %s\n", p.String(mark).Foreground(p.Color(color)), fmt.Sprintf(format, args...))
}

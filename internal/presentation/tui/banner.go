package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the waypoint ASCII art banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Using a subtle gradient-like color scheme (Teal/Cyan)
	lines := []struct {
		text  string
		color string
	}{
		{" __      __                      _       _   ", "#2dd4bf"},
		{" \\ \\    / /_ _ _  _ _ __  ___ (_)_ _  | |_ ", "#22d3ee"},
		{"  \\ \\/\\/ / _` | || | '_ \\/ _ \\| | ' \\ |  _|", "#38bdf8"},
		{"   \\_/\\_/\\__,_|\\_, | .__/\\___/|_|_||_| \\__|", "#60a5fa"},
		{"               |__/|_|                      ", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the clicktree banner, colored for profile p.
func PrintBanner(w io.Writer, p termenv.Profile) {
	lines := []struct {
		text  string
		color string
	}{
		{"       _ _      _    _                 ", "#818cf8"},
		{"   ___| (_) ___| | _| |_ _ __ ___  ___ ", "#a78bfa"},
		{"  / __| | |/ __| |/ / __| '__/ _ \\/ _ \\", "#c084fc"},
		{" | (__| | | (__|   <| |_| | |  __/  __/", "#e879f9"},
		{"  \\___|_|_|\\___|_|\\_\\\\__|_|  \\___|\\___|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

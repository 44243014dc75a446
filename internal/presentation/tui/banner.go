package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Dwengo ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Teal to blue, the Dwengo palette.
	lines := []struct {
		text, color string
	}{
		{"  ____                                    ", "#2dd4bf"},
		{" |  _ \\__      _____ _ __   __ _  ___  ", "#22d3ee"},
		{" | | | \\ \\ /\\ / / _ \\ '_ \\ / _` |/ _ \\ ", "#38bdf8"},
		{" | |_| |\\ V  V /  __/ | | | (_| | (_) |", "#60a5fa"},
		{" |____/  \\_/\\_/ \\___|_| |_|\\__, |\\___/ ", "#818cf8"},
		{"                           |___/        ", "#a78bfa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

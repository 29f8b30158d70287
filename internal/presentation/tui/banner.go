package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the stencil banner to w with a violet gradient.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	rows := []struct {
		text  string
		color string
	}{
		{"      _                  _ _ ", "#818cf8"},
		{"  ___| |_ ___ _ __   ___(_) |", "#a78bfa"},
		{" / __| __/ _ \\ '_ \\ / __| | |", "#c084fc"},
		{" \\__ \\ ||  __/ | | | (__| | |", "#e879f9"},
		{" |___/\\__\\___|_| |_|\\___|_|_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, r := range rows {
		fmt.Fprintln(w, out.String(r.text).Foreground(out.Color(r.color)))
	}
	fmt.Fprintln(w)
}

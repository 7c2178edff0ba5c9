package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the monitor banner to w.
func PrintBanner(w io.Writer, version string) {
	o := termenv.NewOutput(w)
	s1 := o.String("  ___ ___ ___              _    ").Foreground(o.Color("#818cf8"))
	s2 := o.String(" / __| __/ __|__ __ _____| |__ ").Foreground(o.Color("#a78bfa"))
	s3 := o.String(" \\__ \\ _|\\__ \\ V  V / -_) '_ \\").Foreground(o.Color("#c084fc"))
	s4 := o.String(" |___/_| |___/\\_/\\_/\\___|_.__/").Foreground(o.Color("#e879f9"))
	v := o.String("  monitor " + version).Faint()

	fmt.Fprintln(w)
	fmt.Fprintln(w, s1)
	fmt.Fprintln(w, s2)
	fmt.Fprintln(w, s3)
	fmt.Fprintln(w, s4)
	fmt.Fprintln(w, v)
	fmt.Fprintln(w)
}

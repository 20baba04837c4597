package diagnostic

import (
	"fmt"
	"io"
	"time"

	"github.com/efritz/pentimento"
)

// updateInterval is the duration between animation frames in WithSpinner.
var updateInterval = time.Second / 4

// ConsoleReporter prints each diagnostic on its own plain line as it is
// reported. It draws no animation and prints no summary line; WithSpinner
// is the animated helper in this package.
type ConsoleReporter struct {
	out      io.Writer
	quiet    bool
	reported int
}

// NewConsoleReporter returns a ConsoleReporter writing to out. When quiet is
// true, only error-level diagnostics are printed.
func NewConsoleReporter(out io.Writer, quiet bool) *ConsoleReporter {
	return &ConsoleReporter{out: out, quiet: quiet}
}

func (r *ConsoleReporter) Report(d Diagnostic) {
	if r.quiet && d.Severity != Error {
		return
	}

	r.reported++
	fmt.Fprintln(r.out, d.String())
}

// Reported returns the number of diagnostics printed so far.
func (r *ConsoleReporter) Reported() int {
	return r.reported
}

// WithSpinner runs fn while animating name on the console, the same shape
// as the teacher's output.WithProgress, then prints a one-line summary.
// When animate is false it prints name once, runs fn, and prints no
// summary.
func WithSpinner(name string, animate bool, fn func()) {
	if !animate {
		fmt.Println(name)
		fn()
		return
	}

	ticker := pentimento.NewAnimatedString([]string{"⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏", "⠋", "⠙", "⠹"}, updateInterval)

	fmt.Printf("%s %s... ", ticker, name)
	_ = pentimento.PrintProgress(func(printer *pentimento.Printer) error {
		defer func() { _ = printer.Reset() }()
		fn()
		return nil
	})
	fmt.Printf("✔ %s... done\n", name)
}

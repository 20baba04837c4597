// Package diagnostic defines the severity-leveled findings the Validator
// reports and a console sink that prints them without halting the stream.
package diagnostic

import (
	"fmt"

	"github.com/sourcegraph/lsif-link/protocol"
)

// Severity classifies a diagnostic the way spec §4.3 requires: error, warn,
// or info. Only "error" contributes to a non-zero final exit code.
type Severity int

const (
	Info Severity = iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warn:
		return "warn"
	default:
		return "info"
	}
}

// Diagnostic is one schema or invariant violation, carrying the offending
// element's id and label for the reader to locate it in the dump.
type Diagnostic struct {
	Severity Severity
	Message  string
	ID       protocol.ID
	Label    string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (id=%s, label=%s)", d.Severity, d.Message, d.ID, d.Label)
}

// Sink receives diagnostics as the Validator finds them. Implementations
// must not block the caller for long; the stream continues regardless of
// what a Sink does with a report.
type Sink interface {
	Report(Diagnostic)
}

// Collector is a Sink that also remembers whether any error-level
// diagnostic was reported, so a CLI can derive its final exit code.
type Collector struct {
	diagnostics []Diagnostic
	hadError    bool
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Report(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
	if d.Severity == Error {
		c.hadError = true
	}
}

// All returns every diagnostic reported so far, in report order.
func (c *Collector) All() []Diagnostic {
	return c.diagnostics
}

// HadError reports whether any error-level diagnostic was reported.
func (c *Collector) HadError() bool {
	return c.hadError
}

// MultiSink reports every diagnostic to each of its sinks, in order.
type MultiSink []Sink

func (m MultiSink) Report(d Diagnostic) {
	for _, sink := range m {
		sink.Report(d)
	}
}

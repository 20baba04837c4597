// The program lsif-validate checks an LSIF dump against the wire schema and
// cross-element invariants without modifying it (spec §4.3, §6).
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin"
	"github.com/hashicorp/go-multierror"

	"github.com/sourcegraph/lsif-link/internal/diagnostic"
	"github.com/sourcegraph/lsif-link/internal/driver"
	"github.com/sourcegraph/lsif-link/internal/validate"
	"github.com/sourcegraph/lsif-link/log"
	"github.com/sourcegraph/lsif-link/protocol"
)

const version = "0.1.0"
const versionString = version + ", protocol version " + protocol.Version

func main() {
	if err := realMain(); err != nil {
		fmt.Fprint(os.Stderr, fmt.Sprintf("error: %v\n", err))
		os.Exit(-1)
	}
}

func realMain() error {
	var (
		inFile  string
		stdin   bool
		verbose bool
	)

	app := kingpin.New("lsif-validate", "lsif-validate checks an LSIF dump against the wire schema and stream invariants.").Version(versionString)
	app.HelpFlag.Short('h')
	app.VersionFlag.Short('v')
	app.HelpFlag.Hidden()

	app.Flag("in", "Specifies the file that contains a LSIF dump.").StringVar(&inFile)
	app.Flag("stdin", "Reads the dump from stdin.").Default("false").BoolVar(&stdin)
	app.Flag("verbose", "Log debug information while validating.").Default("false").BoolVar(&verbose)

	if _, err := app.Parse(os.Args[1:]); err != nil {
		return err
	}
	if verbose {
		log.SetLevel(log.Debug)
	}

	in, closeIn, err := openInput(inFile, stdin)
	if err != nil {
		return err
	}
	defer closeIn()

	collector := diagnostic.NewCollector()
	console := diagnostic.NewConsoleReporter(os.Stdout, false)
	sink := diagnostic.MultiSink{collector, console}

	d := &driver.Driver{
		Validator: validate.New(sink),
	}

	if err := d.Run(in); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return summarize(collector)
}

// summarize folds every error-level diagnostic into one summary error, so
// the process reports a single non-nil error while the console still saw
// each violation individually as the Validator found it (spec §7
// "SchemaError ... accumulates toward a non-zero final exit code").
func summarize(collector *diagnostic.Collector) error {
	if !collector.HadError() {
		return nil
	}

	var result *multierror.Error
	for _, d := range collector.All() {
		if d.Severity == diagnostic.Error {
			result = multierror.Append(result, errors.New(d.String()))
		}
	}
	return result.ErrorOrNil()
}

// openInput resolves the mutually exclusive --in/--stdin selection.
func openInput(inFile string, stdin bool) (io.Reader, func(), error) {
	switch {
	case inFile == "" && !stdin:
		return nil, nil, fmt.Errorf("either an input file using --in or --stdin must be specified")
	case inFile != "" && stdin:
		return nil, nil, fmt.Errorf("--in and --stdin are mutually exclusive")
	case stdin:
		return os.Stdin, func() {}, nil
	default:
		f, err := os.Open(inFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open dump file: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}
}

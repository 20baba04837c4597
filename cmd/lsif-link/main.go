// The program lsif-link rewrites an LSIF dump's monikers with package-scoped
// siblings and hashes each document into a canonical content blob (spec §1).
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin"

	"github.com/sourcegraph/lsif-link/internal/document"
	"github.com/sourcegraph/lsif-link/internal/driver"
	"github.com/sourcegraph/lsif-link/internal/linker"
	"github.com/sourcegraph/lsif-link/internal/util"
	"github.com/sourcegraph/lsif-link/internal/writer"
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
		packagePath string
		projectRoot string
		inFile      string
		stdin       bool
		outFile     string
		stdout      bool
		verbose     bool
	)

	app := kingpin.New("lsif-link", "lsif-link rewrites monikers to package-scoped siblings and hashes documents.").Version(versionString)
	app.HelpFlag.Short('h')
	app.VersionFlag.Short('v')
	app.HelpFlag.Hidden()

	app.Flag("package", "Specifies the package manifest location.").Default("./package.json").StringVar(&packagePath)
	app.Flag("projectRoot", "Specifies the project root. Defaults to the current working directory.").Default(".").StringVar(&projectRoot)
	app.Flag("in", "Specifies the file that contains a LSIF dump.").StringVar(&inFile)
	app.Flag("stdin", "Reads the dump from stdin.").Default("false").BoolVar(&stdin)
	app.Flag("out", "The output file the linked dump is saved to.").StringVar(&outFile)
	app.Flag("stdout", "Writes the linked dump to stdout.").Default("false").BoolVar(&stdout)
	app.Flag("verbose", "Log debug information about linking decisions.").Default("false").BoolVar(&verbose)

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

	if err := checkDistinctPaths(inFile, outFile); err != nil {
		return err
	}

	out, closeOut, err := openOutput(outFile, stdout)
	if err != nil {
		return err
	}
	defer closeOut()

	actor := writer.NewActor(out)

	var documentCount int
	d := &driver.Driver{
		Linker:    linker.New(projectRoot, packagePath),
		Assembler: document.New(),
		Writer:    actor,
		OnDocumentHash: func(docID protocol.ID, hash string) {
			documentCount++
			log.Debugf("lsif-link: document %s hashed to %s", docID, hash)
		},
	}

	start := time.Now()
	runErr := d.Run(in)

	if closeErr := actor.Close(); closeErr != nil && runErr == nil {
		runErr = fmt.Errorf("close writer: %w", closeErr)
	}
	if runErr != nil {
		return runErr
	}

	fmt.Printf("%d document(s) hashed\n", documentCount)
	fmt.Println("Processed in", util.HumanElapsed(start))
	return nil
}

// openInput resolves the mutually exclusive --in/--stdin selection (spec
// §6 "Mutually exclusive input/output selections must be respected").
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

// openOutput resolves the mutually exclusive --out/--stdout selection.
func openOutput(outFile string, stdout bool) (io.Writer, func(), error) {
	switch {
	case outFile == "" && !stdout:
		return nil, nil, fmt.Errorf("either an output file using --out or --stdout must be specified")
	case outFile != "" && stdout:
		return nil, nil, fmt.Errorf("--out and --stdout are mutually exclusive")
	case stdout:
		return os.Stdout, func() {}, nil
	default:
		f, err := os.Create(outFile)
		if err != nil {
			return nil, nil, fmt.Errorf("create dump file: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}
}

// checkDistinctPaths rejects --in and --out naming the same absolute path
// (spec §6 ConfigError).
func checkDistinctPaths(inFile, outFile string) error {
	if inFile == "" || outFile == "" {
		return nil
	}

	inAbs, err := filepath.Abs(inFile)
	if err != nil {
		return fmt.Errorf("resolve --in path: %w", err)
	}
	outAbs, err := filepath.Abs(outFile)
	if err != nil {
		return fmt.Errorf("resolve --out path: %w", err)
	}
	if inAbs == outAbs {
		return fmt.Errorf("--in and --out must not name the same file (%s)", inAbs)
	}
	return nil
}

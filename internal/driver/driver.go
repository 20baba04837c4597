// Package driver implements the streaming driver: it reads one LSIF element
// per line, hands each to whichever of the Linker, DocumentAssembler, and
// Validator care about it, and re-emits every element the components do not
// consume themselves (spec §4.4).
package driver

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/sourcegraph/lsif-link/internal/document"
	"github.com/sourcegraph/lsif-link/internal/linker"
	"github.com/sourcegraph/lsif-link/internal/validate"
	"github.com/sourcegraph/lsif-link/protocol"
)

// MaxToken bounds a single NDJSON line the way gomod.Decorate's scanner
// buffer does, so a document vertex's inlined contents can be arbitrarily
// long without truncating the scan.
const MaxToken = 1024 * 1024 * 1024

var fastJSON = jsoniter.ConfigFastest

// Driver wires the three components together over one input stream. Any
// field left nil is simply skipped: a validate-only run leaves Linker and
// Assembler nil, for instance.
type Driver struct {
	Linker    *linker.Linker
	Assembler *document.Assembler
	Validator *validate.Validator
	Writer    protocol.JSONWriter

	// OnDocumentHash, if set, is called with a document's canonical
	// content hash once its end event has been processed.
	OnDocumentHash func(docID protocol.ID, hash string)
}

// Run streams every element in in through the configured components. It
// returns the first error encountered; a Validator's findings, by contrast,
// go to its own sink and never halt the stream.
func (d *Driver) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxToken)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if err := d.process(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}

	return d.flushLinker()
}

func (d *Driver) process(line []byte) error {
	raw, err := protocol.ParseRawElement(line)
	if err != nil {
		return fmt.Errorf("parse element: %w", err)
	}

	if d.Linker != nil {
		if err := d.Linker.Queue().Observe(raw.ID); err != nil {
			return err
		}
	}

	if d.Validator != nil {
		if raw.Type == protocol.ElementVertex {
			d.Validator.ValidateVertex(raw)
		} else {
			d.Validator.ValidateEdge(raw)
		}
	}

	suppress, err := d.dispatch(raw, line)
	if err != nil {
		return err
	}

	if !suppress && d.Writer != nil {
		if err := d.writeRaw(line); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}

	return nil
}

// writeRaw passes an already-serialized line through the Writer byte for
// byte, rather than re-marshaling a decoded struct that may drop unknown
// properties the source stream carried.
func (d *Driver) writeRaw(line []byte) error {
	return d.Writer.Write(json.RawMessage(append([]byte(nil), line...)))
}

// writeEmitted writes already-constructed elements (carrying final ids)
// directly, in order.
func (d *Driver) writeEmitted(elements []interface{}) error {
	if d.Writer == nil {
		return nil
	}
	for _, el := range elements {
		if err := d.Writer.Write(el); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	return nil
}

func (d *Driver) dispatch(raw protocol.RawElement, line []byte) (suppress bool, err error) {
	if raw.Type == protocol.ElementVertex {
		return d.dispatchVertex(protocol.VertexLabel(raw.Label), line)
	}
	return d.dispatchEdge(protocol.EdgeLabel(raw.Label), line)
}

func (d *Driver) dispatchVertex(label protocol.VertexLabel, line []byte) (bool, error) {
	switch label {
	case protocol.VertexEvent:
		var e protocol.Event
		if err := fastJSON.Unmarshal(line, &e); err != nil {
			return false, fmt.Errorf("decode event: %w", err)
		}
		if d.Linker != nil {
			d.Linker.HandleEvent(&e)
		}
		return false, d.dispatchDocumentEvent(&e)

	case protocol.VertexMoniker:
		var m protocol.Moniker
		if err := fastJSON.Unmarshal(line, &m); err != nil {
			return false, fmt.Errorf("decode moniker: %w", err)
		}
		forward := true
		if d.Linker != nil {
			forward = d.Linker.BufferMoniker(&m)
			if err := d.Linker.HandleMoniker(&m); err != nil {
				return false, fmt.Errorf("link moniker %s: %w", m.ID, err)
			}
		}
		if d.Assembler != nil {
			d.Assembler.IngestMoniker(&m)
		}
		return !forward, nil

	case protocol.VertexPackageInformation:
		var pkg protocol.PackageInformation
		if err := fastJSON.Unmarshal(line, &pkg); err != nil {
			return false, fmt.Errorf("decode package information: %w", err)
		}
		if d.Linker != nil {
			d.Linker.BufferPackageInformation(&pkg)
		}
		return false, nil

	case protocol.VertexDocument:
		if d.Assembler == nil {
			return false, nil
		}
		var doc protocol.Document
		if err := fastJSON.Unmarshal(line, &doc); err != nil {
			return false, fmt.Errorf("decode document: %w", err)
		}
		d.Assembler.IngestDocument(&doc)

	case protocol.VertexRange:
		if d.Assembler == nil {
			return false, nil
		}
		var r protocol.Range
		if err := fastJSON.Unmarshal(line, &r); err != nil {
			return false, fmt.Errorf("decode range: %w", err)
		}
		d.Assembler.IngestRange(&r)

	case protocol.VertexResultSet:
		if d.Assembler == nil {
			return false, nil
		}
		var rs protocol.ResultSet
		if err := fastJSON.Unmarshal(line, &rs); err != nil {
			return false, fmt.Errorf("decode result set: %w", err)
		}
		d.Assembler.IngestResultSet(&rs)

	case protocol.VertexHoverResult:
		if d.Assembler == nil {
			return false, nil
		}
		var h protocol.HoverResult
		if err := fastJSON.Unmarshal(line, &h); err != nil {
			return false, fmt.Errorf("decode hover result: %w", err)
		}
		d.Assembler.IngestHoverResult(&h)

	case protocol.VertexFoldingRangeResult:
		if d.Assembler == nil {
			return false, nil
		}
		var f protocol.FoldingRangeResult
		if err := fastJSON.Unmarshal(line, &f); err != nil {
			return false, fmt.Errorf("decode folding range result: %w", err)
		}
		d.Assembler.IngestFoldingRangeResult(&f)

	case protocol.VertexDocumentSymbolResult:
		if d.Assembler == nil {
			return false, nil
		}
		var ds protocol.DocumentSymbolResult
		if err := fastJSON.Unmarshal(line, &ds); err != nil {
			return false, fmt.Errorf("decode document symbol result: %w", err)
		}
		d.Assembler.IngestDocumentSymbolResult(&ds)

	case protocol.VertexDiagnosticResult:
		if d.Assembler == nil {
			return false, nil
		}
		var dr protocol.DiagnosticResult
		if err := fastJSON.Unmarshal(line, &dr); err != nil {
			return false, fmt.Errorf("decode diagnostic result: %w", err)
		}
		d.Assembler.IngestDiagnosticResult(&dr)
	}

	return false, nil
}

// dispatchDocumentEvent feeds a document's begin/end bracket to the
// Assembler. Project and group scopes are handled elsewhere (Linker.HandleEvent
// tracks group depth); every other event passes through untouched.
func (d *Driver) dispatchDocumentEvent(e *protocol.Event) error {
	if d.Assembler == nil || e.Scope != protocol.EventScopeDocument {
		return nil
	}

	switch e.Kind {
	case protocol.EventBegin:
		return d.Assembler.OnDocumentBegin(e.Data)
	case protocol.EventEnd:
		hash, err := d.Assembler.OnDocumentEnd(e.Data)
		if err != nil {
			return fmt.Errorf("assemble document %s: %w", e.Data, err)
		}
		if d.OnDocumentHash != nil {
			d.OnDocumentHash(e.Data, hash)
		}
	}
	return nil
}

func (d *Driver) dispatchEdge(label protocol.EdgeLabel, line []byte) (bool, error) {
	switch label {
	case protocol.EdgeAttach:
		if d.Linker != nil {
			var e protocol.AttachEdge
			if err := fastJSON.Unmarshal(line, &e); err != nil {
				return false, fmt.Errorf("decode attach edge: %w", err)
			}
			d.Linker.HandleAttachEdge(&e)
		}
		return false, nil

	case protocol.EdgePackageInformation:
		var e protocol.PackageInformationEdge
		if err := fastJSON.Unmarshal(line, &e); err != nil {
			return false, fmt.Errorf("decode packageInformation edge: %w", err)
		}
		if d.Linker != nil {
			if emitted, consumed := d.Linker.HandlePackageInformationEdge(&e); consumed {
				return true, d.writeEmitted(emitted)
			}
		}
		return false, nil

	case protocol.EdgeContains:
		if d.Assembler == nil {
			return false, nil
		}
		var c protocol.Contains
		if err := fastJSON.Unmarshal(line, &c); err != nil {
			return false, fmt.Errorf("decode contains edge: %w", err)
		}
		d.Assembler.IngestContains(&c)

	case protocol.EdgeNext:
		if d.Assembler == nil {
			return false, nil
		}
		var n protocol.Next
		if err := fastJSON.Unmarshal(line, &n); err != nil {
			return false, fmt.Errorf("decode next edge: %w", err)
		}
		d.Assembler.IngestNext(&n)

	case protocol.EdgeMoniker:
		if d.Assembler == nil {
			return false, nil
		}
		var m protocol.MonikerEdge
		if err := fastJSON.Unmarshal(line, &m); err != nil {
			return false, fmt.Errorf("decode moniker edge: %w", err)
		}
		d.Assembler.IngestMonikerEdge(&m)

	case protocol.EdgeTextDocumentHover:
		if d.Assembler == nil {
			return false, nil
		}
		var h protocol.TextDocumentHover
		if err := fastJSON.Unmarshal(line, &h); err != nil {
			return false, fmt.Errorf("decode textDocument/hover edge: %w", err)
		}
		d.Assembler.IngestTextDocumentHover(&h)

	case protocol.EdgeTextDocumentFoldingRange:
		if d.Assembler == nil {
			return false, nil
		}
		var f protocol.TextDocumentFoldingRange
		if err := fastJSON.Unmarshal(line, &f); err != nil {
			return false, fmt.Errorf("decode textDocument/foldingRange edge: %w", err)
		}
		d.Assembler.IngestTextDocumentFoldingRange(&f)

	case protocol.EdgeTextDocumentDocumentSymbol:
		if d.Assembler == nil {
			return false, nil
		}
		var ds protocol.TextDocumentDocumentSymbol
		if err := fastJSON.Unmarshal(line, &ds); err != nil {
			return false, fmt.Errorf("decode textDocument/documentSymbol edge: %w", err)
		}
		d.Assembler.IngestTextDocumentDocumentSymbol(&ds)

	case protocol.EdgeTextDocumentDiagnostic:
		if d.Assembler == nil {
			return false, nil
		}
		var dg protocol.TextDocumentDiagnostic
		if err := fastJSON.Unmarshal(line, &dg); err != nil {
			return false, fmt.Errorf("decode textDocument/diagnostic edge: %w", err)
		}
		d.Assembler.IngestTextDocumentDiagnostic(&dg)
	}

	return false, nil
}

// flushLinker resolves every deferred export/import candidate (Finalize,
// skipping ones an attach edge already observed elsewhere in the stream
// proved are already linked) and drains the attach queue, wrapping the
// batch in a monikerAttach event pair, per spec §4.1 "Deferred emission"
// and §4.4's "appended after end-of-stream, bracketed by a monikerAttach
// event pair".
func (d *Driver) flushLinker() error {
	if d.Linker == nil {
		return nil
	}

	d.Linker.Finalize()

	queue := d.Linker.Queue()
	elements, err := queue.Flush()
	if err != nil {
		return fmt.Errorf("flush attach queue: %w", err)
	}
	if len(elements) == 0 || d.Writer == nil {
		return nil
	}

	batchID := queue.Mint()
	beginID := queue.Mint()
	endID := queue.Mint()

	if err := d.Writer.Write(protocol.NewEvent(beginID, protocol.EventBegin, protocol.EventScopeMonikerAttach, batchID)); err != nil {
		return fmt.Errorf("write monikerAttach begin: %w", err)
	}
	if err := d.writeEmitted(elements); err != nil {
		return err
	}
	if err := d.Writer.Write(protocol.NewEvent(endID, protocol.EventEnd, protocol.EventScopeMonikerAttach, batchID)); err != nil {
		return fmt.Errorf("write monikerAttach end: %w", err)
	}

	return d.Writer.Flush()
}

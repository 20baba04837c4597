package document

import "github.com/sourcegraph/lsif-link/protocol"

type openDocument struct {
	contents string

	rangeIDs []protocol.ID

	foldingRangeResultID   protocol.ID
	documentSymbolResultID protocol.ID
	diagnosticResultID     protocol.ID
}

// Assembler is the DocumentAssembler: it ingests every vertex and edge the
// stream carries, and on each document's end event produces a canonical
// content hash over everything reachable from that document (spec §4.2).
//
// Ingest methods mirror the Linker's style: the driver decodes each raw
// element into its concrete type and calls the matching Ingest method, so
// this package never touches the wire representation directly.
type Assembler struct {
	documents map[protocol.ID]*protocol.Document
	open      map[protocol.ID]*openDocument

	ranges     map[protocol.ID]RangeData
	resultSets map[protocol.ID]bool
	monikers   map[protocol.ID]MonikerData
	hovers     map[protocol.ID]HoverData

	foldingRangeResults   map[protocol.ID][]protocol.FoldingRange
	documentSymbolResults map[protocol.ID]*protocol.DocumentSymbolResult
	diagnosticResults     map[protocol.ID][]protocol.Diagnostic

	// next, monikerOf and hoverOf resolve range/resultSet reachability:
	// next maps a range or result set to the single result set it points
	// at, monikerOf maps a range or result set to the monikers attached
	// directly to it, hoverOf maps it to an attached hover result.
	next      map[protocol.ID]protocol.ID
	monikerOf map[protocol.ID][]protocol.ID
	hoverOf   map[protocol.ID]protocol.ID
}

// New returns an empty Assembler.
func New() *Assembler {
	return &Assembler{
		documents:             map[protocol.ID]*protocol.Document{},
		open:                  map[protocol.ID]*openDocument{},
		ranges:                map[protocol.ID]RangeData{},
		resultSets:            map[protocol.ID]bool{},
		monikers:              map[protocol.ID]MonikerData{},
		hovers:                map[protocol.ID]HoverData{},
		foldingRangeResults:   map[protocol.ID][]protocol.FoldingRange{},
		documentSymbolResults: map[protocol.ID]*protocol.DocumentSymbolResult{},
		diagnosticResults:     map[protocol.ID][]protocol.Diagnostic{},
		next:                  map[protocol.ID]protocol.ID{},
		monikerOf:             map[protocol.ID][]protocol.ID{},
		hoverOf:               map[protocol.ID]protocol.ID{},
	}
}

// IngestDocument caches a document vertex so OnDocumentBegin can bind its
// contents once the document's begin event arrives.
func (a *Assembler) IngestDocument(d *protocol.Document) {
	a.documents[d.ID] = d
}

// IngestRange caches a range vertex.
func (a *Assembler) IngestRange(r *protocol.Range) {
	a.ranges[r.ID] = RangeData{ID: r.ID, Start: r.Start, End: r.End, Tag: r.Tag}
}

// IngestResultSet records that id names a result set, so chains that pass
// through it can be told apart from ranges when the blob is assembled.
func (a *Assembler) IngestResultSet(rs *protocol.ResultSet) {
	a.resultSets[rs.ID] = true
}

// IngestMoniker caches a moniker vertex.
func (a *Assembler) IngestMoniker(m *protocol.Moniker) {
	a.monikers[m.ID] = MonikerData{ID: m.ID, Kind: m.Kind, Scheme: m.Scheme, Identifier: m.Identifier, Unique: m.Unique}
}

// IngestHoverResult caches a hover result vertex.
func (a *Assembler) IngestHoverResult(h *protocol.HoverResult) {
	a.hovers[h.ID] = HoverData{ID: h.ID, Contents: h.Result.Contents}
}

// IngestFoldingRangeResult caches a folding range result vertex.
func (a *Assembler) IngestFoldingRangeResult(f *protocol.FoldingRangeResult) {
	a.foldingRangeResults[f.ID] = f.Result
}

// IngestDocumentSymbolResult caches a document symbol result vertex, flat or
// range-based; the shape is resolved lazily at assembly time.
func (a *Assembler) IngestDocumentSymbolResult(d *protocol.DocumentSymbolResult) {
	a.documentSymbolResults[d.ID] = d
}

// IngestDiagnosticResult caches a diagnostic result vertex.
func (a *Assembler) IngestDiagnosticResult(d *protocol.DiagnosticResult) {
	a.diagnosticResults[d.ID] = d.Result
}

// IngestContains resolves a contains edge. Edges whose outV is not a
// currently open document (project -> document containment) are ignored;
// this component only cares about document -> range containment.
func (a *Assembler) IngestContains(c *protocol.Contains) {
	doc, ok := a.open[c.OutV]
	if !ok {
		return
	}
	doc.rangeIDs = append(doc.rangeIDs, c.InVs...)
}

// IngestNext resolves a next edge between a range/resultSet and the result
// set that groups its navigation results.
func (a *Assembler) IngestNext(n *protocol.Next) {
	a.next[n.OutV] = n.InV
}

// IngestMonikerEdge resolves a moniker edge attaching a moniker to a range
// or result set.
func (a *Assembler) IngestMonikerEdge(e *protocol.MonikerEdge) {
	a.monikerOf[e.OutV] = append(a.monikerOf[e.OutV], e.InV)
}

// IngestTextDocumentHover resolves a textDocument/hover edge.
func (a *Assembler) IngestTextDocumentHover(e *protocol.TextDocumentHover) {
	a.hoverOf[e.OutV] = e.InV
}

// IngestTextDocumentFoldingRange resolves a textDocument/foldingRange edge.
func (a *Assembler) IngestTextDocumentFoldingRange(e *protocol.TextDocumentFoldingRange) {
	if doc, ok := a.open[e.OutV]; ok {
		doc.foldingRangeResultID = e.InV
	}
}

// IngestTextDocumentDocumentSymbol resolves a textDocument/documentSymbol edge.
func (a *Assembler) IngestTextDocumentDocumentSymbol(e *protocol.TextDocumentDocumentSymbol) {
	if doc, ok := a.open[e.OutV]; ok {
		doc.documentSymbolResultID = e.InV
	}
}

// IngestTextDocumentDiagnostic resolves a textDocument/diagnostic edge.
func (a *Assembler) IngestTextDocumentDiagnostic(e *protocol.TextDocumentDiagnostic) {
	if doc, ok := a.open[e.OutV]; ok {
		doc.diagnosticResultID = e.InV
	}
}

// OnDocumentBegin opens docID for fact collection, binding it to the
// contents of its already-ingested Document vertex.
func (a *Assembler) OnDocumentBegin(docID protocol.ID) error {
	d, ok := a.documents[docID]
	contents := ""
	if ok {
		decoded, err := d.DecodedContents()
		if err != nil {
			return err
		}
		contents = string(decoded)
	}
	a.open[docID] = &openDocument{contents: contents}
	return nil
}

// OnDocumentEnd assembles docID's blob, computes its canonical hash, and
// releases every cache entry owned solely by that document.
func (a *Assembler) OnDocumentEnd(docID protocol.ID) (string, error) {
	doc, ok := a.open[docID]
	if !ok {
		return "", nil
	}
	delete(a.open, docID)
	delete(a.documents, docID)

	blob, err := a.walk(doc)
	if err != nil {
		return "", err
	}

	hash, err := Hash(blob)
	if err != nil {
		return "", err
	}

	a.release(blob)
	return hash, nil
}

// release drops cache entries that belonged only to the document just
// closed, so memory does not grow across a long stream.
func (a *Assembler) release(b *Blob) {
	for id := range b.Ranges {
		delete(a.ranges, id)
		delete(a.next, id)
		delete(a.monikerOf, id)
		delete(a.hoverOf, id)
	}
	for id := range b.ResultSets {
		delete(a.resultSets, id)
		delete(a.next, id)
		delete(a.monikerOf, id)
		delete(a.hoverOf, id)
	}
	for id := range b.Monikers {
		delete(a.monikers, id)
	}
	for id := range b.Hovers {
		delete(a.hovers, id)
	}
}

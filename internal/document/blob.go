// Package document implements the DocumentAssembler: between a document's
// begin and end events it collects every in-document fact into a blob and
// computes a deterministic content hash over it (spec §4.2).
package document

import "github.com/sourcegraph/lsif-link/protocol"

// RangeData is the subset of a range vertex the blob needs.
type RangeData struct {
	ID    protocol.ID
	Start protocol.Pos
	End   protocol.Pos
	Tag   *protocol.RangeTag
}

// ResultSetData marks that a result set was reachable from some range; it
// carries no fields of its own beyond its id; it exists so Blob can record
// which ones were included.
type ResultSetData struct {
	ID protocol.ID
}

// MonikerData is the subset of a moniker vertex the blob needs.
type MonikerData struct {
	ID         protocol.ID
	Kind       protocol.MonikerKind
	Scheme     string
	Identifier string
	Unique     protocol.MonikerUnique
}

// HoverData is the subset of a hoverResult vertex the blob needs.
type HoverData struct {
	ID       protocol.ID
	Contents []protocol.MarkedString
}

// DocumentSymbolNode is one range-based document-symbol tree node.
type DocumentSymbolNode struct {
	RangeID  protocol.ID
	Children []DocumentSymbolNode
}

// Blob is the self-contained, document-scoped snapshot the canonical hash
// is computed over (spec §4.2 "Blob shape").
type Blob struct {
	Contents string

	Ranges     map[protocol.ID]RangeData
	ResultSets map[protocol.ID]ResultSetData
	Monikers   map[protocol.ID]MonikerData
	Hovers     map[protocol.ID]HoverData

	FoldingRanges   []protocol.FoldingRange
	DocumentSymbols []DocumentSymbolNode
	Diagnostics     []protocol.Diagnostic
}

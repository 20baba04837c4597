package schema

import "github.com/sourcegraph/lsif-link/protocol"

// Endpoint is one permitted (outLabel, inLabel) pair for an edge label.
type Endpoint struct {
	Out protocol.VertexLabel
	In  protocol.VertexLabel
}

// Endpoints is the fixed, finite set of permitted (outLabel, inLabel) pairs
// per edge label (spec invariant 4). "item" is deliberately absent: its
// outV is a definition/reference-style result vertex outside the label set
// this package models, so its shape is instead checked structurally (well-
// typed outV/inVs/shard) and its shard-openness is checked directly by the
// Validator (spec §4.3 check 5), not by a label-pair lookup here.
var Endpoints = map[protocol.EdgeLabel][]Endpoint{
	protocol.EdgeContains: {
		{Out: protocol.VertexProject, In: protocol.VertexDocument},
		{Out: protocol.VertexDocument, In: protocol.VertexRange},
	},
	protocol.EdgeNext: {
		{Out: protocol.VertexRange, In: protocol.VertexResultSet},
		{Out: protocol.VertexResultSet, In: protocol.VertexResultSet},
	},
	protocol.EdgeMoniker: {
		{Out: protocol.VertexRange, In: protocol.VertexMoniker},
		{Out: protocol.VertexResultSet, In: protocol.VertexMoniker},
	},
	protocol.EdgePackageInformation: {
		{Out: protocol.VertexMoniker, In: protocol.VertexPackageInformation},
	},
	protocol.EdgeAttach: {
		{Out: protocol.VertexMoniker, In: protocol.VertexMoniker},
	},
	protocol.EdgeTextDocumentHover: {
		{Out: protocol.VertexRange, In: protocol.VertexHoverResult},
		{Out: protocol.VertexResultSet, In: protocol.VertexHoverResult},
	},
	protocol.EdgeTextDocumentFoldingRange: {
		{Out: protocol.VertexDocument, In: protocol.VertexFoldingRangeResult},
	},
	protocol.EdgeTextDocumentDocumentSymbol: {
		{Out: protocol.VertexDocument, In: protocol.VertexDocumentSymbolResult},
	},
	protocol.EdgeTextDocumentDiagnostic: {
		{Out: protocol.VertexDocument, In: protocol.VertexDiagnosticResult},
	},
}

// Permitted reports whether (out, in) is an allowed endpoint pair for label.
// Edge labels absent from Endpoints (currently only "item") are always
// permitted by this check; see the package doc comment.
func Permitted(label protocol.EdgeLabel, out, in protocol.VertexLabel) bool {
	pairs, ok := Endpoints[label]
	if !ok {
		return true
	}
	for _, p := range pairs {
		if p.Out == out && p.In == in {
			return true
		}
	}
	return false
}

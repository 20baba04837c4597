// Package schema holds the static tables the Validator checks every element
// against: required properties per label, enum membership for discriminant
// fields, and the permitted (outLabel, inLabel) pairs for each edge label.
package schema

import "github.com/sourcegraph/lsif-link/protocol"

// RequiredVertexProperties lists the top-level properties that must be
// present on a vertex of the given label, beyond the common id/type/label.
var RequiredVertexProperties = map[protocol.VertexLabel][]string{
	protocol.VertexMetaData:             {"version", "projectRoot", "toolInfo"},
	protocol.VertexEvent:                {"kind", "scope", "data"},
	protocol.VertexProject:              {"kind"},
	protocol.VertexDocument:             {"uri"},
	protocol.VertexRange:                {"start", "end"},
	protocol.VertexResultSet:            {},
	protocol.VertexMoniker:              {"scheme", "identifier"},
	protocol.VertexPackageInformation:   {"name", "manager"},
	protocol.VertexHoverResult:          {"result"},
	protocol.VertexFoldingRangeResult:   {"result"},
	protocol.VertexDocumentSymbolResult: {"result"},
	protocol.VertexDiagnosticResult:     {"result"},
}

// RequiredEdgeProperties lists the top-level properties that must be
// present on an edge of the given label, beyond the common id/type/label.
var RequiredEdgeProperties = map[protocol.EdgeLabel][]string{
	protocol.EdgeContains:                   {"outV", "inVs"},
	protocol.EdgeItem:                       {"outV", "inVs", "shard"},
	protocol.EdgeNext:                       {"outV", "inV"},
	protocol.EdgeMoniker:                    {"outV", "inV"},
	protocol.EdgeAttach:                     {"outV", "inV"},
	protocol.EdgePackageInformation:         {"outV", "inV"},
	protocol.EdgeTextDocumentHover:          {"outV", "inV"},
	protocol.EdgeTextDocumentFoldingRange:   {"outV", "inV"},
	protocol.EdgeTextDocumentDocumentSymbol: {"outV", "inV"},
	protocol.EdgeTextDocumentDiagnostic:     {"outV", "inV"},
}

// oneToN is the set of edge labels whose wire shape is 1→N (an "inVs" array)
// rather than 1→1 (a single "inV").
var oneToN = map[protocol.EdgeLabel]bool{
	protocol.EdgeContains: true,
	protocol.EdgeItem:     true,
}

// IsOneToMany reports whether label is a 1→N edge per spec invariant 3.
func IsOneToMany(label protocol.EdgeLabel) bool {
	return oneToN[label]
}

// MonikerKinds is the permitted value set for a moniker's "kind" property.
var MonikerKinds = map[protocol.MonikerKind]bool{
	protocol.MonikerLocal:  true,
	protocol.MonikerImport: true,
	protocol.MonikerExport: true,
}

// MonikerUniques is the permitted value set for a moniker's "unique" property.
var MonikerUniques = map[protocol.MonikerUnique]bool{
	protocol.UniqueDocument:  true,
	protocol.UniqueScheme:    true,
	protocol.UniqueGroup:     true,
	protocol.UniqueWorkspace: true,
	protocol.UniqueGlobal:    true,
}

// EventScopes is the permitted value set for an event's "scope" property.
var EventScopes = map[protocol.EventScope]bool{
	protocol.EventScopeProject:       true,
	protocol.EventScopeDocument:      true,
	protocol.EventScopeGroup:         true,
	protocol.EventScopeMonikerAttach: true,
}

// EventKinds is the permitted value set for an event's "kind" property.
var EventKinds = map[protocol.EventKind]bool{
	protocol.EventBegin: true,
	protocol.EventEnd:   true,
}

// Package protocol models the LSIF wire schema: a closed tagged union of
// vertices and edges exchanged as newline-delimited JSON.
//
// Reference: https://github.com/microsoft/lsif-node/blob/master/protocol/src/protocol.ts
package protocol

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

const (
	// Version is the LSIF protocol version this package implements.
	Version = "0.4.3"
)

// Element is the information common to every vertex and edge.
type Element struct {
	ID   ID          `json:"id"`
	Type ElementType `json:"type"`
}

// ElementType distinguishes a vertex from an edge.
type ElementType string

const (
	ElementVertex ElementType = "vertex"
	ElementEdge   ElementType = "edge"
)

// Vertex is an Element tagged with its vertex label.
type Vertex struct {
	Element
	Label VertexLabel `json:"label"`
}

// VertexLabel enumerates the vertex kinds this package inspects.
type VertexLabel string

const (
	VertexMetaData             VertexLabel = "metaData"
	VertexEvent                VertexLabel = "$event"
	VertexProject              VertexLabel = "project"
	VertexDocument             VertexLabel = "document"
	VertexRange                VertexLabel = "range"
	VertexResultSet            VertexLabel = "resultSet"
	VertexMoniker              VertexLabel = "moniker"
	VertexPackageInformation   VertexLabel = "packageInformation"
	VertexHoverResult          VertexLabel = "hoverResult"
	VertexFoldingRangeResult   VertexLabel = "foldingRangeResult"
	VertexDocumentSymbolResult VertexLabel = "documentSymbolResult"
	VertexDiagnosticResult     VertexLabel = "diagnosticResult"
)

// Edge is an Element tagged with its edge label.
type Edge struct {
	Element
	Label EdgeLabel `json:"label"`
}

// EdgeLabel enumerates the edge kinds this package inspects.
type EdgeLabel string

const (
	EdgeContains                   EdgeLabel = "contains"
	EdgeItem                       EdgeLabel = "item"
	EdgeNext                       EdgeLabel = "next"
	EdgeMoniker                    EdgeLabel = "moniker"
	EdgeAttach                     EdgeLabel = "attach"
	EdgePackageInformation         EdgeLabel = "packageInformation"
	EdgeTextDocumentHover          EdgeLabel = "textDocument/hover"
	EdgeTextDocumentFoldingRange   EdgeLabel = "textDocument/foldingRange"
	EdgeTextDocumentDocumentSymbol EdgeLabel = "textDocument/documentSymbol"
	EdgeTextDocumentDiagnostic     EdgeLabel = "textDocument/diagnostic"
)

// ToolInfo describes the tool that produced the dump being linked.
type ToolInfo struct {
	Name    string   `json:"name"`
	Version string   `json:"version,omitempty"`
	Args    []string `json:"args,omitempty"`
}

// MetaData is the single vertex describing the dump as a whole.
type MetaData struct {
	Vertex
	Version          string   `json:"version"`
	ProjectRoot      string   `json:"projectRoot"`
	PositionEncoding string   `json:"positionEncoding"`
	ToolInfo         ToolInfo `json:"toolInfo"`
}

// NewMetaData returns a MetaData vertex with the given id, project root and
// tool info.
func NewMetaData(id ID, root string, info ToolInfo) *MetaData {
	return &MetaData{
		Vertex: Vertex{
			Element: Element{ID: id, Type: ElementVertex},
			Label:   VertexMetaData,
		},
		Version:          Version,
		ProjectRoot:      root,
		PositionEncoding: "utf-16",
		ToolInfo:         info,
	}
}

// Project declares the project root a group of documents belongs to.
type Project struct {
	Vertex
	Kind string `json:"kind"`
}

// NewProject returns a Project vertex with the given id and language kind.
func NewProject(id ID, kind string) *Project {
	return &Project{
		Vertex: Vertex{
			Element: Element{ID: id, Type: ElementVertex},
			Label:   VertexProject,
		},
		Kind: kind,
	}
}

// Document is a source file participating in the index.
type Document struct {
	Vertex
	URI      string `json:"uri"`
	Contents string `json:"contents,omitempty"`
}

// NewDocument returns a Document vertex. contents, when non-empty, is
// base64-encoded as the wire format requires.
func NewDocument(id ID, uri string, contents []byte) *Document {
	d := &Document{
		Vertex: Vertex{
			Element: Element{ID: id, Type: ElementVertex},
			Label:   VertexDocument,
		},
		URI: uri,
	}

	if len(contents) > 0 {
		d.Contents = base64.StdEncoding.EncodeToString(contents)
	}

	return d
}

// DecodedContents returns the document's contents decoded from base64, or
// nil if the document carried none.
func (d *Document) DecodedContents() ([]byte, error) {
	if d.Contents == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(d.Contents)
}

// Pos is a 0-indexed line/character position, encoded in UTF-16 code units
// per the LSP position encoding.
type Pos struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// RangeTag carries optional presentation hints for a range; it is opaque to
// this package beyond its presence.
type RangeTag struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text,omitempty"`
}

// Range is a source span within a document.
type Range struct {
	Vertex
	Start Pos       `json:"start"`
	End   Pos       `json:"end"`
	Tag   *RangeTag `json:"tag,omitempty"`
}

// NewRange returns a Range vertex with the given id and span.
func NewRange(id ID, start, end Pos) *Range {
	return &Range{
		Vertex: Vertex{
			Element: Element{ID: id, Type: ElementVertex},
			Label:   VertexRange,
		},
		Start: start,
		End:   end,
	}
}

// ResultSet groups navigation results shared by several ranges.
type ResultSet struct {
	Vertex
}

// NewResultSet returns a ResultSet vertex with the given id.
func NewResultSet(id ID) *ResultSet {
	return &ResultSet{
		Vertex: Vertex{
			Element: Element{ID: id, Type: ElementVertex},
			Label:   VertexResultSet,
		},
	}
}

// MarkedString is either a plain string or a {language, value} pair, matching
// the LSP hover content shape.
type MarkedString markedString

type markedString struct {
	Language    string `json:"language"`
	Value       string `json:"value"`
	isRawString bool
}

// NewMarkedString returns a MarkedString tagged with the given language.
func NewMarkedString(s, language string) MarkedString {
	return MarkedString{Language: language, Value: s}
}

// RawMarkedString returns a MarkedString that marshals as a bare JSON string.
func RawMarkedString(s string) MarkedString {
	return MarkedString{Value: s, isRawString: true}
}

func (m *MarkedString) UnmarshalJSON(data []byte) error {
	if d := strings.TrimSpace(string(data)); len(d) > 0 && d[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		m.Value = s
		m.isRawString = true
		return nil
	}
	ms := (*markedString)(m)
	return json.Unmarshal(data, ms)
}

func (m MarkedString) MarshalJSON() ([]byte, error) {
	if m.isRawString {
		return json.Marshal(m.Value)
	}
	return json.Marshal((markedString)(m))
}

type hoverResult struct {
	Contents []MarkedString `json:"contents"`
}

// HoverResult carries the hover text shared by one or more ranges.
type HoverResult struct {
	Vertex
	Result hoverResult `json:"result"`
}

// NewHoverResult returns a HoverResult vertex with the given id and contents.
func NewHoverResult(id ID, contents []MarkedString) *HoverResult {
	return &HoverResult{
		Vertex: Vertex{
			Element: Element{ID: id, Type: ElementVertex},
			Label:   VertexHoverResult,
		},
		Result: hoverResult{Contents: contents},
	}
}

package protocol

import "encoding/json"

// RangeBasedDocumentSymbol is a node in the range-based document symbol
// tree: a reference to an already-emitted range plus its nested children.
// This is the only document-symbol shape the DocumentAssembler accepts for
// hashing (spec §4.2, §9 "Document symbol tree").
type RangeBasedDocumentSymbol struct {
	ID       ID                         `json:"id"`
	Children []RangeBasedDocumentSymbol `json:"children,omitempty"`
}

// DocumentSymbol is the flat, self-describing document symbol shape (name,
// kind, and an inline range rather than a reference to a range vertex).
// Encountering this shape where a range-based tree was expected is a fatal
// AssemblyError (spec §4.2).
type DocumentSymbol struct {
	Text     string           `json:"text"`
	Kind     int              `json:"kind"`
	Range    [2]Pos           `json:"range"`
	Children []DocumentSymbol `json:"children,omitempty"`
}

// DocumentSymbolResult carries one document's symbol outline, in either the
// flat or range-based shape; callers distinguish the two with
// DecodeRangeBased.
type DocumentSymbolResult struct {
	Vertex
	Result json.RawMessage `json:"result"`
}

// NewDocumentSymbolResult returns a DocumentSymbolResult vertex wrapping an
// already-marshaled result array.
func NewDocumentSymbolResult(id ID, result json.RawMessage) *DocumentSymbolResult {
	return &DocumentSymbolResult{
		Vertex: Vertex{
			Element: Element{ID: id, Type: ElementVertex},
			Label:   VertexDocumentSymbolResult,
		},
		Result: result,
	}
}

// DecodeRangeBased attempts to decode raw as a range-based document symbol
// tree. ok is false when raw instead holds the flat (self-describing) shape,
// which is never supported for hashing.
func DecodeRangeBased(raw json.RawMessage) (symbols []RangeBasedDocumentSymbol, ok bool, err error) {
	var probe []json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, false, err
	}

	for _, element := range probe {
		var shape struct {
			ID    *json.RawMessage `json:"id"`
			Range *json.RawMessage `json:"range"`
		}
		if err := json.Unmarshal(element, &shape); err != nil {
			return nil, false, err
		}
		if shape.ID == nil || shape.Range != nil {
			return nil, false, nil
		}
	}

	if err := json.Unmarshal(raw, &symbols); err != nil {
		return nil, false, err
	}
	return symbols, true, nil
}

// TextDocumentDocumentSymbol attaches a DocumentSymbolResult to its document.
type TextDocumentDocumentSymbol struct {
	Edge
	OutV ID `json:"outV"`
	InV  ID `json:"inV"`
}

// NewTextDocumentDocumentSymbol returns a TextDocumentDocumentSymbol edge.
func NewTextDocumentDocumentSymbol(id, outV, inV ID) *TextDocumentDocumentSymbol {
	return &TextDocumentDocumentSymbol{
		Edge: Edge{
			Element: Element{ID: id, Type: ElementEdge},
			Label:   EdgeTextDocumentDocumentSymbol,
		},
		OutV: outV,
		InV:  inV,
	}
}

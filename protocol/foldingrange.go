package protocol

// FoldingRange is a single collapsible span within a document, given in
// line/character coordinates rather than as a range vertex reference.
type FoldingRange struct {
	StartLine      int    `json:"startLine"`
	StartCharacter int    `json:"startCharacter,omitempty"`
	EndLine        int    `json:"endLine"`
	EndCharacter   int    `json:"endCharacter,omitempty"`
	Kind           string `json:"kind,omitempty"`
}

// FoldingRangeResult carries the folding ranges for one document.
type FoldingRangeResult struct {
	Vertex
	Result []FoldingRange `json:"result"`
}

// NewFoldingRangeResult returns a FoldingRangeResult vertex.
func NewFoldingRangeResult(id ID, result []FoldingRange) *FoldingRangeResult {
	return &FoldingRangeResult{
		Vertex: Vertex{
			Element: Element{ID: id, Type: ElementVertex},
			Label:   VertexFoldingRangeResult,
		},
		Result: result,
	}
}

// TextDocumentFoldingRange attaches a FoldingRangeResult to its document.
type TextDocumentFoldingRange struct {
	Edge
	OutV ID `json:"outV"`
	InV  ID `json:"inV"`
}

// NewTextDocumentFoldingRange returns a TextDocumentFoldingRange edge.
func NewTextDocumentFoldingRange(id, outV, inV ID) *TextDocumentFoldingRange {
	return &TextDocumentFoldingRange{
		Edge: Edge{
			Element: Element{ID: id, Type: ElementEdge},
			Label:   EdgeTextDocumentFoldingRange,
		},
		OutV: outV,
		InV:  inV,
	}
}

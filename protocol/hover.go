package protocol

// TextDocumentHover attaches a HoverResult to the range or result set that
// reaches it.
type TextDocumentHover struct {
	Edge
	OutV ID `json:"outV"`
	InV  ID `json:"inV"`
}

// NewTextDocumentHover returns a TextDocumentHover edge.
func NewTextDocumentHover(id, outV, inV ID) *TextDocumentHover {
	return &TextDocumentHover{
		Edge: Edge{
			Element: Element{ID: id, Type: ElementEdge},
			Label:   EdgeTextDocumentHover,
		},
		OutV: outV,
		InV:  inV,
	}
}

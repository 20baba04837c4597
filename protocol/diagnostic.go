package protocol

// Diagnostic is a single compiler/linter finding attached to a range within
// a document.
type Diagnostic struct {
	Severity int    `json:"severity,omitempty"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message"`
	Source   string `json:"source,omitempty"`
	Range    Range  `json:"range"`
}

// DiagnosticResult carries the diagnostics for one document.
type DiagnosticResult struct {
	Vertex
	Result []Diagnostic `json:"result"`
}

// NewDiagnosticResult returns a DiagnosticResult vertex.
func NewDiagnosticResult(id ID, result []Diagnostic) *DiagnosticResult {
	return &DiagnosticResult{
		Vertex: Vertex{
			Element: Element{ID: id, Type: ElementVertex},
			Label:   VertexDiagnosticResult,
		},
		Result: result,
	}
}

// TextDocumentDiagnostic attaches a DiagnosticResult to its document.
type TextDocumentDiagnostic struct {
	Edge
	OutV ID `json:"outV"`
	InV  ID `json:"inV"`
}

// NewTextDocumentDiagnostic returns a TextDocumentDiagnostic edge.
func NewTextDocumentDiagnostic(id, outV, inV ID) *TextDocumentDiagnostic {
	return &TextDocumentDiagnostic{
		Edge: Edge{
			Element: Element{ID: id, Type: ElementEdge},
			Label:   EdgeTextDocumentDiagnostic,
		},
		OutV: outV,
		InV:  inV,
	}
}

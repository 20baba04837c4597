package protocol

// MonikerKind classifies a moniker's direction: whether the symbol is
// defined locally, exported from this project, or imported from another.
type MonikerKind string

const (
	MonikerLocal  MonikerKind = "local"
	MonikerImport MonikerKind = "import"
	MonikerExport MonikerKind = "export"
)

// MonikerUnique names the scope in which a moniker's identifier is unique.
type MonikerUnique string

const (
	UniqueDocument  MonikerUnique = "document"
	UniqueScheme    MonikerUnique = "scheme"
	UniqueGroup     MonikerUnique = "group"
	UniqueWorkspace MonikerUnique = "workspace"
	UniqueGlobal    MonikerUnique = "global"
)

// LocalScheme is the scheme reserved for monikers that never leave the
// document they were produced in.
const LocalScheme = "$local"

// Moniker is a symbol identity record used to match symbols within and
// across index files.
type Moniker struct {
	Vertex
	Kind       MonikerKind   `json:"kind,omitempty"`
	Scheme     string        `json:"scheme"`
	Identifier string        `json:"identifier"`
	Unique     MonikerUnique `json:"unique,omitempty"`
}

// NewMoniker returns a Moniker vertex with the given id and fields.
func NewMoniker(id ID, kind MonikerKind, scheme, identifier string) *Moniker {
	return &Moniker{
		Vertex: Vertex{
			Element: Element{ID: id, Type: ElementVertex},
			Label:   VertexMoniker,
		},
		Kind:       kind,
		Scheme:     scheme,
		Identifier: identifier,
	}
}

// MonikerEdge attaches a moniker to the range or result set it identifies.
type MonikerEdge struct {
	Edge
	OutV ID `json:"outV"`
	InV  ID `json:"inV"`
}

// NewMonikerEdge returns a MonikerEdge with the given id and endpoints.
func NewMonikerEdge(id, outV, inV ID) *MonikerEdge {
	return &MonikerEdge{
		Edge: Edge{
			Element: Element{ID: id, Type: ElementEdge},
			Label:   EdgeMoniker,
		},
		OutV: outV,
		InV:  inV,
	}
}

// AttachEdge joins a package-scoped, linker-derived moniker (outV) back to
// the original indexer-local moniker it was derived from (inV).
type AttachEdge struct {
	Edge
	OutV ID `json:"outV"`
	InV  ID `json:"inV"`
}

// NewAttachEdge returns an AttachEdge with the given id and endpoints.
func NewAttachEdge(id, outV, inV ID) *AttachEdge {
	return &AttachEdge{
		Edge: Edge{
			Element: Element{ID: id, Type: ElementEdge},
			Label:   EdgeAttach,
		},
		OutV: outV,
		InV:  inV,
	}
}

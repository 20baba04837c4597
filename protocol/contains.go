package protocol

// Contains is the 1:N edge from a project or document to the vertices it
// owns (ranges, or documents, respectively).
type Contains struct {
	Edge
	OutV ID   `json:"outV"`
	InVs []ID `json:"inVs"`
}

// NewContains returns a Contains edge with the given id and endpoints.
func NewContains(id, outV ID, inVs []ID) *Contains {
	return &Contains{
		Edge: Edge{
			Element: Element{ID: id, Type: ElementEdge},
			Label:   EdgeContains,
		},
		OutV: outV,
		InVs: inVs,
	}
}

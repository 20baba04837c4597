package protocol

// Next is the 1:1 edge from a range (or result set) to the result set that
// groups its navigation results.
type Next struct {
	Edge
	OutV ID `json:"outV"`
	InV  ID `json:"inV"`
}

// NewNext returns a Next edge with the given id and endpoints.
func NewNext(id, outV, inV ID) *Next {
	return &Next{
		Edge: Edge{
			Element: Element{ID: id, Type: ElementEdge},
			Label:   EdgeNext,
		},
		OutV: outV,
		InV:  inV,
	}
}

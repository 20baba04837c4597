package protocol

// Item is the edge connecting a definition or reference result to the
// ranges that realize it within one shard (document or project).
type Item struct {
	Edge
	OutV     ID     `json:"outV"`
	InVs     []ID   `json:"inVs"`
	Shard    ID     `json:"shard"`
	Property string `json:"property,omitempty"`
}

// NewItem returns an Item edge with the given id, endpoints, and shard.
func NewItem(id, outV ID, inVs []ID, shard ID) *Item {
	return &Item{
		Edge: Edge{
			Element: Element{ID: id, Type: ElementEdge},
			Label:   EdgeItem,
		},
		OutV:  outV,
		InVs:  inVs,
		Shard: shard,
	}
}

// NewItemWithProperty returns an Item edge tagged with a relationship
// property ("definitions", "references", ...).
func NewItemWithProperty(id, outV ID, inVs []ID, shard ID, property string) *Item {
	i := NewItem(id, outV, inVs, shard)
	i.Property = property
	return i
}

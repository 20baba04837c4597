package protocol

// Repository describes the version-control location recorded in a package
// manifest, when present.
type Repository struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// PackageInformation is a long-lived vertex shared by every moniker that
// belongs to the same package manifest.
type PackageInformation struct {
	Vertex
	Name       string      `json:"name"`
	Manager    string      `json:"manager"`
	Version    string      `json:"version,omitempty"`
	Repository *Repository `json:"repository,omitempty"`
	URI        string      `json:"uri,omitempty"`
}

// NewPackageInformation returns a PackageInformation vertex with the given
// id and required fields.
func NewPackageInformation(id ID, name, manager, version string) *PackageInformation {
	return &PackageInformation{
		Vertex: Vertex{
			Element: Element{ID: id, Type: ElementVertex},
			Label:   VertexPackageInformation,
		},
		Name:    name,
		Manager: manager,
		Version: version,
	}
}

// PackageInformationEdge attaches a PackageInformation vertex to the
// moniker that belongs to it.
type PackageInformationEdge struct {
	Edge
	OutV ID `json:"outV"`
	InV  ID `json:"inV"`
}

// NewPackageInformationEdge returns a PackageInformationEdge with the given
// id and endpoints.
func NewPackageInformationEdge(id, outV, inV ID) *PackageInformationEdge {
	return &PackageInformationEdge{
		Edge: Edge{
			Element: Element{ID: id, Type: ElementEdge},
			Label:   EdgePackageInformation,
		},
		OutV: outV,
		InV:  inV,
	}
}

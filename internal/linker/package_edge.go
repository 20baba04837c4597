package linker

import "github.com/sourcegraph/lsif-link/protocol"

// BufferMoniker implements the buffering half of spec §4.1's alternate
// in-stream rewriting mode (handle_package_information_edge): some sources
// emit a moniker already in the package scheme, but with an unresolved
// identifier that a later packageInformation edge completes. The Linker
// holds such a moniker instead of letting the driver pass it through
// immediately; forward reports whether the driver should emit m itself.
func (l *Linker) BufferMoniker(m *protocol.Moniker) (forward bool) {
	if !l.active() || m.Scheme != packageScheme || m.Identifier != "" {
		return true
	}
	l.bufferedMonikers[m.ID] = m
	return false
}

// BufferPackageInformation holds a packageInformation vertex that may be
// the other half of an in-flight rewrite; forward reports whether the
// driver should emit pkg itself (always true). Inside a group bracket every
// packageInformation vertex is kept, since handle_package_information_edge
// cannot tell in advance which ones a later edge will reference; outside a
// group bracket none is kept.
func (l *Linker) BufferPackageInformation(pkg *protocol.PackageInformation) (forward bool) {
	if !l.active() {
		return true
	}
	l.bufferedPackageInformation[pkg.ID] = pkg
	return true
}

// HandlePackageInformationEdge implements handle_package_information_edge:
// when e connects a buffered, unresolved moniker to a buffered
// packageInformation vertex, the moniker is rewritten in place using that
// package's name and version and returned (moniker, edge) for the driver to
// emit in that order. consumed is false when either side was not buffered,
// in which case the driver should pass e through unchanged and the
// moniker, having been withheld, is lost to the output - callers must only
// withhold a moniker (via BufferMoniker returning false) when a matching
// edge is actually expected.
func (l *Linker) HandlePackageInformationEdge(e *protocol.PackageInformationEdge) (emit []interface{}, consumed bool) {
	m, ok := l.bufferedMonikers[e.OutV]
	if !ok {
		return nil, false
	}
	pkg, ok := l.bufferedPackageInformation[e.InV]
	if !ok {
		return nil, false
	}

	delete(l.bufferedMonikers, e.OutV)

	m.Identifier = pkg.Name + "@" + pkg.Version
	return []interface{}{m, e}, true
}

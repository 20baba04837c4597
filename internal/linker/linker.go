// Package linker implements the ExportLinker and ImportLinker: for every
// export or import moniker in the indexer's native scheme, it derives a
// package-scoped sibling moniker and connects the two with attach and
// packageInformation edges (spec §4.1).
package linker

import (
	"path/filepath"
	"strings"

	"github.com/sourcegraph/lsif-link/internal/manifest"
	"github.com/sourcegraph/lsif-link/protocol"
)

// nativeScheme is the scheme the upstream indexer emits its own monikers
// under; packageScheme is what the Linker derives monikers into. Both are
// fixed the way the teacher's gomod decorator fixes its manager name to
// "gomod": this tool links one language's native scheme to one
// package-manager scheme, not an arbitrary pair chosen at runtime.
const (
	nativeScheme  = "tsc"
	packageScheme = "npm"
)

// Linker derives package-scoped monikers from native ones as elements
// stream by, staging everything it generates on an AttachQueue rather than
// writing it out immediately (spec §4.1 "Deferred emission").
type Linker struct {
	projectRoot  string
	manifestPath string

	manifests *manifest.Cache
	queue     *AttachQueue

	// groupDepth counts open group-scope events; linking only happens
	// while it is > 0 (spec §4.1 "Groups/active project root").
	groupDepth int

	// packageInformationIDs caches one packageInformation vertex id per
	// manifest directory, mirroring the teacher's packageInformationIDs
	// map keyed by package name in gomod/moniker.go. The pointer is the
	// staged vertex's own id field, resolved only at Flush.
	packageInformationIDs map[string]*protocol.ID

	// bufferedMonikers and bufferedPackageInformation support the
	// alternate in-stream rewrite path (handle_package_information_edge):
	// a moniker or packageInformation vertex that arrives before its
	// pairing edge is held until the edge resolves it.
	bufferedMonikers           map[protocol.ID]*protocol.Moniker
	bufferedPackageInformation map[protocol.ID]*protocol.PackageInformation

	// pending holds export/import candidates seen so far, not yet staged:
	// staging is deferred to Finalize so a candidate whose source already
	// carries a derived sibling (linkedSources) can be dropped instead of
	// re-derived (spec §8 "Round-trip/idempotence").
	pending []pendingDerivation

	// linkedSources records every inV an attach edge has been observed
	// pointing at, native moniker ids that already have a derived,
	// attached sibling from an earlier linking pass.
	linkedSources map[protocol.ID]bool
}

// pendingDerivation is an export or import candidate collected while
// streaming, resolved into a staged derivation (or dropped) at Finalize.
type pendingDerivation struct {
	kind       protocol.MonikerKind
	identifier string
	sourceID   protocol.ID
	manifest   *manifest.Manifest
}

// New returns a Linker that resolves the project's own manifest from
// manifestPath (relative to projectRoot when not absolute) and import
// monikers from whichever node_modules directory encloses them.
func New(projectRoot, manifestPath string) *Linker {
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(projectRoot, manifestPath)
	}

	return &Linker{
		projectRoot:                filepath.Clean(projectRoot),
		manifestPath:               filepath.Dir(filepath.Clean(manifestPath)),
		manifests:                  manifest.NewCache(),
		queue:                      NewAttachQueue(),
		packageInformationIDs:      map[string]*protocol.ID{},
		bufferedMonikers:           map[protocol.ID]*protocol.Moniker{},
		bufferedPackageInformation: map[protocol.ID]*protocol.PackageInformation{},
		linkedSources:              map[protocol.ID]bool{},
	}
}

// Queue exposes the linker's attach queue so the driver can flush it at
// end-of-stream.
func (l *Linker) Queue() *AttachQueue {
	return l.queue
}

// HandleEvent updates group tracking. Only group-scope events matter here;
// every other event passes through the driver untouched.
func (l *Linker) HandleEvent(e *protocol.Event) {
	if e.Scope != protocol.EventScopeGroup {
		return
	}
	switch e.Kind {
	case protocol.EventBegin:
		l.groupDepth++
	case protocol.EventEnd:
		if l.groupDepth > 0 {
			l.groupDepth--
		}
	}
}

// active reports whether the linker is inside a group bracket and should
// attempt linkage.
func (l *Linker) active() bool {
	return l.groupDepth > 0
}

// HandleAttachEdge records that e already links a derived sibling to a
// source moniker. It is not gated by active(): a monikerAttach bracket sits
// outside the group bracket it was flushed from (spec §4.4), so by the time
// a previously-emitted attach edge streams back through, group tracking has
// already closed.
func (l *Linker) HandleAttachEdge(e *protocol.AttachEdge) {
	l.linkedSources[e.InV] = true
}

// Finalize resolves every export/import candidate collected during the
// stream into a staged derivation, skipping any whose source id is already
// in linkedSources. It must run after the whole stream (and therefore every
// attach edge a prior linking pass produced) has been observed, and before
// the queue is flushed, which is exactly what makes re-running the linker
// on its own output a no-op on monikers it already linked (spec §8
// "Round-trip/idempotence").
func (l *Linker) Finalize() {
	for _, p := range l.pending {
		if l.linkedSources[p.sourceID] {
			continue
		}
		packageInformationID := l.ensurePackageInformation(p.manifest)
		l.emitDerived(p.kind, p.identifier, p.sourceID, packageInformationID)
	}
	l.pending = nil
}

// HandleMoniker is the combined handle_export_moniker / handle_import_moniker
// entry point, dispatched by kind. It is a no-op outside a group bracket or
// for monikers not in the native scheme.
func (l *Linker) HandleMoniker(m *protocol.Moniker) error {
	if !l.active() || m.Scheme != nativeScheme {
		return nil
	}

	switch m.Kind {
	case protocol.MonikerExport:
		return l.handleExportMoniker(m)
	case protocol.MonikerImport:
		return l.handleImportMoniker(m)
	default:
		return nil
	}
}

// splitIdentifier parses a native identifier of the form "path::symbol"
// into its path and symbol halves. ok is false when there is no path
// component, which both handlers treat as "ignore this moniker".
func splitIdentifier(identifier string) (path, symbol string, ok bool) {
	idx := strings.Index(identifier, "::")
	if idx <= 0 {
		return "", "", false
	}
	return identifier[:idx], identifier[idx+2:], true
}

// derive computes the npm-scheme identifier for a moniker whose native path
// is relPath (already relative to the owning manifest's directory) and
// whose symbol is symbol, applying the main/typings no-path rule from
// spec §4.1.
func derive(m *manifest.Manifest, relPath, symbol string) string {
	name := m.Name
	if m.Version != "" {
		name += "@" + m.Version
	}

	if m.MatchesMain(relPath) || m.MatchesTypings(relPath) {
		return name + "::" + symbol
	}
	return name + "/" + relPath + "::" + symbol
}

// ensurePackageInformation returns a pointer to the (not yet resolved) id of
// the packageInformation vertex for m, staging a new vertex on first use per
// manifest directory.
func (l *Linker) ensurePackageInformation(m *manifest.Manifest) *protocol.ID {
	if id, ok := l.packageInformationIDs[m.Dir]; ok {
		return id
	}

	pkg := protocol.NewPackageInformation(protocol.NilID, m.Name, packageScheme, m.Version)
	if m.Repository != nil {
		pkg.Repository = m.Repository
	}
	l.queue.Stage(pkg, &pkg.ID)
	l.packageInformationIDs[m.Dir] = &pkg.ID

	return &pkg.ID
}

// emitDerived stages the derived moniker plus its attach and
// packageInformation edges. sourceID is already final (it names a vertex
// already present in the input stream); packageInformationID is a forward
// reference resolved at Flush.
func (l *Linker) emitDerived(kind protocol.MonikerKind, identifier string, sourceID protocol.ID, packageInformationID *protocol.ID) {
	derived := protocol.NewMoniker(protocol.NilID, kind, packageScheme, identifier)
	l.queue.Stage(derived, &derived.ID)

	attach := protocol.NewAttachEdge(protocol.NilID, protocol.NilID, sourceID)
	l.queue.Stage(attach, &attach.ID)
	l.queue.Ref(&attach.OutV, &derived.ID)

	pkgEdge := protocol.NewPackageInformationEdge(protocol.NilID, protocol.NilID, protocol.NilID)
	l.queue.Stage(pkgEdge, &pkgEdge.ID)
	l.queue.Ref(&pkgEdge.OutV, &derived.ID)
	l.queue.Ref(&pkgEdge.InV, packageInformationID)
}

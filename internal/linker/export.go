package linker

import (
	"path/filepath"

	"github.com/sourcegraph/lsif-link/log"
	"github.com/sourcegraph/lsif-link/protocol"
)

// handleExportMoniker implements spec §4.1 handle_export_moniker: parse the
// native identifier, resolve it against the project's own manifest (the one
// passed to New, not a nearest-enclosing one), and queue a derived npm
// moniker as a Finalize candidate. It does not stage anything itself: a
// source already carrying a derived sibling from an earlier linking pass
// must be skipped, and that can only be known once the whole stream
// (including any pre-existing attach edges) has been observed.
func (l *Linker) handleExportMoniker(m *protocol.Moniker) error {
	identifierPath, symbol, ok := splitIdentifier(m.Identifier)
	if !ok {
		return nil
	}

	mf, err := l.manifests.Get(l.manifestPath)
	if err != nil {
		log.Debugf("linker: no manifest for export moniker %s: %v", m.ID, err)
		return nil
	}

	// The moniker's path is relative to the project root; re-root it onto
	// the manifest's own directory ($location) in case --package names a
	// manifest that does not sit at the project root (spec §4.1 "Compute
	// the moniker's path relative to the manifest directory").
	abs := filepath.Join(l.projectRoot, filepath.FromSlash(identifierPath))
	relPath, ok := mf.RelativePath(abs)
	if !ok {
		log.Debugf("linker: export moniker %s lies outside manifest %s", m.ID, mf.Dir)
		return nil
	}

	identifier := derive(mf, relPath, symbol)
	l.pending = append(l.pending, pendingDerivation{
		kind:       protocol.MonikerExport,
		identifier: identifier,
		sourceID:   m.ID,
		manifest:   mf,
	})

	return nil
}

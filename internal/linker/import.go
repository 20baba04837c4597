package linker

import (
	"path/filepath"

	"github.com/sourcegraph/lsif-link/internal/manifest"
	"github.com/sourcegraph/lsif-link/log"
	"github.com/sourcegraph/lsif-link/protocol"
)

// handleImportMoniker implements spec §4.1 handle_import_moniker: locate the
// nearest enclosing node_modules/<pkg> segment in the native identifier,
// load that package's manifest (cached, independent of whether the
// project's own manifest was resolvable), and apply the same main/typings
// rule as the export side. Like handleExportMoniker, it only queues a
// Finalize candidate; staging is deferred until the source is known not to
// already carry a derived sibling.
func (l *Linker) handleImportMoniker(m *protocol.Moniker) error {
	path, symbol, ok := splitIdentifier(m.Identifier)
	if !ok {
		return nil
	}

	prefix, _, withinPackage, ok := manifest.LocateNodeModulesPackage(path)
	if !ok {
		log.Debugf("linker: import moniker %s has no node_modules segment", m.ID)
		return nil
	}

	packageDir := filepath.Join(l.projectRoot, filepath.FromSlash(prefix))

	mf, err := l.manifests.Get(packageDir)
	if err != nil {
		log.Debugf("linker: no manifest for import moniker %s: %v", m.ID, err)
		return nil
	}

	identifier := derive(mf, withinPackage, symbol)
	l.pending = append(l.pending, pendingDerivation{
		kind:       protocol.MonikerImport,
		identifier: identifier,
		sourceID:   m.ID,
		manifest:   mf,
	})

	return nil
}

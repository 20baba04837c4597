package manifest

import "strings"

const nodeModulesSegment = "node_modules"

// LocateNodeModulesPackage finds the nearest enclosing node_modules/<pkg> (or
// node_modules/@scope/pkg) segment in an identifier path such as
// "node_modules/@scope/x/lib/b.ts", per spec §4.1's import rule. "Nearest
// enclosing" means the last such segment reading left to right, so a path
// with nested node_modules (monorepo-style hoisting) resolves to the
// innermost package.
//
// prefix is the path through and including the package directory (suitable
// for joining onto a project root to find that package's manifest);
// packageName is the resolved package name; relPath is what remains of the
// path inside the package, used for the main/typings match.
func LocateNodeModulesPackage(path string) (prefix, packageName, relPath string, ok bool) {
	parts := strings.Split(path, "/")

	nodeModulesIdx := -1
	for i, p := range parts {
		if p == nodeModulesSegment {
			nodeModulesIdx = i
		}
	}
	if nodeModulesIdx == -1 || nodeModulesIdx+1 >= len(parts) {
		return "", "", "", false
	}

	nameEnd := nodeModulesIdx + 2
	if strings.HasPrefix(parts[nodeModulesIdx+1], "@") {
		nameEnd++
	}
	if nameEnd > len(parts) {
		return "", "", "", false
	}

	packageName = strings.Join(parts[nodeModulesIdx+1:nameEnd], "/")
	prefix = strings.Join(parts[:nameEnd], "/")
	relPath = strings.Join(parts[nameEnd:], "/")

	return prefix, packageName, relPath, true
}

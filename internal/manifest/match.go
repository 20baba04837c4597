package manifest

import (
	"path/filepath"
	"strings"
)

var stripSuffixes = []string{".d.ts", ".ts", ".js"}

// normalize converts a filesystem path to forward-slash form regardless of
// host, per spec §4.1 "Path normalization uses forward slashes".
func normalize(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	return strings.TrimSuffix(p, "/")
}

// stripExtension removes one trailing .d.ts, .ts, or .js suffix, matching
// spec §4.1's main/typings comparison rule. Longer suffixes are tried first
// so "index.d.ts" strips to "index" rather than "index.d".
func stripExtension(p string) string {
	for _, suffix := range stripSuffixes {
		if strings.HasSuffix(p, suffix) {
			return strings.TrimSuffix(p, suffix)
		}
	}
	return p
}

// matchesEntryPoint reports whether relativePath (already normalized,
// relative to the manifest directory) denotes the same file as the
// manifest's main or typings entry, after suffix stripping.
func matchesEntryPoint(relativePath, entry string) bool {
	return stripExtension(normalize(relativePath)) == stripExtension(normalize(entry))
}

// MatchesMain reports whether relativePath is the manifest's "main" entry point.
func (m *Manifest) MatchesMain(relativePath string) bool {
	return matchesEntryPoint(relativePath, m.Main)
}

// MatchesTypings reports whether relativePath is the manifest's "typings" entry point.
func (m *Manifest) MatchesTypings(relativePath string) bool {
	return matchesEntryPoint(relativePath, m.Typings)
}

// RelativePath returns filePath made relative to the manifest's directory,
// normalized to forward slashes. ok is false if filePath does not lie
// beneath the manifest directory.
func (m *Manifest) RelativePath(filePath string) (rel string, ok bool) {
	r, err := relativeSlash(m.Dir, filePath)
	if err != nil {
		return "", false
	}
	if strings.HasPrefix(r, "..") {
		return "", false
	}
	return r, true
}

func relativeSlash(base, target string) (string, error) {
	rel, err := relTo(base, target)
	if err != nil {
		return "", err
	}
	return normalize(rel), nil
}

// relTo computes target relative to base with filepath.Rel, using the
// host's separator rules; relativeSlash normalizes the result to forward
// slashes.
func relTo(base, target string) (string, error) {
	return filepath.Rel(base, target)
}

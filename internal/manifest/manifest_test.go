package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeManifest(t *testing.T, dir, contents string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"name": "left-pad", "version": "1.0.0"}`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if diff := cmp.Diff("index.js", m.Main); diff != "" {
		t.Errorf("Main mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("index.d.ts", m.Typings); diff != "" {
		t.Errorf("Typings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingNameTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"version": "1.0.0"}`)

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for manifest with no name")
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for missing package.json")
	}
}

func TestCacheMemoizesNegativeEntries(t *testing.T) {
	dir := t.TempDir()
	c := NewCache()

	calls := 0
	c.loadFn = func(d string) (*Manifest, error) {
		calls++
		return Load(d)
	}

	if _, err := c.Get(dir); err == nil {
		t.Fatal("expected error from first Get")
	}
	if _, err := c.Get(dir); err == nil {
		t.Fatal("expected error from second Get")
	}

	if calls != 1 {
		t.Errorf("loadFn called %d times, want 1 (negative entry should be cached)", calls)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestMatchesMainAndTypingsStripSuffix(t *testing.T) {
	m := &Manifest{Main: "lib/index.js", Typings: "lib/index.d.ts"}

	if !m.MatchesMain("lib/index.ts") {
		t.Error("expected lib/index.ts to match main lib/index.js after suffix stripping")
	}
	if !m.MatchesTypings("lib/index.js") {
		t.Error("expected lib/index.js to match typings lib/index.d.ts after suffix stripping")
	}
	if m.MatchesMain("lib/other.js") {
		t.Error("did not expect lib/other.js to match main lib/index.js")
	}
}

func TestLocateNodeModulesPackageScoped(t *testing.T) {
	prefix, name, rel, ok := LocateNodeModulesPackage("node_modules/@scope/x/lib/b.ts")
	if !ok {
		t.Fatal("expected a match")
	}
	if diff := cmp.Diff("node_modules/@scope/x", prefix); diff != "" {
		t.Errorf("prefix mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("@scope/x", name); diff != "" {
		t.Errorf("package name mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("lib/b.ts", rel); diff != "" {
		t.Errorf("relative path mismatch (-want +got):\n%s", diff)
	}
}

func TestLocateNodeModulesPackageUnscoped(t *testing.T) {
	prefix, name, rel, ok := LocateNodeModulesPackage("node_modules/left-pad/index.ts")
	if !ok {
		t.Fatal("expected a match")
	}
	if diff := cmp.Diff("node_modules/left-pad", prefix); diff != "" {
		t.Errorf("prefix mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("left-pad", name); diff != "" {
		t.Errorf("package name mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("index.ts", rel); diff != "" {
		t.Errorf("relative path mismatch (-want +got):\n%s", diff)
	}
}

func TestLocateNodeModulesPackageNearestEnclosing(t *testing.T) {
	_, name, rel, ok := LocateNodeModulesPackage("node_modules/outer/node_modules/inner/index.ts")
	if !ok {
		t.Fatal("expected a match")
	}
	if diff := cmp.Diff("inner", name); diff != "" {
		t.Errorf("expected the innermost package to win, got %q", name)
	}
	if diff := cmp.Diff("index.ts", rel); diff != "" {
		t.Errorf("relative path mismatch (-want +got):\n%s", diff)
	}
}

func TestLocateNodeModulesPackageNoMatch(t *testing.T) {
	if _, _, _, ok := LocateNodeModulesPackage("src/a.ts"); ok {
		t.Error("did not expect a match for a path with no node_modules segment")
	}
}

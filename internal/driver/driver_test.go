package driver

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sourcegraph/lsif-link/internal/document"
	"github.com/sourcegraph/lsif-link/internal/linker"
	"github.com/sourcegraph/lsif-link/protocol"
)

// fakeWriter records every element passed to it as its marshaled JSON, in
// write order, so tests can inspect both pass-through lines and
// driver-synthesized elements through one interface.
type fakeWriter struct {
	lines [][]byte
}

func (w *fakeWriter) Write(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.lines = append(w.lines, data)
	return nil
}

func (w *fakeWriter) Flush() error { return nil }

func (w *fakeWriter) decode(t *testing.T, i int) map[string]interface{} {
	t.Helper()
	if i >= len(w.lines) {
		t.Fatalf("line %d not written, only %d lines captured", i, len(w.lines))
	}
	var m map[string]interface{}
	if err := json.Unmarshal(w.lines[i], &m); err != nil {
		t.Fatalf("decode line %d: %v", i, err)
	}
	return m
}

func writeManifest(t *testing.T, dir, contents string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func marshalLine(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRunForwardsPassthroughAndAppendsDeferredBatch(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `{"name":"pkg","version":"1.0.0","main":"lib/a.js"}`)

	l := linker.New(root, "package.json")
	w := &fakeWriter{}
	d := &Driver{Linker: l, Writer: w}

	groupBegin := protocol.NewEvent(protocol.IntID(1), protocol.EventBegin, protocol.EventScopeGroup, protocol.IntID(0))
	source := protocol.NewMoniker(protocol.IntID(2), protocol.MonikerExport, "tsc", "src/a.ts::foo")

	input := strings.Join([]string{
		marshalLine(t, groupBegin),
		marshalLine(t, source),
	}, "\n") + "\n"

	if err := d.Run(bytes.NewBufferString(input)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The two source-stream lines pass through verbatim, then the deferred
	// batch (packageInformation, derived moniker, attach, packageInformation
	// edge) is appended bracketed by a monikerAttach begin/end pair.
	if len(w.lines) != 8 {
		t.Fatalf("len(lines) = %d, want 8 (2 passthrough + begin + 4 derived + end)", len(w.lines))
	}

	if label := w.decode(t, 0)["label"]; label != "$event" {
		t.Errorf("line 0 label = %v, want $event", label)
	}
	if label := w.decode(t, 1)["label"]; label != "moniker" {
		t.Errorf("line 1 label = %v, want moniker", label)
	}

	begin := w.decode(t, 2)
	if begin["label"] != "$event" || begin["scope"] != "monikerAttach" || begin["kind"] != "begin" {
		t.Errorf("line 2 = %v, want a monikerAttach begin event", begin)
	}

	pkgInfo := w.decode(t, 3)
	if pkgInfo["label"] != "packageInformation" {
		t.Errorf("line 3 label = %v, want packageInformation", pkgInfo["label"])
	}

	derivedMoniker := w.decode(t, 4)
	if derivedMoniker["label"] != "moniker" || derivedMoniker["scheme"] != "npm" {
		t.Errorf("line 4 = %v, want the derived npm moniker", derivedMoniker)
	}
	if identifier, _ := derivedMoniker["identifier"].(string); identifier != "pkg@1.0.0/src/a.ts::foo" {
		t.Errorf("derived identifier = %q, want pkg@1.0.0/src/a.ts::foo", identifier)
	}

	attach := w.decode(t, 5)
	if attach["label"] != "attach" {
		t.Errorf("line 5 label = %v, want attach", attach["label"])
	}

	pkgEdge := w.decode(t, 6)
	if pkgEdge["label"] != "packageInformation" {
		t.Errorf("line 6 label = %v, want packageInformation edge", pkgEdge["label"])
	}

	end := w.decode(t, 7)
	if end["label"] != "$event" || end["scope"] != "monikerAttach" || end["kind"] != "end" {
		t.Errorf("line 7 = %v, want a monikerAttach end event", end)
	}
	if begin["data"] != end["data"] {
		t.Errorf("begin.data = %v, end.data = %v, want the same bracketed batch id", begin["data"], end["data"])
	}
}

func TestRunAssemblesDocumentAndReportsHash(t *testing.T) {
	a := document.New()
	w := &fakeWriter{}

	var hashedID protocol.ID
	var hash string
	d := &Driver{
		Assembler: a,
		Writer:    w,
		OnDocumentHash: func(id protocol.ID, h string) {
			hashedID = id
			hash = h
		},
	}

	doc := protocol.NewDocument(protocol.IntID(1), "file:///a.ts", []byte("hello"))
	docBegin := protocol.NewEvent(protocol.IntID(2), protocol.EventBegin, protocol.EventScopeDocument, protocol.IntID(1))
	r := protocol.NewRange(protocol.IntID(3), protocol.Pos{Line: 0, Character: 0}, protocol.Pos{Line: 0, Character: 5})
	contains := protocol.NewContains(protocol.IntID(4), protocol.IntID(1), []protocol.ID{protocol.IntID(3)})
	docEnd := protocol.NewEvent(protocol.IntID(5), protocol.EventEnd, protocol.EventScopeDocument, protocol.IntID(1))

	lines := []string{
		marshalLine(t, doc),
		marshalLine(t, docBegin),
		marshalLine(t, r),
		marshalLine(t, contains),
		marshalLine(t, docEnd),
	}

	if err := d.Run(bytes.NewBufferString(strings.Join(lines, "\n") + "\n")); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(w.lines) != len(lines) {
		t.Fatalf("len(lines) = %d, want %d (every source line passes through, nothing deferred)", len(w.lines), len(lines))
	}
	if !hashedID.Equal(protocol.IntID(1)) {
		t.Errorf("OnDocumentHash id = %s, want 1", hashedID)
	}
	if hash == "" {
		t.Error("OnDocumentHash hash is empty")
	}
}

func TestRunSkipsBlankLines(t *testing.T) {
	w := &fakeWriter{}
	d := &Driver{Writer: w}

	rs := protocol.NewResultSet(protocol.IntID(1))
	input := "\n" + marshalLine(t, rs) + "\n\n   \n"

	if err := d.Run(bytes.NewBufferString(input)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(w.lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1 (blank lines skipped)", len(w.lines))
	}
}

package document

import (
	"encoding/json"
	"testing"

	"github.com/sourcegraph/lsif-link/protocol"
)

func pos(line, character int) protocol.Pos {
	return protocol.Pos{Line: line, Character: character}
}

func TestOnDocumentEndHashesContentsAndRanges(t *testing.T) {
	a := New()

	doc := protocol.NewDocument(protocol.IntID(1), "file:///a.ts", []byte("const x = 1"))
	a.IngestDocument(doc)

	if err := a.OnDocumentBegin(protocol.IntID(1)); err != nil {
		t.Fatalf("OnDocumentBegin: %v", err)
	}

	r := protocol.NewRange(protocol.IntID(2), pos(0, 6), pos(0, 7))
	a.IngestRange(r)
	a.IngestContains(protocol.NewContains(protocol.IntID(3), protocol.IntID(1), []protocol.ID{protocol.IntID(2)}))

	hash, err := a.OnDocumentEnd(protocol.IntID(1))
	if err != nil {
		t.Fatalf("OnDocumentEnd: %v", err)
	}
	if hash == "" {
		t.Fatal("expected a non-empty hash")
	}
}

func TestOnDocumentEndIsDeterministicAcrossRangeOrder(t *testing.T) {
	build := func(order []protocol.ID) string {
		a := New()
		a.IngestDocument(protocol.NewDocument(protocol.IntID(1), "file:///a.ts", []byte("xy")))
		if err := a.OnDocumentBegin(protocol.IntID(1)); err != nil {
			t.Fatalf("OnDocumentBegin: %v", err)
		}
		a.IngestRange(protocol.NewRange(protocol.IntID(2), pos(0, 0), pos(0, 1)))
		a.IngestRange(protocol.NewRange(protocol.IntID(3), pos(1, 0), pos(1, 1)))
		a.IngestContains(protocol.NewContains(protocol.IntID(4), protocol.IntID(1), order))

		hash, err := a.OnDocumentEnd(protocol.IntID(1))
		if err != nil {
			t.Fatalf("OnDocumentEnd: %v", err)
		}
		return hash
	}

	forward := build([]protocol.ID{protocol.IntID(2), protocol.IntID(3)})
	reversed := build([]protocol.ID{protocol.IntID(3), protocol.IntID(2)})

	if forward != reversed {
		t.Fatalf("hash depends on contains order: %q != %q", forward, reversed)
	}
}

func TestWalkIncludesLocalHoverButExcludesNonLocalHover(t *testing.T) {
	a := New()
	a.IngestDocument(protocol.NewDocument(protocol.IntID(1), "file:///a.ts", nil))
	if err := a.OnDocumentBegin(protocol.IntID(1)); err != nil {
		t.Fatalf("OnDocumentBegin: %v", err)
	}

	// Range 2 carries a local moniker and a hover: the hover belongs in the blob.
	a.IngestRange(protocol.NewRange(protocol.IntID(2), pos(0, 0), pos(0, 1)))
	a.IngestMoniker(protocol.NewMoniker(protocol.IntID(20), protocol.MonikerLocal, protocol.LocalScheme, "local-sym"))
	a.IngestMonikerEdge(protocol.NewMonikerEdge(protocol.IntID(21), protocol.IntID(2), protocol.IntID(20)))
	a.IngestHoverResult(protocol.NewHoverResult(protocol.IntID(22), []protocol.MarkedString{protocol.RawMarkedString("local hover")}))
	a.IngestTextDocumentHover(protocol.NewTextDocumentHover(protocol.IntID(23), protocol.IntID(2), protocol.IntID(22)))

	// Range 3 carries an export moniker and a hover: the hover is excluded.
	a.IngestRange(protocol.NewRange(protocol.IntID(3), pos(1, 0), pos(1, 1)))
	a.IngestMoniker(protocol.NewMoniker(protocol.IntID(30), protocol.MonikerExport, "npm", "pkg::sym"))
	a.IngestMonikerEdge(protocol.NewMonikerEdge(protocol.IntID(31), protocol.IntID(3), protocol.IntID(30)))
	a.IngestHoverResult(protocol.NewHoverResult(protocol.IntID(32), []protocol.MarkedString{protocol.RawMarkedString("exported hover")}))
	a.IngestTextDocumentHover(protocol.NewTextDocumentHover(protocol.IntID(33), protocol.IntID(3), protocol.IntID(32)))

	a.IngestContains(protocol.NewContains(protocol.IntID(4), protocol.IntID(1), []protocol.ID{protocol.IntID(2), protocol.IntID(3)}))

	blob, err := a.walk(a.open[protocol.IntID(1)])
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	if _, ok := blob.Hovers[protocol.IntID(22)]; !ok {
		t.Error("expected the locally-reached hover to be included")
	}
	if _, ok := blob.Hovers[protocol.IntID(32)]; ok {
		t.Error("expected the non-locally-reached hover to be excluded")
	}
	if len(blob.Monikers) != 2 {
		t.Errorf("expected both monikers to be included regardless of hover dedup, got %d", len(blob.Monikers))
	}
}

func TestWalkFollowsNextChainThroughResultSets(t *testing.T) {
	a := New()
	a.IngestDocument(protocol.NewDocument(protocol.IntID(1), "file:///a.ts", nil))
	if err := a.OnDocumentBegin(protocol.IntID(1)); err != nil {
		t.Fatalf("OnDocumentBegin: %v", err)
	}

	a.IngestRange(protocol.NewRange(protocol.IntID(2), pos(0, 0), pos(0, 1)))
	a.IngestResultSet(protocol.NewResultSet(protocol.IntID(10)))
	a.IngestNext(protocol.NewNext(protocol.IntID(11), protocol.IntID(2), protocol.IntID(10)))
	a.IngestMoniker(protocol.NewMoniker(protocol.IntID(20), protocol.MonikerImport, "npm", "dep::sym"))
	a.IngestMonikerEdge(protocol.NewMonikerEdge(protocol.IntID(21), protocol.IntID(10), protocol.IntID(20)))
	a.IngestContains(protocol.NewContains(protocol.IntID(4), protocol.IntID(1), []protocol.ID{protocol.IntID(2)}))

	blob, err := a.walk(a.open[protocol.IntID(1)])
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	if _, ok := blob.ResultSets[protocol.IntID(10)]; !ok {
		t.Error("expected the result set reached via next to be included")
	}
	if _, ok := blob.Monikers[protocol.IntID(20)]; !ok {
		t.Error("expected the moniker attached to the result set to be included")
	}
}

func TestOnDocumentEndRejectsFlatDocumentSymbols(t *testing.T) {
	a := New()
	a.IngestDocument(protocol.NewDocument(protocol.IntID(1), "file:///a.ts", nil))
	if err := a.OnDocumentBegin(protocol.IntID(1)); err != nil {
		t.Fatalf("OnDocumentBegin: %v", err)
	}

	flat, _ := json.Marshal([]protocol.DocumentSymbol{{Text: "foo", Kind: 12}})
	a.IngestDocumentSymbolResult(protocol.NewDocumentSymbolResult(protocol.IntID(5), flat))
	a.IngestTextDocumentDocumentSymbol(protocol.NewTextDocumentDocumentSymbol(protocol.IntID(6), protocol.IntID(1), protocol.IntID(5)))

	if _, err := a.OnDocumentEnd(protocol.IntID(1)); err != ErrFlatDocumentSymbols {
		t.Fatalf("expected ErrFlatDocumentSymbols, got %v", err)
	}
}

func TestOnDocumentEndRejectsDanglingDocumentSymbolRange(t *testing.T) {
	a := New()
	a.IngestDocument(protocol.NewDocument(protocol.IntID(1), "file:///a.ts", nil))
	if err := a.OnDocumentBegin(protocol.IntID(1)); err != nil {
		t.Fatalf("OnDocumentBegin: %v", err)
	}

	rangeBased, _ := json.Marshal([]protocol.RangeBasedDocumentSymbol{{ID: protocol.IntID(99)}})
	a.IngestDocumentSymbolResult(protocol.NewDocumentSymbolResult(protocol.IntID(5), rangeBased))
	a.IngestTextDocumentDocumentSymbol(protocol.NewTextDocumentDocumentSymbol(protocol.IntID(6), protocol.IntID(1), protocol.IntID(5)))

	_, err := a.OnDocumentEnd(protocol.IntID(1))
	if _, ok := err.(*ErrDanglingDocumentSymbolRange); !ok {
		t.Fatalf("expected *ErrDanglingDocumentSymbolRange, got %v (%T)", err, err)
	}
}

func TestOnDocumentEndUnknownDocumentIsNoop(t *testing.T) {
	a := New()
	hash, err := a.OnDocumentEnd(protocol.IntID(999))
	if err != nil {
		t.Fatalf("OnDocumentEnd: %v", err)
	}
	if hash != "" {
		t.Fatalf("expected an empty hash for an unopened document, got %q", hash)
	}
}

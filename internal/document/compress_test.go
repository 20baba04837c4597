package document

import (
	"testing"

	"github.com/hexops/autogold"

	"github.com/sourcegraph/lsif-link/protocol"
)

// TestCompressRange pins the positional array shape compressRange produces,
// the same way the teacher snapshot-tests a computed value with autogold
// rather than hand-writing a struct-equality assertion.
func TestCompressRange(t *testing.T) {
	got := compressRange(RangeData{
		ID:    protocol.IntID(2),
		Start: pos(3, 4),
		End:   pos(3, 9),
		Tag:   &protocol.RangeTag{Type: "definition", Text: "foo"},
	})

	autogold.Want("range_with_tag", []interface{}{3, 4, 3, 9, []interface{}{"definition", "foo"}}).Equal(t, got)
}

func TestCompressRangeWithoutTag(t *testing.T) {
	got := compressRange(RangeData{ID: protocol.IntID(2), Start: pos(0, 0), End: pos(0, 1)})

	autogold.Want("range_without_tag", []interface{}{0, 0, 0, 1, nil}).Equal(t, got)
}

func TestCompressMoniker(t *testing.T) {
	got := compressMoniker(MonikerData{
		Scheme:     "npm",
		Identifier: "pkg@1.0.0::foo",
		Kind:       protocol.MonikerExport,
		Unique:     protocol.UniqueScheme,
	})

	autogold.Want("moniker", []interface{}{"npm", "pkg@1.0.0::foo", "export", "scheme"}).Equal(t, got)
}

func TestCompressDocumentSymbolNestedTree(t *testing.T) {
	ranges := map[protocol.ID]RangeData{
		protocol.IntID(1): {ID: protocol.IntID(1), Start: pos(0, 0), End: pos(0, 5)},
		protocol.IntID(2): {ID: protocol.IntID(2), Start: pos(1, 0), End: pos(1, 5)},
	}
	node := DocumentSymbolNode{
		RangeID: protocol.IntID(1),
		Children: []DocumentSymbolNode{
			{RangeID: protocol.IntID(2)},
		},
	}

	got, ok := compressDocumentSymbol(node, ranges)
	if !ok {
		t.Fatal("expected compressDocumentSymbol to succeed for ranges present in the blob")
	}

	autogold.Want("nested_tree", []interface{}{
		[]interface{}{0, 0, 0, 5, nil},
		[]interface{}{
			[]interface{}{[]interface{}{1, 0, 1, 5, nil}, []interface{}{}},
		},
	}).Equal(t, got)
}

func TestCompressDocumentSymbolDanglingRange(t *testing.T) {
	_, ok := compressDocumentSymbol(DocumentSymbolNode{RangeID: protocol.IntID(99)}, map[protocol.ID]RangeData{})
	if ok {
		t.Fatal("expected compressDocumentSymbol to fail when the range is not in the blob")
	}
}

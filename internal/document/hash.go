package document

import (
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"sort"

	jsoniter "github.com/json-iterator/go"

	"github.com/sourcegraph/lsif-link/protocol"
)

var fastJSON = jsoniter.ConfigFastest

// ErrFlatDocumentSymbols is returned by Assembler.OnDocumentEnd, while the
// blob is assembled and before it is hashed, when a document's symbols were
// stored in the flat (non-range-based) form spec §4.2 step 5 disallows.
var ErrFlatDocumentSymbols = fmt.Errorf("document symbols must be range-based; flat form is not supported for hashing")

// ErrDanglingDocumentSymbolRange is returned when a range-based document
// symbol points at a range that never made it into the blob (spec §4.2
// "Validation during assembly").
type ErrDanglingDocumentSymbolRange struct {
	RangeID protocol.ID
}

func (e *ErrDanglingDocumentSymbolRange) Error() string {
	return fmt.Sprintf("document symbol references range %s which is not present in the blob", e.RangeID)
}

// Hash computes the canonical MD5 digest of b, base64-encoded, following
// spec §4.2's six ordered feed steps.
func Hash(b *Blob) (string, error) {
	h := md5.New()

	h.Write([]byte(b.Contents))

	if err := feedRanges(h, b.Ranges); err != nil {
		return "", err
	}
	if err := feedMonikers(h, b.Monikers); err != nil {
		return "", err
	}
	if err := feedFoldingRanges(h, b.FoldingRanges); err != nil {
		return "", err
	}
	if err := feedDocumentSymbols(h, b.DocumentSymbols, b.Ranges); err != nil {
		return "", err
	}
	if err := feedDiagnostics(h, b.Diagnostics); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}

func feedJSON(h interface{ Write([]byte) (int, error) }, v interface{}) error {
	data, err := fastJSON.Marshal(v)
	if err != nil {
		return err
	}
	_, err = h.Write(data)
	if err != nil {
		return err
	}
	_, err = h.Write([]byte{'\n'})
	return err
}

func feedRanges(h interface{ Write([]byte) (int, error) }, ranges map[protocol.ID]RangeData) error {
	sorted := make([]RangeData, 0, len(ranges))
	for _, r := range ranges {
		sorted = append(sorted, r)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return rangeCompare(sorted[i], sorted[j]) < 0
	})

	for _, r := range sorted {
		if err := feedJSON(h, compressRange(r)); err != nil {
			return err
		}
	}
	return nil
}

// rangeCompare orders ranges by (start.line, start.character, end.line,
// end.character) ascending, per spec §4.2 step 2.
func rangeCompare(a, b RangeData) int {
	switch {
	case a.Start.Line != b.Start.Line:
		return a.Start.Line - b.Start.Line
	case a.Start.Character != b.Start.Character:
		return a.Start.Character - b.Start.Character
	case a.End.Line != b.End.Line:
		return a.End.Line - b.End.Line
	default:
		return a.End.Character - b.End.Character
	}
}

// monikerKindRank orders import before export; every other (including
// local and undefined) kind is treated as import, per spec §4.2 step 3.
func monikerKindRank(k protocol.MonikerKind) int {
	if k == protocol.MonikerExport {
		return 1
	}
	return 0
}

func feedMonikers(h interface{ Write([]byte) (int, error) }, monikers map[protocol.ID]MonikerData) error {
	sorted := make([]MonikerData, 0, len(monikers))
	for _, m := range monikers {
		sorted = append(sorted, m)
	}
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Identifier != b.Identifier {
			return a.Identifier < b.Identifier
		}
		if a.Scheme != b.Scheme {
			return a.Scheme < b.Scheme
		}
		return monikerKindRank(a.Kind) < monikerKindRank(b.Kind)
	})

	for _, m := range sorted {
		if err := feedJSON(h, compressMoniker(m)); err != nil {
			return err
		}
	}
	return nil
}

func feedFoldingRanges(h interface{ Write([]byte) (int, error) }, ranges []protocol.FoldingRange) error {
	for _, f := range ranges {
		if err := feedJSON(h, compressFoldingRange(f)); err != nil {
			return err
		}
	}
	return nil
}

func feedDocumentSymbols(h interface{ Write([]byte) (int, error) }, symbols []DocumentSymbolNode, ranges map[protocol.ID]RangeData) error {
	for _, root := range symbols {
		compressed, ok := compressDocumentSymbol(root, ranges)
		if !ok {
			var missing func(DocumentSymbolNode) protocol.ID
			missing = func(n DocumentSymbolNode) protocol.ID {
				if _, ok := ranges[n.RangeID]; !ok {
					return n.RangeID
				}
				for _, child := range n.Children {
					if id := missing(child); id != protocol.NilID {
						return id
					}
				}
				return protocol.NilID
			}
			return &ErrDanglingDocumentSymbolRange{RangeID: missing(root)}
		}
		if err := feedJSON(h, compressed); err != nil {
			return err
		}
	}
	return nil
}

func feedDiagnostics(h interface{ Write([]byte) (int, error) }, diagnostics []protocol.Diagnostic) error {
	sorted := make([]protocol.Diagnostic, len(diagnostics))
	copy(sorted, diagnostics)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		ra, rb := RangeData{Start: a.Range.Start, End: a.Range.End}, RangeData{Start: b.Range.Start, End: b.Range.End}
		if cmp := rangeCompare(ra, rb); cmp != 0 {
			return cmp < 0
		}
		return a.Message < b.Message
	})

	for _, d := range sorted {
		if err := feedJSON(h, compressDiagnostic(d)); err != nil {
			return err
		}
	}
	return nil
}

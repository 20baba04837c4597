package document

import "github.com/sourcegraph/lsif-link/protocol"

// compressRange serializes a range as a positional array so the hash never
// depends on property-name ordering (spec §4.2 "The compressor..."). The
// tag slot is nil when the range carries no symbol tag.
func compressRange(r RangeData) []interface{} {
	var tag interface{}
	if r.Tag != nil {
		tag = []interface{}{r.Tag.Type, r.Tag.Text}
	}
	return []interface{}{r.Start.Line, r.Start.Character, r.End.Line, r.End.Character, tag}
}

// compressMoniker serializes a moniker as a positional array.
func compressMoniker(m MonikerData) []interface{} {
	return []interface{}{m.Scheme, m.Identifier, string(m.Kind), string(m.Unique)}
}

// compressFoldingRange serializes a folding range as a positional array.
func compressFoldingRange(f protocol.FoldingRange) []interface{} {
	return []interface{}{f.StartLine, f.StartCharacter, f.EndLine, f.EndCharacter, f.Kind}
}

// compressDiagnostic serializes a diagnostic as a positional array, range
// first so the diagnostic sort key and the hash feed agree.
func compressDiagnostic(d protocol.Diagnostic) []interface{} {
	rangeData := RangeData{Start: d.Range.Start, End: d.Range.End}
	return []interface{}{compressRange(rangeData), d.Severity, d.Code, d.Message, d.Source}
}

// compressDocumentSymbol serializes a range-based document-symbol node as
// the nested tuple tree spec §4.2 step 5 describes: [compressed_range,
// [children...]]. ranges resolves a range id to its blob data; ok is false
// if a referenced range was never part of the blob (spec's "Validation
// during assembly" fatal case).
func compressDocumentSymbol(node DocumentSymbolNode, ranges map[protocol.ID]RangeData) (interface{}, bool) {
	r, ok := ranges[node.RangeID]
	if !ok {
		return nil, false
	}

	children := make([]interface{}, 0, len(node.Children))
	for _, child := range node.Children {
		compressed, ok := compressDocumentSymbol(child, ranges)
		if !ok {
			return nil, false
		}
		children = append(children, compressed)
	}

	return []interface{}{compressRange(r), children}, true
}

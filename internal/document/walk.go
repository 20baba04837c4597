package document

import "github.com/sourcegraph/lsif-link/protocol"

// walk assembles doc's blob by following, from every range it contains, the
// next/moniker/hover links reachable from that range (spec §4.2 "Reachability
// walk"). A range's own chain of result sets is followed until it runs out;
// every moniker seen along the way is copied into the blob, but a hover is
// copied in only if the moniker reaching it at that same node is absent or
// local (scheme "$local") — a hover reached through an exported or imported
// moniker already belongs to that symbol's own blob elsewhere and would
// otherwise be duplicated.
func (a *Assembler) walk(doc *openDocument) (*Blob, error) {
	blob := &Blob{
		Contents:   doc.contents,
		Ranges:     map[protocol.ID]RangeData{},
		ResultSets: map[protocol.ID]ResultSetData{},
		Monikers:   map[protocol.ID]MonikerData{},
		Hovers:     map[protocol.ID]HoverData{},
	}

	visited := map[protocol.ID]bool{}

	for _, rangeID := range doc.rangeIDs {
		rd, ok := a.ranges[rangeID]
		if !ok {
			continue
		}
		blob.Ranges[rangeID] = rd
		a.walkChain(rangeID, blob, visited)
	}

	if doc.foldingRangeResultID != protocol.NilID {
		blob.FoldingRanges = a.foldingRangeResults[doc.foldingRangeResultID]
	}

	if doc.diagnosticResultID != protocol.NilID {
		blob.Diagnostics = a.diagnosticResults[doc.diagnosticResultID]
	}

	if doc.documentSymbolResultID != protocol.NilID {
		result, ok := a.documentSymbolResults[doc.documentSymbolResultID]
		if ok {
			symbols, err := decodeDocumentSymbols(result)
			if err != nil {
				return nil, err
			}
			blob.DocumentSymbols = symbols
		}
	}

	return blob, nil
}

// walkChain follows the next-edge chain starting at node, recording every
// moniker encountered and deciding, node by node, whether an attached hover
// belongs in the blob.
func (a *Assembler) walkChain(node protocol.ID, blob *Blob, visited map[protocol.ID]bool) {
	for {
		if visited[node] {
			return
		}
		visited[node] = true

		monikerIDs := a.monikerOf[node]
		localOnly := true
		for _, monikerID := range monikerIDs {
			m, ok := a.monikers[monikerID]
			if !ok {
				continue
			}
			blob.Monikers[monikerID] = m
			if m.Scheme != protocol.LocalScheme {
				localOnly = false
			}
		}

		if hoverID, ok := a.hoverOf[node]; ok && localOnly {
			if h, ok := a.hovers[hoverID]; ok {
				blob.Hovers[hoverID] = h
			}
		}

		next, ok := a.next[node]
		if !ok {
			return
		}
		if a.resultSets[next] {
			blob.ResultSets[next] = ResultSetData{ID: next}
		}
		node = next
	}
}

func decodeDocumentSymbols(result *protocol.DocumentSymbolResult) ([]DocumentSymbolNode, error) {
	symbols, ok, err := protocol.DecodeRangeBased(result.Result)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrFlatDocumentSymbols
	}
	return convertDocumentSymbols(symbols), nil
}

func convertDocumentSymbols(symbols []protocol.RangeBasedDocumentSymbol) []DocumentSymbolNode {
	nodes := make([]DocumentSymbolNode, 0, len(symbols))
	for _, s := range symbols {
		nodes = append(nodes, DocumentSymbolNode{RangeID: s.ID, Children: convertDocumentSymbols(s.Children)})
	}
	return nodes
}

// Package validate implements the Validator: per-vertex and per-edge schema
// and invariant checks reported through a diagnostic sink without halting
// the stream (spec §4.3).
package validate

import (
	"fmt"

	"github.com/sourcegraph/lsif-link/internal/diagnostic"
	"github.com/sourcegraph/lsif-link/internal/schema"
	"github.com/sourcegraph/lsif-link/protocol"
)

// Validator tracks the element ids and event brackets needed to check
// forward references and shard-openness as a stream goes by. It is driven
// one element at a time and is not safe for concurrent use.
type Validator struct {
	sink diagnostic.Sink

	// emitted holds every vertex id seen so far, and the label it was
	// emitted under, for check 2 (referenced ids previously emitted) and
	// check 3 (shared inVs label).
	emitted map[protocol.ID]protocol.VertexLabel

	// open and closed track begin/end event brackets for check 5
	// (shard-openness). An id moves from open to closed on its matching
	// end event and is never reopened.
	open   map[protocol.ID]bool
	closed map[protocol.ID]bool
}

// New returns a Validator reporting to sink.
func New(sink diagnostic.Sink) *Validator {
	return &Validator{
		sink:    sink,
		emitted: map[protocol.ID]protocol.VertexLabel{},
		open:    map[protocol.ID]bool{},
		closed:  map[protocol.ID]bool{},
	}
}

func (v *Validator) report(sev diagnostic.Severity, id protocol.ID, label, format string, args ...interface{}) {
	v.sink.Report(diagnostic.Diagnostic{
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		ID:       id,
		Label:    label,
	})
}

// ValidateVertex runs the per-vertex checks against r and records its id as
// emitted so later edges can reference it.
func (v *Validator) ValidateVertex(r protocol.RawElement) {
	label := protocol.VertexLabel(r.Label)

	v.checkRequiredProperties(r, label)
	v.checkVertexEnums(r, label)
	v.checkVertexWellFormedness(r, label)

	v.emitted[r.ID] = label

	if label == protocol.VertexEvent {
		v.trackEvent(r)
	}
}

// ValidateEdge runs the five ordered per-edge checks against r (spec §4.3
// "Per-edge checks (in order)").
func (v *Validator) ValidateEdge(r protocol.RawElement) {
	label := protocol.EdgeLabel(r.Label)

	if !v.checkRequiredProperties(r, label) {
		return
	}

	outV, inVs, ok := v.decodeEndpoints(r, label)
	if !ok {
		return
	}

	if !v.checkReferencesEmitted(r, label, outV, inVs) {
		return
	}

	inLabel, ok := v.checkSharedInVsLabel(r, label, inVs)
	if !ok {
		return
	}

	v.checkPermittedEndpoints(r, label, v.emitted[outV], inLabel)

	if label == protocol.EdgeItem {
		v.checkShardOpen(r, inVs)
	}
}

func (v *Validator) checkRequiredProperties(r protocol.RawElement, label interface{}) bool {
	var required []string
	switch l := label.(type) {
	case protocol.VertexLabel:
		required = schema.RequiredVertexProperties[l]
	case protocol.EdgeLabel:
		required = schema.RequiredEdgeProperties[l]
	}

	ok := true
	for _, name := range required {
		if !r.Has(name) {
			v.report(diagnostic.Error, r.ID, r.Label, "missing required property %q", name)
			ok = false
		}
	}
	return ok
}

func (v *Validator) checkVertexEnums(r protocol.RawElement, label protocol.VertexLabel) {
	if label != protocol.VertexMoniker {
		return
	}

	if r.Has("kind") {
		var kind protocol.MonikerKind
		if err := r.Decode("kind", &kind); err == nil && !schema.MonikerKinds[kind] {
			v.report(diagnostic.Error, r.ID, r.Label, "moniker kind %q is not a permitted value", kind)
		}
	}
	if r.Has("unique") {
		var unique protocol.MonikerUnique
		if err := r.Decode("unique", &unique); err == nil && !schema.MonikerUniques[unique] {
			v.report(diagnostic.Error, r.ID, r.Label, "moniker unique %q is not a permitted value", unique)
		}
	}
}

// checkVertexWellFormedness checks positional fields that the required-
// property and enum checks above don't reach: a range's start/end
// coordinates must be non-negative and start must not come after end.
func (v *Validator) checkVertexWellFormedness(r protocol.RawElement, label protocol.VertexLabel) {
	if label != protocol.VertexRange {
		return
	}

	var start, end protocol.Pos
	if r.Has("start") {
		if err := r.Decode("start", &start); err != nil {
			v.report(diagnostic.Error, r.ID, r.Label, "start is not well-typed: %v", err)
			return
		}
	}
	if r.Has("end") {
		if err := r.Decode("end", &end); err != nil {
			v.report(diagnostic.Error, r.ID, r.Label, "end is not well-typed: %v", err)
			return
		}
	}

	if start.Line < 0 || start.Character < 0 {
		v.report(diagnostic.Error, r.ID, r.Label, "start position (%d, %d) has a negative coordinate", start.Line, start.Character)
	}
	if end.Line < 0 || end.Character < 0 {
		v.report(diagnostic.Error, r.ID, r.Label, "end position (%d, %d) has a negative coordinate", end.Line, end.Character)
	}
	if end.Line < start.Line || (end.Line == start.Line && end.Character < start.Character) {
		v.report(diagnostic.Error, r.ID, r.Label, "end position (%d, %d) precedes start position (%d, %d)", end.Line, end.Character, start.Line, start.Character)
	}
}

// decodeEndpoints reads outV and the full inV/inVs set (1→1 edges report a
// single-element slice) from r's wire-typed fields.
func (v *Validator) decodeEndpoints(r protocol.RawElement, label protocol.EdgeLabel) (outV protocol.ID, inVs []protocol.ID, ok bool) {
	if err := r.Decode("outV", &outV); err != nil {
		v.report(diagnostic.Error, r.ID, r.Label, "outV is not well-typed: %v", err)
		return protocol.NilID, nil, false
	}

	if schema.IsOneToMany(label) {
		if err := r.Decode("inVs", &inVs); err != nil {
			v.report(diagnostic.Error, r.ID, r.Label, "inVs is not well-typed: %v", err)
			return protocol.NilID, nil, false
		}
	} else {
		var inV protocol.ID
		if err := r.Decode("inV", &inV); err != nil {
			v.report(diagnostic.Error, r.ID, r.Label, "inV is not well-typed: %v", err)
			return protocol.NilID, nil, false
		}
		inVs = []protocol.ID{inV}
	}

	return outV, inVs, true
}

func (v *Validator) checkReferencesEmitted(r protocol.RawElement, label protocol.EdgeLabel, outV protocol.ID, inVs []protocol.ID) bool {
	// item edges reference definition/reference-style result vertices
	// outside this package's modeled label set; skip the emitted-set
	// check entirely and rely on shard-openness instead (check 5).
	if label == protocol.EdgeItem {
		return true
	}

	ok := true
	if _, seen := v.emitted[outV]; !seen {
		v.report(diagnostic.Error, r.ID, r.Label, "outV %s references vertices are not emitted yet", outV)
		ok = false
	}
	for _, in := range inVs {
		if _, seen := v.emitted[in]; !seen {
			v.report(diagnostic.Error, r.ID, r.Label, "inV %s references vertices are not emitted yet", in)
			ok = false
		}
	}
	return ok
}

func (v *Validator) checkSharedInVsLabel(r protocol.RawElement, label protocol.EdgeLabel, inVs []protocol.ID) (protocol.VertexLabel, bool) {
	if len(inVs) == 0 {
		return "", true
	}

	first := v.emitted[inVs[0]]
	if !schema.IsOneToMany(label) {
		return first, true
	}

	for _, in := range inVs[1:] {
		if v.emitted[in] != first {
			v.report(diagnostic.Error, r.ID, r.Label, "inVs elements do not share a single vertex label")
			return first, false
		}
	}
	return first, true
}

func (v *Validator) checkPermittedEndpoints(r protocol.RawElement, label protocol.EdgeLabel, outLabel, inLabel protocol.VertexLabel) {
	if label == protocol.EdgeItem {
		return
	}
	if !schema.Permitted(label, outLabel, inLabel) {
		v.report(diagnostic.Error, r.ID, r.Label, "endpoint pair (%s, %s) is not permitted for edge %q", outLabel, inLabel, label)
	}
}

func (v *Validator) checkShardOpen(r protocol.RawElement, inVs []protocol.ID) {
	var shard protocol.ID
	if err := r.Decode("shard", &shard); err != nil {
		v.report(diagnostic.Error, r.ID, r.Label, "shard is not well-typed: %v", err)
		return
	}

	if v.closed[shard] {
		v.report(diagnostic.Error, r.ID, r.Label, "shard %s is already closed", shard)
		return
	}
	if !v.open[shard] {
		v.report(diagnostic.Error, r.ID, r.Label, "shard %s is not currently open", shard)
	}
}

func (v *Validator) trackEvent(r protocol.RawElement) {
	var kind protocol.EventKind
	var scope protocol.EventScope
	var data protocol.ID

	if err := r.Decode("kind", &kind); err != nil {
		return
	}
	if err := r.Decode("scope", &scope); err != nil {
		return
	}
	if err := r.Decode("data", &data); err != nil {
		return
	}

	if !schema.EventKinds[kind] {
		v.report(diagnostic.Error, r.ID, r.Label, "event kind %q is not a permitted value", kind)
	}
	if !schema.EventScopes[scope] {
		v.report(diagnostic.Error, r.ID, r.Label, "event scope %q is not a permitted value", scope)
	}

	switch kind {
	case protocol.EventBegin:
		v.open[data] = true
	case protocol.EventEnd:
		delete(v.open, data)
		v.closed[data] = true
	}
}

package protocol

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var fastJSON = jsoniter.ConfigFastest

// RawElement is a vertex or edge decoded only as far as its id, type, and
// label, plus a field map for presence checks. The driver routes on
// (Type, Label) and decodes the line again into the concrete struct for that
// label before calling the Linker or DocumentAssembler; the Validator works
// on Fields directly, so it can report missing or ill-typed properties
// rather than fail to decode (Design Note "Heterogeneous elements").
type RawElement struct {
	ID     ID
	Type   ElementType
	Label  string
	Fields map[string]jsoniter.RawMessage
}

// ParseRawElement decodes one NDJSON line into a RawElement. It fails if the
// line is not a JSON object or is missing id/type/label.
func ParseRawElement(line []byte) (RawElement, error) {
	var envelope struct {
		ID    ID          `json:"id"`
		Type  ElementType `json:"type"`
		Label string      `json:"label"`
	}
	if err := fastJSON.Unmarshal(line, &envelope); err != nil {
		return RawElement{}, fmt.Errorf("decode element envelope: %w", err)
	}

	var fields map[string]jsoniter.RawMessage
	if err := fastJSON.Unmarshal(line, &fields); err != nil {
		return RawElement{}, fmt.Errorf("decode element fields: %w", err)
	}
	for _, name := range []string{"id", "type", "label"} {
		if _, ok := fields[name]; !ok {
			return RawElement{}, fmt.Errorf("element is missing required property %q", name)
		}
	}

	return RawElement{ID: envelope.ID, Type: envelope.Type, Label: envelope.Label, Fields: fields}, nil
}

// Has reports whether name was present as a top-level JSON property.
func (r RawElement) Has(name string) bool {
	_, ok := r.Fields[name]
	return ok
}

// Decode unmarshals the named top-level property into out.
func (r RawElement) Decode(name string, out interface{}) error {
	raw, ok := r.Fields[name]
	if !ok {
		return fmt.Errorf("field %q is not present", name)
	}
	return fastJSON.Unmarshal(raw, out)
}

// IsVertex reports whether the element is a vertex of the given label.
func (r RawElement) IsVertex(label VertexLabel) bool {
	return r.Type == ElementVertex && r.Label == string(label)
}

// IsEdge reports whether the element is an edge of the given label.
func (r RawElement) IsEdge(label EdgeLabel) bool {
	return r.Type == ElementEdge && r.Label == string(label)
}

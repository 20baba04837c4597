package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is the identifier of a vertex or edge. The wire format allows either a
// JSON number or a JSON opaque string (Design Note "Id polymorphism"); a
// single stream must commit to one representation. Comparing or ordering
// across the two variants is a programmer error and returns a non-nil error
// rather than a silently wrong result.
type ID struct {
	text   string
	num    int64
	isText bool
}

// IntID builds an integer-mode identifier.
func IntID(n int64) ID {
	return ID{num: n}
}

// TextID builds an opaque string-mode identifier.
func TextID(s string) ID {
	return ID{text: s, isText: true}
}

// NilID is the zero value of ID; it never appears on the wire.
var NilID = ID{}

// IsNil reports whether id is the zero value.
func (id ID) IsNil() bool {
	return !id.isText && id.num == 0
}

// IsText reports whether id was constructed in opaque string mode.
func (id ID) IsText() bool {
	return id.isText
}

// Int returns the integer value of id. It panics if id is text-mode; callers
// should check IsText first.
func (id ID) Int() int64 {
	if id.isText {
		panic("protocol: Int() called on a text-mode ID")
	}
	return id.num
}

// String renders id for logging and diagnostics. It never fails.
func (id ID) String() string {
	if id.isText {
		return id.text
	}
	return strconv.FormatInt(id.num, 10)
}

// MarshalJSON renders id in the variant it was constructed with.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.isText {
		return json.Marshal(id.text)
	}
	return json.Marshal(id.num)
}

// UnmarshalJSON decodes id as text-mode if the token is a JSON string, and
// integer-mode otherwise.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode text id: %w", err)
		}
		*id = TextID(s)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode integer id: %w", err)
	}
	*id = IntID(n)
	return nil
}

// Compare orders two ids of the same variant: negative if id < other, zero
// if equal, positive if id > other. It is an error to compare across variants.
func (id ID) Compare(other ID) (int, error) {
	if id.isText != other.isText {
		return 0, fmt.Errorf("mixed id modes: %q and %q belong to different id variants", id, other)
	}
	if id.isText {
		return strings.Compare(id.text, other.text), nil
	}
	switch {
	case id.num < other.num:
		return -1, nil
	case id.num > other.num:
		return 1, nil
	default:
		return 0, nil
	}
}

// Equal reports whether id and other denote the same identifier.
func (id ID) Equal(other ID) bool {
	c, err := id.Compare(other)
	return err == nil && c == 0
}

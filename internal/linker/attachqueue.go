package linker

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/sourcegraph/lsif-link/protocol"
)

// staged is one linker-generated vertex or edge, held until flush so it can
// be renumbered clear of the source stream's id space (spec §4.1 "Deferred
// emission").
type staged struct {
	element interface{}
	id      *protocol.ID // the field inside element holding its own id, patched at flush
}

// ref is a forward reference from one staged element's OutV/InV-style field
// to another staged element's id, resolved after every owning id has been
// assigned so staging order never matters.
type ref struct {
	target *protocol.ID
	source *protocol.ID
}

// AttachQueue buffers linker-generated elements in emission order and
// renumbers them at flush time: integer-id sources are offset past the
// largest id seen in the source stream, opaque-id sources get a fresh UUID
// per element. It is not safe for concurrent use.
type AttachQueue struct {
	items  []staged
	refs   []ref
	maxInt int64
	sawID  bool
	isText bool
}

// NewAttachQueue returns an empty queue.
func NewAttachQueue() *AttachQueue {
	return &AttachQueue{}
}

// Observe records a source-stream id so integer renumbering knows the
// largest id already in use. Every id from the driver's passthrough path
// must be reported here before Flush is called.
func (q *AttachQueue) Observe(id protocol.ID) error {
	if id.IsNil() {
		return nil
	}

	if !q.sawID {
		q.isText = id.IsText()
		q.sawID = true
	} else if q.isText != id.IsText() {
		return errors.Errorf("id mode mismatch: stream mixes integer and opaque ids (%s)", id)
	}

	if !id.IsText() && id.Int() > q.maxInt {
		q.maxInt = id.Int()
	}

	return nil
}

// Stage appends element to the queue. idField must point at the *protocol.ID
// field inside element that Flush should overwrite with the renumbered id;
// pass nil for elements (such as edges with no identity of their own callers
// care about) that need no rewrite.
func (q *AttachQueue) Stage(element interface{}, idField *protocol.ID) {
	q.items = append(q.items, staged{element: element, id: idField})
}

// Ref records that target should receive whatever final id source resolves
// to. source must be the same *protocol.ID passed as idField to an earlier
// or later Stage call; since refs are all applied after every owning id is
// assigned, staging order between a reference and what it points to does
// not matter.
func (q *AttachQueue) Ref(target, source *protocol.ID) {
	q.refs = append(q.refs, ref{target: target, source: source})
}

// Len reports how many elements are staged.
func (q *AttachQueue) Len() int {
	return len(q.items)
}

// Flush renumbers every staged element's id, resolves forward references,
// and returns the elements in emission order. It does not itself emit the
// bracketing monikerAttach events; the caller wraps the returned slice per
// spec §4.1.
func (q *AttachQueue) Flush() ([]interface{}, error) {
	if len(q.items) == 0 {
		return nil, nil
	}

	var (
		out []interface{}
		err error
	)
	if q.sawID && q.isText {
		out, err = q.flushOpaque()
	} else {
		out, err = q.flushInteger()
	}
	if err != nil {
		return nil, err
	}

	for _, r := range q.refs {
		*r.target = *r.source
	}

	return out, nil
}

func (q *AttachQueue) flushInteger() ([]interface{}, error) {
	next := q.maxInt + 1
	if next <= q.maxInt {
		return nil, errors.New("id exhaustion: source id already at maximum representable value")
	}

	out := make([]interface{}, 0, len(q.items))
	for _, s := range q.items {
		if s.id != nil {
			*s.id = protocol.IntID(next)
			next++
		}
		out = append(out, s.element)
	}
	q.maxInt = next - 1
	return out, nil
}

// Mint returns a fresh id in the same numbering space Flush uses, for ids
// the caller must mint itself outside the queue (the monikerAttach bracket
// events wrapping a flushed batch). Calling Mint before any Observe/Stage
// defaults to integer mode, matching an empty or all-integer stream.
func (q *AttachQueue) Mint() protocol.ID {
	if q.sawID && q.isText {
		return protocol.TextID(uuid.New().String())
	}
	q.maxInt++
	return protocol.IntID(q.maxInt)
}

func (q *AttachQueue) flushOpaque() ([]interface{}, error) {
	out := make([]interface{}, 0, len(q.items))
	for _, s := range q.items {
		if s.id != nil {
			*s.id = protocol.TextID(uuid.New().String())
		}
		out = append(out, s.element)
	}
	return out, nil
}

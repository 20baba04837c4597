package validate

import (
	"strings"
	"testing"

	"github.com/sourcegraph/lsif-link/internal/diagnostic"
	"github.com/sourcegraph/lsif-link/protocol"
)

func parse(t *testing.T, line string) protocol.RawElement {
	t.Helper()
	r, err := protocol.ParseRawElement([]byte(line))
	if err != nil {
		t.Fatalf("ParseRawElement: %v", err)
	}
	return r
}

func TestValidateEdgeReorderedReferenceIsReported(t *testing.T) {
	c := diagnostic.NewCollector()
	v := New(c)

	// inV references vertex id 2, never emitted.
	edge := parse(t, `{"id":1,"type":"edge","label":"next","outV":3,"inV":2}`)
	v.ValidateEdge(edge)

	if !c.HadError() {
		t.Fatal("expected an error diagnostic for a reference to an unemitted vertex")
	}

	found := false
	for _, d := range c.All() {
		if strings.Contains(d.Message, "not emitted yet") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a message mentioning 'not emitted yet', got %+v", c.All())
	}
}

func TestValidateVertexThenEdgeSucceeds(t *testing.T) {
	c := diagnostic.NewCollector()
	v := New(c)

	v.ValidateVertex(parse(t, `{"id":1,"type":"vertex","label":"range","start":{"line":0,"character":0},"end":{"line":0,"character":1}}`))
	v.ValidateVertex(parse(t, `{"id":2,"type":"vertex","label":"resultSet"}`))
	v.ValidateEdge(parse(t, `{"id":3,"type":"edge","label":"next","outV":1,"inV":2}`))

	if c.HadError() {
		t.Fatalf("expected no errors, got %+v", c.All())
	}
}

func TestValidateEdgeRejectsBadEndpointPair(t *testing.T) {
	c := diagnostic.NewCollector()
	v := New(c)

	v.ValidateVertex(parse(t, `{"id":1,"type":"vertex","label":"document","uri":"file:///a.ts"}`))
	v.ValidateVertex(parse(t, `{"id":2,"type":"vertex","label":"document","uri":"file:///b.ts"}`))
	// "next" only permits range->resultSet or resultSet->resultSet.
	v.ValidateEdge(parse(t, `{"id":3,"type":"edge","label":"next","outV":1,"inV":2}`))

	if !c.HadError() {
		t.Fatal("expected an error for a disallowed endpoint pair")
	}
}

func TestValidateEdgeRequiresMatchingInVsLabel(t *testing.T) {
	c := diagnostic.NewCollector()
	v := New(c)

	v.ValidateVertex(parse(t, `{"id":1,"type":"vertex","label":"project","kind":"typescript"}`))
	v.ValidateVertex(parse(t, `{"id":2,"type":"vertex","label":"document","uri":"file:///a.ts"}`))
	v.ValidateVertex(parse(t, `{"id":3,"type":"vertex","label":"range","start":{"line":0,"character":0},"end":{"line":0,"character":1}}`))

	v.ValidateEdge(parse(t, `{"id":4,"type":"edge","label":"contains","outV":1,"inVs":[2,3]}`))

	if !c.HadError() {
		t.Fatal("expected an error when inVs mixes vertex labels")
	}
}

func TestValidateItemRequiresOpenShard(t *testing.T) {
	c := diagnostic.NewCollector()
	v := New(c)

	v.ValidateVertex(parse(t, `{"id":1,"type":"vertex","label":"document","uri":"file:///a.ts"}`))
	v.ValidateVertex(parse(t, `{"id":2,"type":"vertex","label":"range","start":{"line":0,"character":0},"end":{"line":0,"character":1}}`))
	// shard 1 never opened via a document-scope begin event.
	v.ValidateEdge(parse(t, `{"id":3,"type":"edge","label":"item","outV":99,"inVs":[2],"shard":1}`))

	if !c.HadError() {
		t.Fatal("expected an error for an item edge whose shard is not open")
	}
}

func TestValidateItemSucceedsWhenShardOpen(t *testing.T) {
	c := diagnostic.NewCollector()
	v := New(c)

	v.ValidateVertex(parse(t, `{"id":1,"type":"vertex","label":"document","uri":"file:///a.ts"}`))
	v.ValidateVertex(parse(t, `{"id":10,"type":"vertex","label":"$event","kind":"begin","scope":"document","data":1}`))
	v.ValidateVertex(parse(t, `{"id":2,"type":"vertex","label":"range","start":{"line":0,"character":0},"end":{"line":0,"character":1}}`))

	v.ValidateEdge(parse(t, `{"id":3,"type":"edge","label":"item","outV":99,"inVs":[2],"shard":1}`))

	if c.HadError() {
		t.Fatalf("expected no error, got %+v", c.All())
	}
}

func TestValidateVertexRejectsNegativeRangeCoordinate(t *testing.T) {
	c := diagnostic.NewCollector()
	v := New(c)

	v.ValidateVertex(parse(t, `{"id":1,"type":"vertex","label":"range","start":{"line":-1,"character":0},"end":{"line":0,"character":1}}`))

	if !c.HadError() {
		t.Fatal("expected an error for a negative start coordinate")
	}
}

func TestValidateVertexRejectsEndBeforeStart(t *testing.T) {
	c := diagnostic.NewCollector()
	v := New(c)

	v.ValidateVertex(parse(t, `{"id":1,"type":"vertex","label":"range","start":{"line":5,"character":0},"end":{"line":3,"character":0}}`))

	if !c.HadError() {
		t.Fatal("expected an error when end precedes start")
	}
}

package sanitize

import (
	"testing"

	"github.com/modelpeek/go-modelpeek/ir"
)

func TestSanitizePrimitives(t *testing.T) {
	cases := []struct {
		name string
		in   *ir.Node
		want *Value
	}{
		{"null", ir.Null(), Null()},
		{"int", ir.FromInt(7), FromInt(7)},
		{"float", ir.FromFloat(2.5), FromFloat(2.5)},
		{"string", ir.FromString("x"), FromString("x")},
		{"bool", ir.FromBool(true), FromBool(true)},
		{"bytes", ir.FromBytes([]byte{1, 2}), FromString("bytes")},
		{"opaque", ir.Opaque("pkg.Widget"), FromString("pkg.Widget")},
		{"global", ir.Global("pkg", "Widget"), FromString("pkg.Widget")},
		{"placeholder", ir.Placeholder("float32"), FromString("float32-storage")},
		{"bare placeholder", ir.Placeholder(""), FromString("storage")},
	}
	for _, c := range cases {
		got := Sanitize(c.in)
		if !Equal(got, c.want) {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestSanitizeContainers(t *testing.T) {
	m := ir.EmptyMapping()
	m.SetItem(ir.FromString("a"), ir.FromSlice([]*ir.Node{
		ir.FromInt(1),
		ir.FromFloat(2.5),
		ir.FromString("x"),
		ir.Null(),
		ir.FromTuple([]*ir.Node{ir.FromBool(true), ir.FromBool(false)}),
	}))

	got := Sanitize(m)
	if got.Kind != MappingKind || got.Len() != 1 {
		t.Fatalf("expected 1-entry mapping, got %v", got)
	}
	seq := Get(got, "a")
	if seq == nil || seq.Kind != SequenceKind || len(seq.Values) != 5 {
		t.Fatalf("expected 5-element sequence, got %v", seq)
	}
	tup := seq.Values[4]
	if tup.Kind != TupleKind {
		t.Errorf("tuple must stay distinguishable from sequence, got %s", tup.Kind)
	}
	if tup.Len() != 2 || !tup.Values[0].Bool || tup.Values[1].Bool {
		t.Errorf("unexpected tuple contents: %v", tup)
	}
}

func TestSanitizeMappingOrder(t *testing.T) {
	m := ir.EmptyMapping()
	m.SetItem(ir.FromString("z"), ir.FromInt(1))
	m.SetItem(ir.FromString("a"), ir.FromInt(2))
	m.SetItem(ir.FromString("m"), ir.FromInt(3))

	got := Sanitize(m)
	want := []string{"z", "a", "m"}
	for i, k := range want {
		if got.Fields[i].String != k {
			t.Errorf("position %d: expected %q, got %q", i, k, got.Fields[i].String)
		}
	}
}

func TestSanitizeKeyCollisionLastWins(t *testing.T) {
	// distinct ir keys whose sanitized forms stringify identically
	m := ir.EmptyMapping()
	m.SetItem(ir.Global("pkg", "Widget"), ir.FromInt(1))
	m.SetItem(ir.FromString("other"), ir.FromInt(2))
	m.SetItem(ir.Opaque("pkg.Widget"), ir.FromInt(3))

	got := Sanitize(m)
	if got.Len() != 2 {
		t.Fatalf("expected collision to collapse to 2 entries, got %d", got.Len())
	}
	if got.Fields[0].String != "pkg.Widget" {
		t.Errorf("colliding key must keep its original position, got %q", got.Fields[0].String)
	}
	v := Get(got, "pkg.Widget")
	if v == nil || v.Int64 == nil || *v.Int64 != 3 {
		t.Errorf("later entry must win, got %v", v)
	}
}

func TestSanitizeCyclicSequence(t *testing.T) {
	y := ir.FromSlice(nil)
	y.Append(y)

	got := Sanitize(y)
	if got.Kind != SequenceKind || len(got.Values) != 1 {
		t.Fatalf("expected 1-element sequence, got %v", got)
	}
	if got.Values[0].Kind != StringKind || got.Values[0].String != CyclicRef {
		t.Errorf("expected cyclic sentinel, got %v", got.Values[0])
	}
}

func TestSanitizeCyclicMapping(t *testing.T) {
	m := ir.EmptyMapping()
	m.SetItem(ir.FromString("self"), m)

	got := Sanitize(m)
	v := Get(got, "self")
	if v == nil || v.String != CyclicRef {
		t.Errorf("expected cyclic sentinel, got %v", v)
	}
}

func TestSanitizeSharedNotCyclic(t *testing.T) {
	// the same node twice in one sequence is sharing, not a cycle
	shared := ir.FromSlice([]*ir.Node{ir.FromInt(1)})
	y := ir.FromSlice([]*ir.Node{shared, shared})

	got := Sanitize(y)
	for i, vv := range got.Values {
		if vv.Kind != SequenceKind {
			t.Errorf("element %d: shared node must reduce normally, got %v", i, vv)
		}
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	m := ir.EmptyMapping()
	m.SetItem(ir.FromString("w"), ir.Placeholder("float32"))
	m.SetItem(ir.FromString("n"), ir.FromTuple([]*ir.Node{ir.FromInt(1), ir.Null()}))

	once := Sanitize(m)
	twice := Sanitize(m)
	if !Equal(once, twice) {
		t.Error("sanitize must be deterministic")
	}
}

func TestMarshalJSONOrdered(t *testing.T) {
	m := ir.EmptyMapping()
	m.SetItem(ir.FromString("z"), ir.FromInt(1))
	m.SetItem(ir.FromString("a"), ir.Placeholder("float32"))

	d, err := Sanitize(m).MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"z":1,"a":"float32-storage"}`
	if string(d) != want {
		t.Errorf("got %s, want %s", d, want)
	}
}

package ir

import "testing"

func TestEqualLeaves(t *testing.T) {
	cases := []struct {
		name string
		a, b *Node
		want bool
	}{
		{"strings", FromString("x"), FromString("x"), true},
		{"strings differ", FromString("x"), FromString("y"), false},
		{"ints", FromInt(3), FromInt(3), true},
		{"int float cross", FromInt(3), FromFloat(3.0), true},
		{"floats differ", FromFloat(1.5), FromFloat(2.5), false},
		{"bools", FromBool(true), FromBool(true), true},
		{"null", Null(), Null(), true},
		{"type mismatch", FromString("1"), FromInt(1), false},
		{"globals", Global("a", "B"), Global("a", "B"), true},
		{"placeholders", Placeholder("float32"), Placeholder("float32"), true},
		{"bytes", FromBytes([]byte{1, 2}), FromBytes([]byte{1, 2}), true},
	}
	for _, c := range cases {
		if got := Equal(c.a, c.b); got != c.want {
			t.Errorf("%s: Equal=%v, want %v", c.name, got, c.want)
		}
	}
}

func TestEqualTuples(t *testing.T) {
	a := FromTuple([]*Node{FromString("storage"), FromInt(0)})
	b := FromTuple([]*Node{FromString("storage"), FromInt(0)})
	if !Equal(a, b) {
		t.Error("expected element-wise tuple equality")
	}
	c := FromTuple([]*Node{FromString("storage")})
	if Equal(a, c) {
		t.Error("tuples of different arity must not be equal")
	}
}

func TestEqualContainersByIdentity(t *testing.T) {
	a := FromSlice([]*Node{FromInt(1)})
	b := FromSlice([]*Node{FromInt(1)})
	if Equal(a, b) {
		t.Error("distinct sequence nodes must not be equal")
	}
	if !Equal(a, a) {
		t.Error("a sequence node must equal itself")
	}
	m := EmptyMapping()
	if !Equal(m, m) {
		t.Error("a mapping node must equal itself")
	}
}

// Package sanitize reduces deserialized object graphs to display-safe
// values.
//
// Sanitize is total: every well-formed ir graph reduces without error,
// including graphs with shared sub-nodes and cycles. Primitives pass
// through, containers are rebuilt structurally (tuples stay distinct
// from sequences, mapping order is preserved), and everything else
// collapses to a string naming its type.
package sanitize

import "github.com/modelpeek/go-modelpeek/ir"

// CyclicRef is substituted for a node re-entered while it is still
// being reduced.
const CyclicRef = "<cyclic>"

// StorageName is the canonical rendering of an external storage
// placeholder with the given element-type tag.
func StorageName(elem string) string {
	if elem == "" {
		return "storage"
	}
	return elem + "-storage"
}

// Sanitize reduces an object graph to a Value. The visiting set is
// keyed by node identity, so shared (acyclic) sub-nodes reduce normally
// while true cycles collapse to the CyclicRef sentinel.
func Sanitize(y *ir.Node) *Value {
	s := &state{visiting: map[*ir.Node]bool{}}
	return s.sanitize(y)
}

type state struct {
	visiting map[*ir.Node]bool
}

func (s *state) sanitize(y *ir.Node) *Value {
	if y == nil {
		return Null()
	}
	switch y.Type {
	case ir.NullType:
		return Null()
	case ir.BoolType:
		return FromBool(y.Bool)
	case ir.StringType:
		return FromString(y.String)
	case ir.NumberType:
		res := &Value{Kind: NumberKind, Number: y.Number}
		if y.Int64 != nil {
			v := *y.Int64
			res.Int64 = &v
		}
		if y.Float64 != nil {
			f := *y.Float64
			res.Float64 = &f
		}
		return res
	case ir.BytesType:
		return FromString("bytes")
	case ir.GlobalType, ir.OpaqueType:
		return FromString(y.TypeName)
	case ir.PlaceholderType:
		return FromString(StorageName(y.Elem))
	case ir.SequenceType, ir.TupleType:
		if s.visiting[y] {
			return FromString(CyclicRef)
		}
		s.visiting[y] = true
		defer delete(s.visiting, y)
		vs := make([]*Value, len(y.Values))
		for i, yy := range y.Values {
			vs[i] = s.sanitize(yy)
		}
		if y.Type == ir.TupleType {
			return FromTuple(vs)
		}
		return FromSlice(vs)
	case ir.MappingType:
		if s.visiting[y] {
			return FromString(CyclicRef)
		}
		s.visiting[y] = true
		defer delete(s.visiting, y)
		res := EmptyMapping()
		for i := range y.Fields {
			res.SetItem(s.sanitize(y.Fields[i]), s.sanitize(y.Values[i]))
		}
		return res
	default:
		return FromString(y.Type.String())
	}
}

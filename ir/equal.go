package ir

// Equal reports whether two nodes are equal as mapping keys.
//
// Leaf nodes compare by value. Container nodes (sequences, tuples with
// container members, mappings) compare by identity only: the source
// serialization cannot use an unhashable value as a dict key, so any
// container reaching a key position arrives through a back-reference and
// identity is the faithful comparison. This also keeps Equal total on
// cyclic graphs.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case NumberType:
		return numberEqual(a, b)
	case StringType:
		return a.String == b.String
	case BytesType:
		return string(a.Bytes) == string(b.Bytes)
	case GlobalType, OpaqueType:
		return a.TypeName == b.TypeName
	case PlaceholderType:
		return a.Elem == b.Elem
	case TupleType:
		// tuples of leaves are hashable and compare element-wise
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func numberEqual(a, b *Node) bool {
	af, aok := floatValue(a)
	bf, bok := floatValue(b)
	if aok && bok {
		return af == bf
	}
	if a.Int64 != nil && b.Int64 != nil {
		return *a.Int64 == *b.Int64
	}
	if a.Number != "" || b.Number != "" {
		return a.Number == b.Number
	}
	return false
}

func floatValue(y *Node) (float64, bool) {
	if y.Float64 != nil {
		return *y.Float64, true
	}
	if y.Int64 != nil {
		return float64(*y.Int64), true
	}
	return 0, false
}

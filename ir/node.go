package ir

type Node struct {
	Type   Type
	Fields []*Node
	Values []*Node

	String  string
	Bool    bool
	Bytes   []byte
	// Number holds the decimal text of a NumberType value representable
	// by neither Int64 nor Float64 (arbitrary-precision longs).
	Number  string
	Float64 *float64
	Int64   *int64

	// TypeName is the qualified type identity ("module.name") of
	// GlobalType and OpaqueType nodes.
	TypeName string

	// Elem is the element-type tag of PlaceholderType nodes, e.g.
	// "float32". It is the only metadata a placeholder carries; a
	// placeholder never holds payload bytes.
	Elem string
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func FromBytes(d []byte) *Node {
	return &Node{
		Type:  BytesType,
		Bytes: d,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromSlice(vs []*Node) *Node {
	return &Node{
		Type:   SequenceType,
		Values: vs,
	}
}

func FromTuple(vs []*Node) *Node {
	return &Node{
		Type:   TupleType,
		Values: vs,
	}
}

func Global(module, name string) *Node {
	return &Node{
		Type:     GlobalType,
		TypeName: module + "." + name,
	}
}

func Opaque(typeName string) *Node {
	return &Node{
		Type:     OpaqueType,
		TypeName: typeName,
	}
}

func Placeholder(elem string) *Node {
	return &Node{
		Type: PlaceholderType,
		Elem: elem,
	}
}

func EmptyMapping() *Node {
	return &Node{Type: MappingType}
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := EmptyMapping()
	for i := range kvs {
		res.SetItem(kvs[i].Key, kvs[i].Val)
	}
	return res
}

// SetItem inserts or replaces the value for key. An existing equal key
// keeps its position and has its value replaced; a new key is appended,
// preserving insertion order.
func (y *Node) SetItem(key, val *Node) {
	for i, f := range y.Fields {
		if Equal(f, key) {
			y.Values[i] = val
			return
		}
	}
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, val)
}

// Append adds a value to a sequence node.
func (y *Node) Append(vs ...*Node) {
	y.Values = append(y.Values, vs...)
}

// Get returns the value for a string key of a mapping, or nil.
func Get(y *Node, field string) *Node {
	for i, f := range y.Fields {
		if f.Type == StringType && f.String == field {
			return y.Values[i]
		}
	}
	return nil
}

// Len returns the number of children: elements for sequences and tuples,
// entries for mappings, 0 for leaves.
func (y *Node) Len() int {
	if y.Type == MappingType {
		return len(y.Fields)
	}
	return len(y.Values)
}

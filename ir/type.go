package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	NumberType
	StringType
	BoolType
	BytesType
	SequenceType
	TupleType
	MappingType
	GlobalType
	PlaceholderType
	OpaqueType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:        "Null",
		NumberType:      "Number",
		StringType:      "String",
		BoolType:        "Bool",
		BytesType:       "Bytes",
		SequenceType:    "Sequence",
		TupleType:       "Tuple",
		MappingType:     "Mapping",
		GlobalType:      "Global",
		PlaceholderType: "Placeholder",
		OpaqueType:      "Opaque",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":        NullType,
		"Number":      NumberType,
		"String":      StringType,
		"Bool":        BoolType,
		"Bytes":       BytesType,
		"Sequence":    SequenceType,
		"Tuple":       TupleType,
		"Mapping":     MappingType,
		"Global":      GlobalType,
		"Placeholder": PlaceholderType,
		"Opaque":      OpaqueType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		NumberType,
		StringType,
		BoolType,
		BytesType,
		SequenceType,
		TupleType,
		MappingType,
		GlobalType,
		PlaceholderType,
		OpaqueType,
	}
}

// IsLeaf reports whether nodes of this type never have children.
func (t Type) IsLeaf() bool {
	switch t {
	case SequenceType, TupleType, MappingType:
		return false
	default:
		return true
	}
}

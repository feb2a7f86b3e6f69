package sanitize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Kind int

const (
	NullKind Kind = iota
	NumberKind
	StringKind
	BoolKind
	SequenceKind
	TupleKind
	MappingKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		NullKind:     "Null",
		NumberKind:   "Number",
		StringKind:   "String",
		BoolKind:     "Bool",
		SequenceKind: "Sequence",
		TupleKind:    "Tuple",
		MappingKind:  "Mapping",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

// Value is a display-safe reduction of an object graph: a finite tree
// of primitives, sequences, tuples, and mappings. It owns all its data;
// nothing references back into the source archive or stream.
type Value struct {
	Kind Kind

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64

	// Fields[i] keys Values[i] for MappingKind; Values holds the
	// elements of SequenceKind and TupleKind.
	Fields []*Value
	Values []*Value
}

func FromString(v string) *Value {
	return &Value{Kind: StringKind, String: v}
}

func FromInt(v int64) *Value {
	return &Value{Kind: NumberKind, Int64: &v}
}

func FromFloat(f float64) *Value {
	return &Value{Kind: NumberKind, Float64: &f}
}

func FromBool(v bool) *Value {
	return &Value{Kind: BoolKind, Bool: v}
}

func Null() *Value {
	return &Value{Kind: NullKind}
}

func FromSlice(vs []*Value) *Value {
	return &Value{Kind: SequenceKind, Values: vs}
}

func FromTuple(vs []*Value) *Value {
	return &Value{Kind: TupleKind, Values: vs}
}

func EmptyMapping() *Value {
	return &Value{Kind: MappingKind}
}

// SetItem inserts or replaces the entry for key: a colliding key keeps
// its original position and the later value wins.
func (v *Value) SetItem(key, val *Value) {
	for i, f := range v.Fields {
		if Equal(f, key) {
			v.Values[i] = val
			return
		}
	}
	v.Fields = append(v.Fields, key)
	v.Values = append(v.Values, val)
}

// Get returns the value for a string key of a mapping, or nil.
func Get(v *Value, field string) *Value {
	for i, f := range v.Fields {
		if f.Kind == StringKind && f.String == field {
			return v.Values[i]
		}
	}
	return nil
}

func (v *Value) Len() int {
	if v.Kind == MappingKind {
		return len(v.Fields)
	}
	return len(v.Values)
}

// Equal reports deep structural equality. Sanitized values are finite
// trees, so recursion terminates.
func Equal(a, b *Value) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case NullKind:
		return true
	case BoolKind:
		return a.Bool == b.Bool
	case StringKind:
		return a.String == b.String
	case NumberKind:
		if a.Int64 != nil && b.Int64 != nil {
			return *a.Int64 == *b.Int64
		}
		if a.Float64 != nil && b.Float64 != nil {
			return *a.Float64 == *b.Float64
		}
		if a.Number != "" || b.Number != "" {
			return a.Number == b.Number
		}
		return false
	case SequenceKind, TupleKind:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case MappingKind:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if !Equal(a.Fields[i], b.Fields[i]) || !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface exports the value as plain Go data: nil, bool, int64,
// float64, string, []any, and map[string]any. Mappings are keyed by
// KeyString, losing order; use the value itself where order matters.
func (v *Value) Interface() any {
	switch v.Kind {
	case NullKind:
		return nil
	case BoolKind:
		return v.Bool
	case StringKind:
		return v.String
	case NumberKind:
		if v.Int64 != nil {
			return *v.Int64
		}
		if v.Float64 != nil {
			return *v.Float64
		}
		return v.Number
	case SequenceKind, TupleKind:
		res := make([]any, len(v.Values))
		for i, vv := range v.Values {
			res[i] = vv.Interface()
		}
		return res
	case MappingKind:
		res := make(map[string]any, len(v.Fields))
		for i := range v.Fields {
			res[v.Fields[i].KeyString()] = v.Values[i].Interface()
		}
		return res
	}
	return nil
}

// KeyString renders the value as a mapping key.
func (v *Value) KeyString() string {
	switch v.Kind {
	case NullKind:
		return "null"
	case BoolKind:
		return strconv.FormatBool(v.Bool)
	case StringKind:
		return v.String
	case NumberKind:
		return v.numberText()
	case SequenceKind, TupleKind:
		parts := make([]string, len(v.Values))
		for i, vv := range v.Values {
			parts[i] = vv.KeyString()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case MappingKind:
		return fmt.Sprintf("<mapping of %d>", len(v.Fields))
	}
	return "<unknown>"
}

func (v *Value) numberText() string {
	if v.Int64 != nil {
		return strconv.FormatInt(*v.Int64, 10)
	}
	if v.Float64 != nil {
		return strconv.FormatFloat(*v.Float64, 'g', -1, 64)
	}
	return v.Number
}

// MarshalJSON writes mappings as objects with insertion order preserved
// and keys rendered with KeyString. Tuples marshal as arrays; the
// tuple/sequence distinction lives in the Value itself, not in JSON.
func (v *Value) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := v.writeJSON(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) writeJSON(buf *bytes.Buffer) error {
	switch v.Kind {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case StringKind:
		d, err := json.Marshal(v.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case NumberKind:
		if v.Float64 != nil && (math.IsNaN(*v.Float64) || math.IsInf(*v.Float64, 0)) {
			d, _ := json.Marshal(v.numberText())
			buf.Write(d)
			return nil
		}
		buf.WriteString(v.numberText())
	case SequenceKind, TupleKind:
		buf.WriteByte('[')
		for i, vv := range v.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := vv.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case MappingKind:
		buf.WriteByte('{')
		for i := range v.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(v.Fields[i].KeyString())
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := v.Values[i].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot marshal kind %s", v.Kind)
	}
	return nil
}

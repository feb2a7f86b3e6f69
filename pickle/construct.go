package pickle

import (
	"math/big"
	"strings"

	"github.com/modelpeek/go-modelpeek/ir"
)

// construct materializes a REDUCE/NEWOBJ record. The recognized type
// tags form a closed set; anything else degrades to an opaque node
// carrying only the type identity, so unknown record types in newer
// checkpoint formats never abort introspection.
func construct(callable, args *ir.Node) *ir.Node {
	if callable.Type != ir.GlobalType {
		if callable.TypeName != "" {
			return ir.Opaque(callable.TypeName)
		}
		return ir.Opaque("<object>")
	}
	switch callable.TypeName {
	case "collections.OrderedDict":
		res := ir.EmptyMapping()
		// OrderedDict reduces with an optional list of [key, value]
		// pairs as its first constructor argument
		if args.Type == ir.TupleType && len(args.Values) > 0 {
			initMapping(res, args.Values[0])
		}
		return res
	default:
		return ir.Opaque(callable.TypeName)
	}
}

func initMapping(res, pairs *ir.Node) {
	if pairs.Type != ir.SequenceType && pairs.Type != ir.TupleType {
		return
	}
	for _, kv := range pairs.Values {
		if (kv.Type == ir.SequenceType || kv.Type == ir.TupleType) && len(kv.Values) == 2 {
			res.SetItem(kv.Values[0], kv.Values[1])
		}
	}
}

// build applies a BUILD state to the object under it on the stack.
// Mapping state merges into mapping targets; every other combination is
// ignored, keeping unknown record state a non-event.
func build(target, state *ir.Node) {
	if target.Type != ir.MappingType {
		return
	}
	if state.Type == ir.TupleType && len(state.Values) == 2 {
		// (__dict__, slots) two-tuple form
		state = state.Values[0]
	}
	if state.Type != ir.MappingType {
		return
	}
	for i := range state.Fields {
		target.SetItem(state.Fields[i], state.Values[i])
	}
}

// persistentNode intercepts a persistent-id resolution. Storage
// references of the conventional shape
//
//	("storage", <StorageClass>, key, location, numel)
//
// construct a placeholder carrying only the element-type tag; the numel
// size hint is deliberately never read into an allocation. Any other
// pid shape degrades to an opaque node.
func persistentNode(pid *ir.Node) *ir.Node {
	if pid.Type == ir.TupleType && len(pid.Values) >= 2 {
		kind, cls := pid.Values[0], pid.Values[1]
		if kind.Type == ir.StringType && kind.String == "storage" && cls.Type == ir.GlobalType {
			return ir.Placeholder(storageElem(cls.TypeName))
		}
	}
	return ir.Opaque("persistent_id")
}

// storageElem maps a storage class identity to its element-type tag.
func storageElem(typeName string) string {
	name := typeName
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	elem, ok := map[string]string{
		"DoubleStorage":        "float64",
		"FloatStorage":         "float32",
		"HalfStorage":          "float16",
		"BFloat16Storage":      "bfloat16",
		"LongStorage":          "int64",
		"IntStorage":           "int32",
		"ShortStorage":         "int16",
		"CharStorage":          "int8",
		"ByteStorage":          "uint8",
		"BoolStorage":          "bool",
		"ComplexFloatStorage":  "complex64",
		"ComplexDoubleStorage": "complex128",
		"UntypedStorage":       "untyped",
	}[name]
	if ok {
		return elem
	}
	return name
}

// decodeLong decodes a little-endian two's-complement integer of any
// width. Values beyond 64 bits keep their decimal text rather than
// failing.
func decodeLong(d []byte) *ir.Node {
	if len(d) == 0 {
		return ir.FromInt(0)
	}
	if len(d) <= 8 {
		var v uint64
		for i := len(d) - 1; i >= 0; i-- {
			v = v<<8 | uint64(d[i])
		}
		if d[len(d)-1]&0x80 != 0 && len(d) < 8 {
			v |= ^uint64(0) << (8 * uint(len(d)))
		}
		return ir.FromInt(int64(v))
	}
	be := make([]byte, len(d))
	for i, b := range d {
		be[len(d)-1-i] = b
	}
	x := new(big.Int).SetBytes(be)
	if d[len(d)-1]&0x80 != 0 {
		x.Sub(x, new(big.Int).Lsh(big.NewInt(1), uint(8*len(d))))
	}
	return &ir.Node{Type: ir.NumberType, Number: x.String()}
}

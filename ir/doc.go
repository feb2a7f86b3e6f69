// Package ir provides the intermediate representation (IR) for deserialized
// checkpoint object graphs.
//
// # Overview
//
// The IR package defines the core data structure produced by the pickle
// stack machine: a tree of nodes, possibly with shared sub-nodes and cycles
// introduced by memo-table back-references. The IR is purely structural — it
// never carries bulk payload data. External storage references appear as
// PlaceholderType nodes holding only an element-type tag, and record types
// the deserializer does not recognize appear as OpaqueType nodes holding
// only their qualified type identity.
//
// # Node Structure
//
// A Node is a recursive tagged union. The Type field selects which of the
// remaining fields are meaningful:
//
//   - NullType: Python None
//   - BoolType: boolean (Bool)
//   - NumberType: numeric value (Int64 or Float64)
//   - StringType: string value (String)
//   - BytesType: raw byte string (Bytes)
//   - SequenceType: ordered list (Values)
//   - TupleType: ordered fixed-arity list (Values), distinct from SequenceType
//   - MappingType: key-value pairs (Fields[i] keys Values[i])
//   - GlobalType: a class/function reference (TypeName, "module.name")
//   - PlaceholderType: an intercepted external storage reference (Elem)
//   - OpaqueType: a constructed value of unrecognized type (TypeName)
//
// For MappingType nodes, Fields[i] is the key node for the value at
// Values[i]; keys may be any node type and insertion order is preserved.
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	seq := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})
//	tup := ir.FromTuple([]*ir.Node{ir.FromBool(true), ir.Null()})
//
// Mappings and sequences built by the stack machine are mutated in place
// (SetItem, Append) so that memoized references observe later additions;
// this is what makes shared and cyclic structure representable.
//
// # Thread Safety
//
// Node structures are not thread-safe. Each deserialization call owns its
// graph exclusively.
//
// # Related Packages
//
//   - github.com/modelpeek/go-modelpeek/pickle - builds IR from pickle streams
//   - github.com/modelpeek/go-modelpeek/sanitize - reduces IR to display-safe values
package ir

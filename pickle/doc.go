// Package pickle implements a safe stack-machine interpreter for the
// subset of the pickle serialization format used by checkpoint
// containers.
//
// # Overview
//
// Load interprets a binary pickle stream and builds an ir.Node graph.
// The interpreter covers primitive pushes, list/tuple/dict/set builds,
// memo put/get (supporting shared structure and cycles), and record
// construction (GLOBAL/REDUCE/NEWOBJ/BUILD). It never resolves external
// data: persistent-id instructions, which in a full deserializer load
// bulk storage buffers, unconditionally construct lightweight
// placeholder nodes carrying only an element-type tag.
//
// # Safety
//
// No instruction may cause allocation proportional to a size argument
// found in the stream. Counted reads are bounded by the bytes remaining
// in the stream, and the size hint in a storage reference is never used
// to allocate.
//
// # Forward compatibility
//
// Record-construction instructions naming types the interpreter does not
// recognize degrade to OpaqueType nodes carrying the qualified type
// name; only framing-level corruption (ErrMalformed) or instructions
// entirely outside the subset (ErrUnsupported) abort interpretation.
package pickle

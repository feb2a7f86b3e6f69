// Package pickletest builds pickle streams for tests.
package pickletest

import (
	"encoding/binary"
	"math"

	"github.com/modelpeek/go-modelpeek/pickle"
)

// Builder accumulates a pickle stream opcode by opcode. Methods return
// the builder so fixtures read as instruction sequences.
type Builder struct {
	d []byte
}

func New() *Builder {
	return &Builder{}
}

// NewProto starts a stream with a PROTO marker for the given version.
func NewProto(version byte) *Builder {
	return New().Op(pickle.OpProto).Raw(version)
}

func (b *Builder) Bytes() []byte {
	return b.d
}

func (b *Builder) Op(op pickle.Opcode) *Builder {
	b.d = append(b.d, byte(op))
	return b
}

func (b *Builder) Raw(d ...byte) *Builder {
	b.d = append(b.d, d...)
	return b
}

func (b *Builder) Stop() *Builder {
	return b.Op(pickle.OpStop)
}

func (b *Builder) Mark() *Builder {
	return b.Op(pickle.OpMark)
}

func (b *Builder) None() *Builder {
	return b.Op(pickle.OpNone)
}

func (b *Builder) Bool(v bool) *Builder {
	if v {
		return b.Op(pickle.OpNewTrue)
	}
	return b.Op(pickle.OpNewFalse)
}

func (b *Builder) Int(v int32) *Builder {
	b.Op(pickle.OpBinInt)
	b.d = binary.LittleEndian.AppendUint32(b.d, uint32(v))
	return b
}

func (b *Builder) Long(enc ...byte) *Builder {
	b.Op(pickle.OpLong1).Raw(byte(len(enc)))
	return b.Raw(enc...)
}

func (b *Builder) Float(v float64) *Builder {
	b.Op(pickle.OpBinFloat)
	b.d = binary.BigEndian.AppendUint64(b.d, math.Float64bits(v))
	return b
}

func (b *Builder) Unicode(s string) *Builder {
	b.Op(pickle.OpBinUnicode)
	b.d = binary.LittleEndian.AppendUint32(b.d, uint32(len(s)))
	return b.Raw([]byte(s)...)
}

func (b *Builder) ShortUnicode(s string) *Builder {
	b.Op(pickle.OpShortBinUni).Raw(byte(len(s)))
	return b.Raw([]byte(s)...)
}

func (b *Builder) EmptyList() *Builder {
	return b.Op(pickle.OpEmptyList)
}

func (b *Builder) Appends() *Builder {
	return b.Op(pickle.OpAppends)
}

func (b *Builder) EmptyDict() *Builder {
	return b.Op(pickle.OpEmptyDict)
}

func (b *Builder) SetItem() *Builder {
	return b.Op(pickle.OpSetItem)
}

func (b *Builder) SetItems() *Builder {
	return b.Op(pickle.OpSetItems)
}

func (b *Builder) EmptyTuple() *Builder {
	return b.Op(pickle.OpEmptyTuple)
}

func (b *Builder) Tuple2() *Builder {
	return b.Op(pickle.OpTuple2)
}

func (b *Builder) Tuple() *Builder {
	return b.Op(pickle.OpTuple)
}

func (b *Builder) Memoize() *Builder {
	return b.Op(pickle.OpMemoize)
}

func (b *Builder) Get(idx byte) *Builder {
	return b.Op(pickle.OpBinGet).Raw(idx)
}

func (b *Builder) Put(idx byte) *Builder {
	return b.Op(pickle.OpBinPut).Raw(idx)
}

func (b *Builder) Global(module, name string) *Builder {
	b.Op(pickle.OpGlobal)
	b.Raw([]byte(module)...).Raw('\n')
	return b.Raw([]byte(name)...).Raw('\n')
}

func (b *Builder) Reduce() *Builder {
	return b.Op(pickle.OpReduce)
}

func (b *Builder) Build() *Builder {
	return b.Op(pickle.OpBuild)
}

func (b *Builder) BinPersID() *Builder {
	return b.Op(pickle.OpBinPersID)
}

// Storage appends a conventional storage persistent-id tuple
//
//	("storage", <storageClass>, key, location, numel)
//
// followed by BINPERSID. numel is carried in the stream as written; the
// interpreter must never allocate from it.
func (b *Builder) Storage(storageClass, key, location string, numel int64) *Builder {
	b.Mark()
	b.ShortUnicode("storage")
	b.Global("torch", storageClass)
	b.ShortUnicode(key)
	b.ShortUnicode(location)
	if numel <= math.MaxInt32 && numel >= math.MinInt32 {
		b.Int(int32(numel))
	} else {
		var enc [8]byte
		binary.LittleEndian.PutUint64(enc[:], uint64(numel))
		b.Long(enc[:]...)
	}
	b.Tuple()
	return b.BinPersID()
}

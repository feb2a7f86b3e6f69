package pickle

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/modelpeek/go-modelpeek/ir"
)

// Load interprets the pickle stream d and returns the object graph it
// encodes. The machine owns its stack, mark stack, and memo table for
// the duration of the call; nothing is shared across calls.
func Load(d []byte) (*ir.Node, error) {
	m := &machine{d: d, memo: map[uint32]*ir.Node{}}
	return m.run()
}

type machine struct {
	d   []byte
	pos int

	stack []*ir.Node
	marks []int
	memo  map[uint32]*ir.Node
}

func (m *machine) run() (*ir.Node, error) {
	op, err := m.readOpcode()
	if err != nil {
		return nil, err
	}
	if op != OpProto {
		return nil, fmt.Errorf("%w: leading marker 0x%02x is not PROTO", ErrMalformed, byte(op))
	}
	ver, err := m.readUint1()
	if err != nil {
		return nil, err
	}
	if ver < 2 || ver > 5 {
		return nil, fmt.Errorf("%w: protocol version %d", ErrMalformed, ver)
	}
	for {
		op, err := m.readOpcode()
		if err != nil {
			return nil, err
		}
		if op == OpStop {
			res, err := m.pop()
			if err != nil {
				return nil, err
			}
			if len(m.stack) != 0 || len(m.marks) != 0 {
				return nil, fmt.Errorf("%w: %d stack entries and %d marks left at STOP",
					ErrMalformed, len(m.stack), len(m.marks))
			}
			return res, nil
		}
		if err := m.exec(op); err != nil {
			return nil, err
		}
	}
}

func (m *machine) exec(op Opcode) error {
	switch op {
	case OpProto:
		_, err := m.readUint1()
		return err

	case OpFrame:
		// frame length is a hint only; nothing is preallocated
		_, err := m.readN(8)
		return err

	case OpMark:
		m.marks = append(m.marks, len(m.stack))

	case OpPopMark:
		_, err := m.popMark()
		return err

	case OpPop:
		_, err := m.pop()
		return err

	case OpDup:
		y, err := m.peek()
		if err != nil {
			return err
		}
		m.push(y)

	case OpNone:
		m.push(ir.Null())

	case OpNewTrue:
		m.push(ir.FromBool(true))

	case OpNewFalse:
		m.push(ir.FromBool(false))

	case OpBinInt:
		v, err := m.readInt4()
		if err != nil {
			return err
		}
		m.push(ir.FromInt(int64(v)))

	case OpBinInt1:
		v, err := m.readUint1()
		if err != nil {
			return err
		}
		m.push(ir.FromInt(int64(v)))

	case OpBinInt2:
		v, err := m.readUint2()
		if err != nil {
			return err
		}
		m.push(ir.FromInt(int64(v)))

	case OpLong1:
		n, err := m.readUint1()
		if err != nil {
			return err
		}
		d, err := m.readN(uint64(n))
		if err != nil {
			return err
		}
		m.push(decodeLong(d))

	case OpLong4:
		n, err := m.readUint4()
		if err != nil {
			return err
		}
		d, err := m.readN(uint64(n))
		if err != nil {
			return err
		}
		m.push(decodeLong(d))

	case OpBinFloat:
		d, err := m.readN(8)
		if err != nil {
			return err
		}
		m.push(ir.FromFloat(math.Float64frombits(binary.BigEndian.Uint64(d))))

	case OpShortBinString:
		n, err := m.readUint1()
		if err != nil {
			return err
		}
		d, err := m.readN(uint64(n))
		if err != nil {
			return err
		}
		m.push(ir.FromString(string(d)))

	case OpBinString:
		n, err := m.readInt4()
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: negative BINSTRING length %d", ErrMalformed, n)
		}
		d, err := m.readN(uint64(n))
		if err != nil {
			return err
		}
		m.push(ir.FromString(string(d)))

	case OpBinUnicode:
		n, err := m.readUint4()
		if err != nil {
			return err
		}
		d, err := m.readN(uint64(n))
		if err != nil {
			return err
		}
		m.push(ir.FromString(string(d)))

	case OpShortBinUni:
		n, err := m.readUint1()
		if err != nil {
			return err
		}
		d, err := m.readN(uint64(n))
		if err != nil {
			return err
		}
		m.push(ir.FromString(string(d)))

	case OpBinUnicode8:
		n, err := m.readUint8()
		if err != nil {
			return err
		}
		d, err := m.readN(n)
		if err != nil {
			return err
		}
		m.push(ir.FromString(string(d)))

	case OpBinBytes:
		n, err := m.readUint4()
		if err != nil {
			return err
		}
		d, err := m.readN(uint64(n))
		if err != nil {
			return err
		}
		m.push(ir.FromBytes(append([]byte(nil), d...)))

	case OpShortBinBytes:
		n, err := m.readUint1()
		if err != nil {
			return err
		}
		d, err := m.readN(uint64(n))
		if err != nil {
			return err
		}
		m.push(ir.FromBytes(append([]byte(nil), d...)))

	case OpBinBytes8, OpByteArray8:
		n, err := m.readUint8()
		if err != nil {
			return err
		}
		d, err := m.readN(n)
		if err != nil {
			return err
		}
		m.push(ir.FromBytes(append([]byte(nil), d...)))

	case OpEmptyList:
		m.push(ir.FromSlice(nil))

	case OpList:
		items, err := m.popMark()
		if err != nil {
			return err
		}
		m.push(ir.FromSlice(items))

	case OpAppend:
		v, err := m.pop()
		if err != nil {
			return err
		}
		target, err := m.peek()
		if err != nil {
			return err
		}
		if target.Type == ir.SequenceType {
			target.Append(v)
		}

	case OpAppends:
		items, err := m.popMark()
		if err != nil {
			return err
		}
		target, err := m.peek()
		if err != nil {
			return err
		}
		if target.Type == ir.SequenceType {
			target.Append(items...)
		}

	case OpEmptyTuple:
		m.push(ir.FromTuple(nil))

	case OpTuple:
		items, err := m.popMark()
		if err != nil {
			return err
		}
		m.push(ir.FromTuple(items))

	case OpTuple1, OpTuple2, OpTuple3:
		n := 1 + int(op-OpTuple1)
		if len(m.stack) < n {
			return fmt.Errorf("%w: stack underflow at %s", ErrMalformed, op)
		}
		items := append([]*ir.Node(nil), m.stack[len(m.stack)-n:]...)
		m.stack = m.stack[:len(m.stack)-n]
		m.push(ir.FromTuple(items))

	case OpEmptyDict:
		m.push(ir.EmptyMapping())

	case OpDict:
		items, err := m.popMark()
		if err != nil {
			return err
		}
		if len(items)%2 != 0 {
			return fmt.Errorf("%w: odd number of DICT items", ErrMalformed)
		}
		res := ir.EmptyMapping()
		for i := 0; i < len(items); i += 2 {
			res.SetItem(items[i], items[i+1])
		}
		m.push(res)

	case OpSetItem:
		v, err := m.pop()
		if err != nil {
			return err
		}
		k, err := m.pop()
		if err != nil {
			return err
		}
		target, err := m.peek()
		if err != nil {
			return err
		}
		if target.Type == ir.MappingType {
			target.SetItem(k, v)
		}

	case OpSetItems:
		items, err := m.popMark()
		if err != nil {
			return err
		}
		if len(items)%2 != 0 {
			return fmt.Errorf("%w: odd number of SETITEMS items", ErrMalformed)
		}
		target, err := m.peek()
		if err != nil {
			return err
		}
		if target.Type == ir.MappingType {
			for i := 0; i < len(items); i += 2 {
				target.SetItem(items[i], items[i+1])
			}
		}

	case OpEmptySet:
		m.push(ir.FromSlice(nil))

	case OpFrozenSet:
		items, err := m.popMark()
		if err != nil {
			return err
		}
		m.push(ir.FromSlice(items))

	case OpAddItems:
		items, err := m.popMark()
		if err != nil {
			return err
		}
		target, err := m.peek()
		if err != nil {
			return err
		}
		if target.Type == ir.SequenceType {
			target.Append(items...)
		}

	case OpMemoize:
		y, err := m.peek()
		if err != nil {
			return err
		}
		m.memo[uint32(len(m.memo))] = y

	case OpBinPut:
		idx, err := m.readUint1()
		if err != nil {
			return err
		}
		y, err := m.peek()
		if err != nil {
			return err
		}
		m.memo[uint32(idx)] = y

	case OpLongBinPut:
		idx, err := m.readUint4()
		if err != nil {
			return err
		}
		y, err := m.peek()
		if err != nil {
			return err
		}
		m.memo[idx] = y

	case OpBinGet:
		idx, err := m.readUint1()
		if err != nil {
			return err
		}
		return m.pushMemo(uint32(idx))

	case OpLongBinGet:
		idx, err := m.readUint4()
		if err != nil {
			return err
		}
		return m.pushMemo(idx)

	case OpGlobal:
		module, err := m.readLine()
		if err != nil {
			return err
		}
		name, err := m.readLine()
		if err != nil {
			return err
		}
		m.push(ir.Global(module, name))

	case OpStackGlobal:
		name, err := m.pop()
		if err != nil {
			return err
		}
		module, err := m.pop()
		if err != nil {
			return err
		}
		if module.Type == ir.StringType && name.Type == ir.StringType {
			m.push(ir.Global(module.String, name.String))
		} else {
			m.push(ir.Opaque("<global>"))
		}

	case OpReduce:
		args, err := m.pop()
		if err != nil {
			return err
		}
		callable, err := m.pop()
		if err != nil {
			return err
		}
		m.push(construct(callable, args))

	case OpNewObj:
		args, err := m.pop()
		if err != nil {
			return err
		}
		cls, err := m.pop()
		if err != nil {
			return err
		}
		m.push(construct(cls, args))

	case OpNewObjEx:
		if _, err := m.pop(); err != nil { // kwargs
			return err
		}
		args, err := m.pop()
		if err != nil {
			return err
		}
		cls, err := m.pop()
		if err != nil {
			return err
		}
		m.push(construct(cls, args))

	case OpBuild:
		state, err := m.pop()
		if err != nil {
			return err
		}
		target, err := m.peek()
		if err != nil {
			return err
		}
		build(target, state)

	case OpPersID:
		pid, err := m.readLine()
		if err != nil {
			return err
		}
		m.push(persistentNode(ir.FromString(pid)))

	case OpBinPersID:
		pid, err := m.pop()
		if err != nil {
			return err
		}
		m.push(persistentNode(pid))

	default:
		return fmt.Errorf("%w: opcode 0x%02x at offset %d", ErrUnsupported, byte(op), m.pos-1)
	}
	return nil
}

// stack

func (m *machine) push(y *ir.Node) {
	m.stack = append(m.stack, y)
}

func (m *machine) pop() (*ir.Node, error) {
	floor := 0
	if len(m.marks) > 0 {
		floor = m.marks[len(m.marks)-1]
	}
	if len(m.stack) <= floor {
		return nil, fmt.Errorf("%w: stack underflow at offset %d", ErrMalformed, m.pos)
	}
	y := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return y, nil
}

func (m *machine) peek() (*ir.Node, error) {
	if len(m.stack) == 0 {
		return nil, fmt.Errorf("%w: stack underflow at offset %d", ErrMalformed, m.pos)
	}
	return m.stack[len(m.stack)-1], nil
}

func (m *machine) popMark() ([]*ir.Node, error) {
	if len(m.marks) == 0 {
		return nil, fmt.Errorf("%w: no MARK at offset %d", ErrMalformed, m.pos)
	}
	mark := m.marks[len(m.marks)-1]
	m.marks = m.marks[:len(m.marks)-1]
	items := append([]*ir.Node(nil), m.stack[mark:]...)
	m.stack = m.stack[:mark]
	return items, nil
}

func (m *machine) pushMemo(idx uint32) error {
	y, ok := m.memo[idx]
	if !ok {
		return fmt.Errorf("%w: back-reference to unassigned memo slot %d", ErrMalformed, idx)
	}
	m.push(y)
	return nil
}

// stream reads

func (m *machine) readOpcode() (Opcode, error) {
	if m.pos >= len(m.d) {
		return 0, fmt.Errorf("%w: truncated stream (no STOP)", ErrMalformed)
	}
	op := Opcode(m.d[m.pos])
	m.pos++
	return op, nil
}

// readN returns the next n bytes. n comes from the stream and is
// checked against the bytes remaining, so a counted read can never
// allocate beyond the stream itself.
func (m *machine) readN(n uint64) ([]byte, error) {
	if n > uint64(len(m.d)-m.pos) {
		return nil, fmt.Errorf("%w: truncated at offset %d (%d bytes wanted)", ErrMalformed, m.pos, n)
	}
	d := m.d[m.pos : m.pos+int(n)]
	m.pos += int(n)
	return d, nil
}

func (m *machine) readUint1() (byte, error) {
	d, err := m.readN(1)
	if err != nil {
		return 0, err
	}
	return d[0], nil
}

func (m *machine) readUint2() (uint16, error) {
	d, err := m.readN(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(d), nil
}

func (m *machine) readUint4() (uint32, error) {
	d, err := m.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(d), nil
}

func (m *machine) readInt4() (int32, error) {
	v, err := m.readUint4()
	return int32(v), err
}

func (m *machine) readUint8() (uint64, error) {
	d, err := m.readN(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(d), nil
}

func (m *machine) readLine() (string, error) {
	for i := m.pos; i < len(m.d); i++ {
		if m.d[i] == '\n' {
			s := string(m.d[m.pos:i])
			m.pos = i + 1
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unterminated line at offset %d", ErrMalformed, m.pos)
}

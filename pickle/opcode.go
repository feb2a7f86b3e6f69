package pickle

// Opcode is a single pickle stack-machine instruction byte.
type Opcode byte

const (
	OpProto          Opcode = 0x80
	OpFrame          Opcode = 0x95
	OpStop           Opcode = '.'
	OpMark           Opcode = '('
	OpPopMark        Opcode = '1'
	OpPop            Opcode = '0'
	OpDup            Opcode = '2'
	OpNone           Opcode = 'N'
	OpNewTrue        Opcode = 0x88
	OpNewFalse       Opcode = 0x89
	OpBinInt         Opcode = 'J'
	OpBinInt1        Opcode = 'K'
	OpBinInt2        Opcode = 'M'
	OpLong1          Opcode = 0x8a
	OpLong4          Opcode = 0x8b
	OpBinFloat       Opcode = 'G'
	OpShortBinString Opcode = 'U'
	OpBinString      Opcode = 'T'
	OpBinUnicode     Opcode = 'X'
	OpShortBinUni    Opcode = 0x8c
	OpBinUnicode8    Opcode = 0x8d
	OpBinBytes       Opcode = 'B'
	OpShortBinBytes  Opcode = 'C'
	OpBinBytes8      Opcode = 0x8e
	OpByteArray8     Opcode = 0x96
	OpEmptyList      Opcode = ']'
	OpList           Opcode = 'l'
	OpAppend         Opcode = 'a'
	OpAppends        Opcode = 'e'
	OpEmptyTuple     Opcode = ')'
	OpTuple          Opcode = 't'
	OpTuple1         Opcode = 0x85
	OpTuple2         Opcode = 0x86
	OpTuple3         Opcode = 0x87
	OpEmptyDict      Opcode = '}'
	OpDict           Opcode = 'd'
	OpSetItem        Opcode = 's'
	OpSetItems       Opcode = 'u'
	OpEmptySet       Opcode = 0x8f
	OpFrozenSet      Opcode = 0x91
	OpAddItems       Opcode = 0x90
	OpMemoize        Opcode = 0x94
	OpBinPut         Opcode = 'q'
	OpLongBinPut     Opcode = 'r'
	OpBinGet         Opcode = 'h'
	OpLongBinGet     Opcode = 'j'
	OpGlobal         Opcode = 'c'
	OpStackGlobal    Opcode = 0x93
	OpReduce         Opcode = 'R'
	OpNewObj         Opcode = 0x81
	OpNewObjEx       Opcode = 0x92
	OpBuild          Opcode = 'b'
	OpPersID         Opcode = 'P'
	OpBinPersID      Opcode = 'Q'
)

func (op Opcode) String() string {
	s, ok := map[Opcode]string{
		OpProto:          "PROTO",
		OpFrame:          "FRAME",
		OpStop:           "STOP",
		OpMark:           "MARK",
		OpPopMark:        "POP_MARK",
		OpPop:            "POP",
		OpDup:            "DUP",
		OpNone:           "NONE",
		OpNewTrue:        "NEWTRUE",
		OpNewFalse:       "NEWFALSE",
		OpBinInt:         "BININT",
		OpBinInt1:        "BININT1",
		OpBinInt2:        "BININT2",
		OpLong1:          "LONG1",
		OpLong4:          "LONG4",
		OpBinFloat:       "BINFLOAT",
		OpShortBinString: "SHORT_BINSTRING",
		OpBinString:      "BINSTRING",
		OpBinUnicode:     "BINUNICODE",
		OpShortBinUni:    "SHORT_BINUNICODE",
		OpBinUnicode8:    "BINUNICODE8",
		OpBinBytes:       "BINBYTES",
		OpShortBinBytes:  "SHORT_BINBYTES",
		OpBinBytes8:      "BINBYTES8",
		OpByteArray8:     "BYTEARRAY8",
		OpEmptyList:      "EMPTY_LIST",
		OpList:           "LIST",
		OpAppend:         "APPEND",
		OpAppends:        "APPENDS",
		OpEmptyTuple:     "EMPTY_TUPLE",
		OpTuple:          "TUPLE",
		OpTuple1:         "TUPLE1",
		OpTuple2:         "TUPLE2",
		OpTuple3:         "TUPLE3",
		OpEmptyDict:      "EMPTY_DICT",
		OpDict:           "DICT",
		OpSetItem:        "SETITEM",
		OpSetItems:       "SETITEMS",
		OpEmptySet:       "EMPTY_SET",
		OpFrozenSet:      "FROZENSET",
		OpAddItems:       "ADDITEMS",
		OpMemoize:        "MEMOIZE",
		OpBinPut:         "BINPUT",
		OpLongBinPut:     "LONG_BINPUT",
		OpBinGet:         "BINGET",
		OpLongBinGet:     "LONG_BINGET",
		OpGlobal:         "GLOBAL",
		OpStackGlobal:    "STACK_GLOBAL",
		OpReduce:         "REDUCE",
		OpNewObj:         "NEWOBJ",
		OpNewObjEx:       "NEWOBJ_EX",
		OpBuild:          "BUILD",
		OpPersID:         "PERSID",
		OpBinPersID:      "BINPERSID",
	}[op]
	if ok {
		return s
	}
	return "<unknown opcode>"
}

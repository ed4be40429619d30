package assembler

import "fmt"

// operand counts of the pseudo-instructions. jal and jalr are only pseudo
// with a single operand and are handled apart.
var pseudoArity = map[string]int{
	"nop":  0,
	"mv":   2,
	"not":  2,
	"neg":  2,
	"seqz": 2,
	"snez": 2,
	"sltz": 2,
	"sgtz": 2,

	"beqz": 2,
	"bnez": 2,
	"blez": 2,
	"bgez": 2,
	"bltz": 2,
	"bgtz": 2,
	"bgt":  3,
	"ble":  3,
	"bgtu": 3,
	"bleu": 3,

	"j":   1,
	"jr":  1,
	"ret": 0,

	"li":   2,
	"la":   2,
	"call": 1,
	"tail": 1,
}

// IsPseudoInstruction reports whether mnemonic can be expanded by the
// assembler. jal and jalr count since their one-operand forms are pseudo.
func IsPseudoInstruction(mnemonic string) bool {
	if mnemonic == "jal" || mnemonic == "jalr" {
		return true
	}
	_, ok := pseudoArity[mnemonic]
	return ok
}

// SplitImmediate splits v into the lui/auipc upper part and the addi lower
// part so that (upper << 12) + lower == v. The 0x800 bias compensates for
// the sign extension of lower.
func SplitImmediate(v int64) (upper, lower int64) {
	upper = (v + 0x800) >> 12
	lower = v - (upper << 12)
	return
}

// expandedSize is the number of bytes a text line emits, used by the second
// symbol pass. Lines that would fail to encode count as 4.
func expandedSize(mnemonic string, operands []string) uint32 {
	switch mnemonic {
	case "la", "call", "tail":
		return 8
	case "li":
		if len(operands) != 2 {
			return 4
		}
		v, ok := parseInteger(operands[1])
		if !ok || fitsSigned12(as32(v)) {
			return 4
		}
		return 8
	}
	return 4
}

// expandPseudo encodes mnemonic if it is a pseudo-instruction. handled is
// false when the line must be treated as a real instruction instead.
func expandPseudo(mnemonic string, ops []string, symbols Symbols, pc uint32) (words []uint32, handled bool, err error) {
	if (mnemonic == "jal" || mnemonic == "jalr") && len(ops) != 1 {
		return nil, false, nil
	}
	if want, ok := pseudoArity[mnemonic]; ok && len(ops) != want {
		return nil, true, EncodingErrors.OperandCount(mnemonic, want, len(ops))
	}

	rewrite := func(format string, args ...interface{}) ([]uint32, bool, error) {
		words, err := EncodeLine(fmt.Sprintf(format, args...), symbols, pc, true)
		return words, true, err
	}

	switch mnemonic {
	case "nop":
		return rewrite("addi x0, x0, 0")
	case "mv":
		return rewrite("addi %s, %s, 0", ops[0], ops[1])
	case "not":
		return rewrite("xori %s, %s, -1", ops[0], ops[1])
	case "neg":
		return rewrite("sub %s, x0, %s", ops[0], ops[1])
	case "seqz":
		return rewrite("sltiu %s, %s, 1", ops[0], ops[1])
	case "snez":
		return rewrite("sltu %s, x0, %s", ops[0], ops[1])
	case "sltz":
		return rewrite("slt %s, %s, x0", ops[0], ops[1])
	case "sgtz":
		return rewrite("slt %s, x0, %s", ops[0], ops[1])

	// branches against zero
	case "beqz":
		return rewrite("beq %s, x0, %s", ops[0], ops[1])
	case "bnez":
		return rewrite("bne %s, x0, %s", ops[0], ops[1])
	case "blez":
		return rewrite("bge x0, %s, %s", ops[0], ops[1])
	case "bgez":
		return rewrite("bge %s, x0, %s", ops[0], ops[1])
	case "bltz":
		return rewrite("blt %s, x0, %s", ops[0], ops[1])
	case "bgtz":
		return rewrite("blt x0, %s, %s", ops[0], ops[1])

	// branches with swapped registers
	case "bgt":
		return rewrite("blt %s, %s, %s", ops[1], ops[0], ops[2])
	case "ble":
		return rewrite("bge %s, %s, %s", ops[1], ops[0], ops[2])
	case "bgtu":
		return rewrite("bltu %s, %s, %s", ops[1], ops[0], ops[2])
	case "bleu":
		return rewrite("bgeu %s, %s, %s", ops[1], ops[0], ops[2])

	case "j":
		return rewrite("jal x0, %s", ops[0])
	case "jal":
		return rewrite("jal x1, %s", ops[0])
	case "jr":
		return rewrite("jalr x0, 0(%s)", ops[0])
	case "jalr":
		return rewrite("jalr x1, 0(%s)", ops[0])
	case "ret":
		return rewrite("jalr x0, 0(x1)")

	case "li":
		words, err := expandLoadImmediate(ops)
		return words, true, err
	case "la":
		words, err := expandLoadAddress(ops, symbols)
		return words, true, err
	case "call":
		words, err := expandFarJump(mnemonic, ops[0], 1, 1, symbols, pc)
		return words, true, err
	case "tail":
		words, err := expandFarJump(mnemonic, ops[0], 6, 0, symbols, pc)
		return words, true, err
	}

	return nil, false, nil
}

func expandLoadImmediate(ops []string) ([]uint32, error) {
	rd, ok := LookupRegister(ops[0])
	if !ok {
		return nil, EncodingErrors.InvalidOperand(ops[0], "li")
	}
	v, ok := parseInteger(ops[1])
	if !ok {
		return nil, EncodingErrors.InvalidOperand(ops[1], "li")
	}
	v = as32(v)

	if fitsSigned12(v) {
		return []uint32{EncodeI(OPCODE_ITYPE, 0b000, rd, 0, int32(v))}, nil
	}
	return materialize(rd, v), nil
}

func expandLoadAddress(ops []string, symbols Symbols) ([]uint32, error) {
	rd, ok := LookupRegister(ops[0])
	if !ok {
		return nil, EncodingErrors.InvalidOperand(ops[0], "la")
	}
	addr, ok := lookupSymbol(symbols, ops[1])
	if !ok {
		return nil, EncodingErrors.SymbolNotDefined(ops[1])
	}
	return materialize(rd, as32(int64(addr))), nil
}

// materialize emits lui rd, upper followed by addi rd, rd, lower.
func materialize(rd uint32, v int64) []uint32 {
	upper, lower := SplitImmediate(v)
	return []uint32{
		EncodeU(OPCODE_LUI, uint32(upper)<<12, rd),
		EncodeI(OPCODE_ITYPE, 0b000, rd, rd, int32(lower)),
	}
}

// expandFarJump emits auipc scratch, upper at pc and jalr link, scratch, lower
// at pc+4. target is a byte offset from pc or a label.
func expandFarJump(mnemonic, target string, scratch, link uint32, symbols Symbols, pc uint32) ([]uint32, error) {
	offset, ok := parseInteger(target)
	if !ok {
		if _, isReg := LookupRegister(target); isReg {
			return nil, EncodingErrors.InvalidOperand(target, mnemonic)
		}
		addr, found := lookupSymbol(symbols, target)
		if !found {
			return nil, EncodingErrors.SymbolNotDefined(target)
		}
		offset = int64(addr) - int64(pc)
	}

	upper, lower := SplitImmediate(as32(offset))
	return []uint32{
		EncodeU(OPCODE_AUIPC, uint32(upper)<<12, scratch),
		EncodeI(OPCODE_JALR, 0b000, link, scratch, int32(lower)),
	}, nil
}

func lookupSymbol(symbols Symbols, name string) (uint32, bool) {
	if symbols == nil {
		return 0, false
	}
	return symbols.Lookup(name)
}

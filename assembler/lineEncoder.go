package assembler

import (
	"regexp"
	"strings"
)

var offsetOperandPattern = regexp.MustCompile(`^([^()]*)\(([^()]+)\)$`)

// EncodeLine encodes one delabeled, comment-free source line at pc. Pseudo
// instructions are tried first unless skipPseudo is set, which is how the
// expander re-enters the encoder with the rewritten real instruction.
func EncodeLine(line string, symbols Symbols, pc uint32, skipPseudo bool) ([]uint32, error) {
	mnemonic, ops := tokenize(line)
	if mnemonic == "" {
		return nil, nil
	}

	if !skipPseudo {
		words, handled, err := expandPseudo(mnemonic, ops, symbols, pc)
		if handled {
			if err != nil {
				return nil, err
			}
			return words, nil
		}
	}

	def, ok := LookupInstruction(mnemonic)
	if !ok {
		return nil, EncodingErrors.UnsupportedInstruction(mnemonic)
	}

	word, err := encodeInstruction(def, ops, symbols, pc)
	if err != nil {
		return nil, err
	}
	return []uint32{word}, nil
}

func encodeInstruction(def InstructionDefinition, ops []string, symbols Symbols, pc uint32) (uint32, error) {
	m := def.Mnemonic

	switch def.Format {
	case FormatR:
		if len(ops) != 3 {
			return 0, EncodingErrors.OperandCount(m, 3, len(ops))
		}
		regs, err := registers(m, ops...)
		if err != nil {
			return 0, err
		}
		return EncodeR(def.Opcode, def.Funct3, def.Funct7, regs[0], regs[1], regs[2]), nil

	case FormatI:
		switch def.Opcode {
		case OPCODE_ENV:
			if len(ops) != 0 {
				return 0, EncodingErrors.OperandCount(m, 0, len(ops))
			}
			return EncodeI(def.Opcode, def.Funct3, 0, 0, int32(systemImmediates[m])), nil
		case OPCODE_MEMITYPE, OPCODE_JALR:
			rd, rs1, imm, err := memoryOperands(m, ops)
			if err != nil {
				return 0, err
			}
			return EncodeI(def.Opcode, def.Funct3, rd, rs1, imm), nil
		}

		if len(ops) != 3 {
			return 0, EncodingErrors.OperandCount(m, 3, len(ops))
		}
		regs, err := registers(m, ops[0], ops[1])
		if err != nil {
			return 0, err
		}
		imm, err := immediate(m, ops[2])
		if err != nil {
			return 0, err
		}
		if def.HasFunct7 {
			// shift amount in imm[4:0], funct7 in imm[11:5]
			imm = int32(def.Funct7<<5) | (imm & 0x1F)
		}
		return EncodeI(def.Opcode, def.Funct3, regs[0], regs[1], imm), nil

	case FormatS:
		rs2, rs1, imm, err := memoryOperands(m, ops)
		if err != nil {
			return 0, err
		}
		return EncodeS(def.Opcode, def.Funct3, rs1, rs2, imm), nil

	case FormatB:
		if len(ops) != 3 {
			return 0, EncodingErrors.OperandCount(m, 3, len(ops))
		}
		regs, err := registers(m, ops[0], ops[1])
		if err != nil {
			return 0, err
		}
		offset, err := branchOffset(m, ops[2], symbols, pc)
		if err != nil {
			return 0, err
		}
		return EncodeB(def.Opcode, def.Funct3, offset, regs[0], regs[1]), nil

	case FormatJ:
		if len(ops) != 2 {
			return 0, EncodingErrors.OperandCount(m, 2, len(ops))
		}
		rd, err := register(m, ops[0])
		if err != nil {
			return 0, err
		}
		offset, err := branchOffset(m, ops[1], symbols, pc)
		if err != nil {
			return 0, err
		}
		return EncodeJ(def.Opcode, offset, rd), nil

	case FormatU:
		if len(ops) != 2 {
			return 0, EncodingErrors.OperandCount(m, 2, len(ops))
		}
		rd, err := register(m, ops[0])
		if err != nil {
			return 0, err
		}
		imm, err := immediate(m, ops[1])
		if err != nil {
			return 0, err
		}
		return EncodeU(def.Opcode, uint32(imm)<<12, rd), nil
	}

	return 0, EncodingErrors.UnsupportedInstruction(m)
}

func register(mnemonic, operand string) (uint32, error) {
	reg, ok := LookupRegister(operand)
	if !ok {
		return 0, EncodingErrors.InvalidOperand(operand, mnemonic)
	}
	return reg, nil
}

func registers(mnemonic string, operands ...string) ([]uint32, error) {
	regs := make([]uint32, len(operands))
	for i, op := range operands {
		reg, err := register(mnemonic, op)
		if err != nil {
			return nil, err
		}
		regs[i] = reg
	}
	return regs, nil
}

func immediate(mnemonic, operand string) (int32, error) {
	v, ok := parseInteger(operand)
	if !ok {
		return 0, EncodingErrors.InvalidOperand(operand, mnemonic)
	}
	return int32(as32(v)), nil
}

// memoryOperands parses "reg, offset(base)" or "reg, base, offset", the
// operand shapes shared by loads, stores and jalr.
func memoryOperands(mnemonic string, ops []string) (reg, base uint32, offset int32, err error) {
	switch len(ops) {
	case 2:
		if reg, err = register(mnemonic, ops[0]); err != nil {
			return
		}
		base, offset, err = parseOffsetOperand(mnemonic, ops[1])
		return
	case 3:
		var regs []uint32
		if regs, err = registers(mnemonic, ops[0], ops[1]); err != nil {
			return
		}
		reg, base = regs[0], regs[1]
		offset, err = immediate(mnemonic, ops[2])
		return
	}
	err = EncodingErrors.OperandCount(mnemonic, 2, len(ops))
	return
}

// parseOffsetOperand splits "imm(reg)". An empty imm means 0.
func parseOffsetOperand(mnemonic, operand string) (uint32, int32, error) {
	match := offsetOperandPattern.FindStringSubmatch(strings.TrimSpace(operand))
	if match == nil {
		return 0, 0, EncodingErrors.MalformedOffsetOperand(operand, mnemonic)
	}

	base, err := register(mnemonic, strings.TrimSpace(match[2]))
	if err != nil {
		return 0, 0, err
	}

	offsetText := strings.TrimSpace(match[1])
	if offsetText == "" {
		return base, 0, nil
	}
	offset, err := immediate(mnemonic, offsetText)
	if err != nil {
		return 0, 0, err
	}
	return base, offset, nil
}

// branchOffset resolves a branch or jump target to a byte offset from pc.
// Numeric targets are taken as offsets already.
func branchOffset(mnemonic, target string, symbols Symbols, pc uint32) (int32, error) {
	if v, ok := parseInteger(target); ok {
		return int32(as32(v)), nil
	}
	if _, isReg := LookupRegister(target); isReg {
		return 0, EncodingErrors.InvalidOperand(target, mnemonic)
	}
	addr, ok := lookupSymbol(symbols, target)
	if !ok {
		return 0, EncodingErrors.LabelNotFound(target)
	}
	return int32(addr - pc), nil
}

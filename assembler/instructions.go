package assembler

import "strings"

// Format is one of the six RV32I bit layouts.
type Format int

const (
	FormatR Format = iota
	FormatI
	FormatS
	FormatB
	FormatJ
	FormatU
)

func (f Format) String() string {
	switch f {
	case FormatR:
		return "R"
	case FormatI:
		return "I"
	case FormatS:
		return "S"
	case FormatB:
		return "B"
	case FormatJ:
		return "J"
	case FormatU:
		return "U"
	}
	return "?"
}

// InstructionDefinition holds the fixed fields of a real mnemonic.
// Funct7 on an I-format entry is placed in imm[11:5] (shift immediates).
type InstructionDefinition struct {
	Mnemonic  string
	Format    Format
	Opcode    uint32
	Funct3    uint32
	Funct7    uint32
	HasFunct3 bool
	HasFunct7 bool
}

// opcode conversions
const (
	OPCODE_RTYPE    = 0b0110011
	OPCODE_ITYPE    = 0b0010011
	OPCODE_STYPE    = 0b0100011
	OPCODE_BTYPE    = 0b1100011
	OPCODE_LUI      = 0b0110111
	OPCODE_AUIPC    = 0b0010111
	OPCODE_JAL      = 0b1101111
	OPCODE_JALR     = 0b1100111
	OPCODE_MEMITYPE = 0b0000011
	OPCODE_ENV      = 0b1110011
)

func rType(funct3, funct7 uint32) InstructionDefinition {
	return InstructionDefinition{Format: FormatR, Opcode: OPCODE_RTYPE, Funct3: funct3, Funct7: funct7, HasFunct3: true, HasFunct7: true}
}

func iType(opcode, funct3 uint32) InstructionDefinition {
	return InstructionDefinition{Format: FormatI, Opcode: opcode, Funct3: funct3, HasFunct3: true}
}

func shiftType(funct3, funct7 uint32) InstructionDefinition {
	return InstructionDefinition{Format: FormatI, Opcode: OPCODE_ITYPE, Funct3: funct3, Funct7: funct7, HasFunct3: true, HasFunct7: true}
}

func sType(funct3 uint32) InstructionDefinition {
	return InstructionDefinition{Format: FormatS, Opcode: OPCODE_STYPE, Funct3: funct3, HasFunct3: true}
}

func bType(funct3 uint32) InstructionDefinition {
	return InstructionDefinition{Format: FormatB, Opcode: OPCODE_BTYPE, Funct3: funct3, HasFunct3: true}
}

var instructionDefinitions = map[string]InstructionDefinition{
	// R-type
	"add":  rType(0b000, 0b0000000),
	"sub":  rType(0b000, 0b0100000),
	"xor":  rType(0b100, 0b0000000),
	"or":   rType(0b110, 0b0000000),
	"and":  rType(0b111, 0b0000000),
	"sll":  rType(0b001, 0b0000000),
	"srl":  rType(0b101, 0b0000000),
	"sra":  rType(0b101, 0b0100000),
	"slt":  rType(0b010, 0b0000000),
	"sltu": rType(0b011, 0b0000000),

	// RV32M
	"mul":    rType(0b000, 0b0000001),
	"mulh":   rType(0b001, 0b0000001),
	"mulhsu": rType(0b010, 0b0000001),
	"mulhu":  rType(0b011, 0b0000001),
	"div":    rType(0b100, 0b0000001),
	"divu":   rType(0b101, 0b0000001),
	"rem":    rType(0b110, 0b0000001),
	"remu":   rType(0b111, 0b0000001),

	// I-type
	"addi":  iType(OPCODE_ITYPE, 0b000),
	"xori":  iType(OPCODE_ITYPE, 0b100),
	"ori":   iType(OPCODE_ITYPE, 0b110),
	"andi":  iType(OPCODE_ITYPE, 0b111),
	"slti":  iType(OPCODE_ITYPE, 0b010),
	"sltiu": iType(OPCODE_ITYPE, 0b011),
	"slli":  shiftType(0b001, 0b0000000),
	"srli":  shiftType(0b101, 0b0000000),
	"srai":  shiftType(0b101, 0b0100000),

	"lb":  iType(OPCODE_MEMITYPE, 0b000),
	"lh":  iType(OPCODE_MEMITYPE, 0b001),
	"lw":  iType(OPCODE_MEMITYPE, 0b010),
	"lbu": iType(OPCODE_MEMITYPE, 0b100),
	"lhu": iType(OPCODE_MEMITYPE, 0b101),

	"jalr": iType(OPCODE_JALR, 0b000),

	"ecall":  iType(OPCODE_ENV, 0b000),
	"ebreak": iType(OPCODE_ENV, 0b000),

	// S-type
	"sb": sType(0b000),
	"sh": sType(0b001),
	"sw": sType(0b010),

	// B-type
	"beq":  bType(0b000),
	"bne":  bType(0b001),
	"blt":  bType(0b100),
	"bge":  bType(0b101),
	"bltu": bType(0b110),
	"bgeu": bType(0b111),

	// J-type
	"jal": {Format: FormatJ, Opcode: OPCODE_JAL},

	// U-type
	"lui":   {Format: FormatU, Opcode: OPCODE_LUI},
	"auipc": {Format: FormatU, Opcode: OPCODE_AUIPC},
}

// environment calls are told apart by their immediate
var systemImmediates = map[string]uint32{
	"ecall":  0,
	"ebreak": 1,
}

func init() {
	for mnemonic, def := range instructionDefinitions {
		def.Mnemonic = mnemonic
		instructionDefinitions[mnemonic] = def
	}
}

// LookupInstruction returns the definition of a real (non-pseudo) mnemonic.
func LookupInstruction(mnemonic string) (InstructionDefinition, bool) {
	def, ok := instructionDefinitions[strings.ToLower(mnemonic)]
	return def, ok
}

// Mnemonics lists every real mnemonic in the table, unordered.
func Mnemonics() []string {
	out := make([]string, 0, len(instructionDefinitions))
	for m := range instructionDefinitions {
		out = append(out, m)
	}
	return out
}

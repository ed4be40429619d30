package assembler

type hoverInfoFormatsType struct {
	labelDefinition string
	labelExpanded   string
	labelReference  string
	integerLiteral  string
	wordDirective   string
	format          string

	// registers
	zeroRegister         string
	raRegister           string
	spRegister           string
	gpRegister           string
	tpRegister           string
	namedGenericRegister string
	genericRegister      string
}

var hoverInfoFormats = hoverInfoFormatsType{
	labelDefinition: "Definition of label `%s`.\n\nLocated in the %s section at `0x%08X`",
	labelExpanded:   "\n\nAfter pseudo-instruction expansion this line is emitted at `0x%08X`",
	labelReference:  "Reference to label `%s` (%s section)\n\nResolves to `0x%08X`",
	integerLiteral:  "Integer Literal `%d` (`0x%08x`)",
	wordDirective:   "Word Directive.\n\nFormat: `.word <value>`\n\nStores one 32-bit value at the next data address. Values that cannot be parsed are stored as `0`.",
	format:          "\n\nEncoding format: %s-type",

	zeroRegister:         "Zero Register `zero` (`x0`)\n\nReads as `0`, writes are discarded",
	raRegister:           "Return Address Register `ra` (`x1`)\n\nHolds the return address written by `jal` and `call`",
	spRegister:           "Stack Pointer Register `sp` (`x2`)\n\nHolds the address of the top of the stack",
	gpRegister:           "Global Pointer Register `gp` (`x3`)\n\nHolds the address of the global data segment",
	tpRegister:           "Thread Pointer Register `tp` (`x4`)\n\nHolds the address of thread-local storage",
	genericRegister:      "Register `x%d` (`%s`). 32-Bit General Purpose Register",
	namedGenericRegister: "Register `%s` (`x%d`). 32-Bit General Purpose Register",
}

var instructionHoverInfo = map[string]string{
	"add":  "Add.\n\nFormat: `add <rd>, <rs1>, <rs2>`\n\n`rd = rs1 + rs2`",
	"sub":  "Subtract.\n\nFormat: `sub <rd>, <rs1>, <rs2>`\n\n`rd = rs1 - rs2`",
	"xor":  "Bitwise XOR.\n\nFormat: `xor <rd>, <rs1>, <rs2>`\n\n`rd = rs1 ^ rs2`",
	"or":   "Bitwise OR.\n\nFormat: `or <rd>, <rs1>, <rs2>`\n\n`rd = rs1 | rs2`",
	"and":  "Bitwise AND.\n\nFormat: `and <rd>, <rs1>, <rs2>`\n\n`rd = rs1 & rs2`",
	"sll":  "Shift Left Logical.\n\nFormat: `sll <rd>, <rs1>, <rs2>`\n\n`rd = rs1 << rs2[4:0]`",
	"srl":  "Shift Right Logical.\n\nFormat: `srl <rd>, <rs1>, <rs2>`\n\n`rd = rs1 >> rs2[4:0]`, filling with zeros",
	"sra":  "Shift Right Arithmetic.\n\nFormat: `sra <rd>, <rs1>, <rs2>`\n\n`rd = rs1 >> rs2[4:0]`, filling with the sign bit",
	"slt":  "Set Less Than.\n\nFormat: `slt <rd>, <rs1>, <rs2>`\n\n`rd = 1` if `rs1 < rs2` (signed), else `0`",
	"sltu": "Set Less Than Unsigned.\n\nFormat: `sltu <rd>, <rs1>, <rs2>`\n\n`rd = 1` if `rs1 < rs2` (unsigned), else `0`",

	"mul":    "Multiply.\n\nFormat: `mul <rd>, <rs1>, <rs2>`\n\nLow 32 bits of `rs1 * rs2`",
	"mulh":   "Multiply High.\n\nFormat: `mulh <rd>, <rs1>, <rs2>`\n\nHigh 32 bits of the signed 64-bit product",
	"mulhsu": "Multiply High Signed-Unsigned.\n\nFormat: `mulhsu <rd>, <rs1>, <rs2>`\n\nHigh 32 bits of signed `rs1` times unsigned `rs2`",
	"mulhu":  "Multiply High Unsigned.\n\nFormat: `mulhu <rd>, <rs1>, <rs2>`\n\nHigh 32 bits of the unsigned 64-bit product",
	"div":    "Divide.\n\nFormat: `div <rd>, <rs1>, <rs2>`\n\nSigned `rs1 / rs2`",
	"divu":   "Divide Unsigned.\n\nFormat: `divu <rd>, <rs1>, <rs2>`\n\nUnsigned `rs1 / rs2`",
	"rem":    "Remainder.\n\nFormat: `rem <rd>, <rs1>, <rs2>`\n\nSigned `rs1 % rs2`",
	"remu":   "Remainder Unsigned.\n\nFormat: `remu <rd>, <rs1>, <rs2>`\n\nUnsigned `rs1 % rs2`",

	"addi":  "Add Immediate.\n\nFormat: `addi <rd>, <rs1>, <imm>`\n\n`rd = rs1 + imm`, with `imm` a signed 12-bit value (-2048 to 2047)",
	"xori":  "XOR Immediate.\n\nFormat: `xori <rd>, <rs1>, <imm>`\n\n`rd = rs1 ^ imm`",
	"ori":   "OR Immediate.\n\nFormat: `ori <rd>, <rs1>, <imm>`\n\n`rd = rs1 | imm`",
	"andi":  "AND Immediate.\n\nFormat: `andi <rd>, <rs1>, <imm>`\n\n`rd = rs1 & imm`",
	"slli":  "Shift Left Logical Immediate.\n\nFormat: `slli <rd>, <rs1>, <shamt>`\n\n`shamt` is 0 to 31",
	"srli":  "Shift Right Logical Immediate.\n\nFormat: `srli <rd>, <rs1>, <shamt>`\n\n`shamt` is 0 to 31",
	"srai":  "Shift Right Arithmetic Immediate.\n\nFormat: `srai <rd>, <rs1>, <shamt>`\n\n`shamt` is 0 to 31, the sign bit is copied in",
	"slti":  "Set Less Than Immediate.\n\nFormat: `slti <rd>, <rs1>, <imm>`\n\n`rd = 1` if `rs1 < imm` (signed), else `0`",
	"sltiu": "Set Less Than Immediate Unsigned.\n\nFormat: `sltiu <rd>, <rs1>, <imm>`\n\n`rd = 1` if `rs1 < imm` (unsigned), else `0`",

	"lb":  "Load Byte.\n\nFormat: `lb <rd>, <imm>(<rs1>)`\n\nSign-extended byte at `rs1 + imm`",
	"lh":  "Load Halfword.\n\nFormat: `lh <rd>, <imm>(<rs1>)`\n\nSign-extended halfword at `rs1 + imm`",
	"lw":  "Load Word.\n\nFormat: `lw <rd>, <imm>(<rs1>)`\n\nWord at `rs1 + imm`",
	"lbu": "Load Byte Unsigned.\n\nFormat: `lbu <rd>, <imm>(<rs1>)`\n\nZero-extended byte at `rs1 + imm`",
	"lhu": "Load Halfword Unsigned.\n\nFormat: `lhu <rd>, <imm>(<rs1>)`\n\nZero-extended halfword at `rs1 + imm`",

	"sb": "Store Byte.\n\nFormat: `sb <rs2>, <imm>(<rs1>)`\n\nLow byte of `rs2` to `rs1 + imm`",
	"sh": "Store Halfword.\n\nFormat: `sh <rs2>, <imm>(<rs1>)`\n\nLow halfword of `rs2` to `rs1 + imm`",
	"sw": "Store Word.\n\nFormat: `sw <rs2>, <imm>(<rs1>)`\n\n`rs2` to `rs1 + imm`",

	"beq":  "Branch if Equal.\n\nFormat: `beq <rs1>, <rs2>, <label|offset>`\n\nThe byte offset is stored halved in 12 bits, reaching -4096 to 4094",
	"bne":  "Branch if Not Equal.\n\nFormat: `bne <rs1>, <rs2>, <label|offset>`",
	"blt":  "Branch if Less Than.\n\nFormat: `blt <rs1>, <rs2>, <label|offset>`\n\nSigned comparison",
	"bge":  "Branch if Greater or Equal.\n\nFormat: `bge <rs1>, <rs2>, <label|offset>`\n\nSigned comparison",
	"bltu": "Branch if Less Than Unsigned.\n\nFormat: `bltu <rs1>, <rs2>, <label|offset>`",
	"bgeu": "Branch if Greater or Equal Unsigned.\n\nFormat: `bgeu <rs1>, <rs2>, <label|offset>`",

	"jal":  "Jump and Link.\n\nFormat: `jal <rd>, <label|offset>`\n\n`rd = pc + 4`, then jumps. The offset is stored halved in 20 bits, reaching +/- 1 MiB",
	"jalr": "Jump and Link Register.\n\nFormat: `jalr <rd>, <imm>(<rs1>)` or `jalr <rd>, <rs1>, <imm>`\n\n`rd = pc + 4; pc = rs1 + imm`",

	"lui":   "Load Upper Immediate.\n\nFormat: `lui <rd>, <imm20>`\n\n`rd = imm20 << 12`",
	"auipc": "Add Upper Immediate to PC.\n\nFormat: `auipc <rd>, <imm20>`\n\n`rd = pc + (imm20 << 12)`",

	"ecall":  "Environment Call.\n\nFormat: `ecall`",
	"ebreak": "Environment Break.\n\nFormat: `ebreak`",
}

var pseudoHoverInfo = map[string]string{
	"nop":  "Pseudo-instruction `nop`.\n\nExpands to `addi x0, x0, 0`",
	"mv":   "Pseudo-instruction `mv <rd>, <rs>`.\n\nExpands to `addi rd, rs, 0`",
	"not":  "Pseudo-instruction `not <rd>, <rs>`.\n\nExpands to `xori rd, rs, -1`",
	"neg":  "Pseudo-instruction `neg <rd>, <rs>`.\n\nExpands to `sub rd, x0, rs`",
	"seqz": "Pseudo-instruction `seqz <rd>, <rs>`.\n\nExpands to `sltiu rd, rs, 1`",
	"snez": "Pseudo-instruction `snez <rd>, <rs>`.\n\nExpands to `sltu rd, x0, rs`",
	"sltz": "Pseudo-instruction `sltz <rd>, <rs>`.\n\nExpands to `slt rd, rs, x0`",
	"sgtz": "Pseudo-instruction `sgtz <rd>, <rs>`.\n\nExpands to `slt rd, x0, rs`",

	"beqz": "Pseudo-instruction `beqz <rs>, <label>`.\n\nExpands to `beq rs, x0, label`",
	"bnez": "Pseudo-instruction `bnez <rs>, <label>`.\n\nExpands to `bne rs, x0, label`",
	"blez": "Pseudo-instruction `blez <rs>, <label>`.\n\nExpands to `bge x0, rs, label`",
	"bgez": "Pseudo-instruction `bgez <rs>, <label>`.\n\nExpands to `bge rs, x0, label`",
	"bltz": "Pseudo-instruction `bltz <rs>, <label>`.\n\nExpands to `blt rs, x0, label`",
	"bgtz": "Pseudo-instruction `bgtz <rs>, <label>`.\n\nExpands to `blt x0, rs, label`",
	"bgt":  "Pseudo-instruction `bgt <rs>, <rt>, <label>`.\n\nExpands to `blt rt, rs, label`",
	"ble":  "Pseudo-instruction `ble <rs>, <rt>, <label>`.\n\nExpands to `bge rt, rs, label`",
	"bgtu": "Pseudo-instruction `bgtu <rs>, <rt>, <label>`.\n\nExpands to `bltu rt, rs, label`",
	"bleu": "Pseudo-instruction `bleu <rs>, <rt>, <label>`.\n\nExpands to `bgeu rt, rs, label`",

	"j":    "Pseudo-instruction `j <label>`.\n\nExpands to `jal x0, label`",
	"jal":  "With a single operand, `jal <label>` expands to `jal x1, label`",
	"jr":   "Pseudo-instruction `jr <rs>`.\n\nExpands to `jalr x0, 0(rs)`",
	"jalr": "With a single operand, `jalr <rs>` expands to `jalr x1, 0(rs)`",
	"ret":  "Pseudo-instruction `ret`.\n\nExpands to `jalr x0, 0(x1)`",

	"li":   "Pseudo-instruction `li <rd>, <imm>`.\n\nOne `addi` when `imm` fits 12 signed bits, otherwise `lui` followed by `addi`",
	"la":   "Pseudo-instruction `la <rd>, <label>`.\n\nLoads the absolute address of `label` with `lui` followed by `addi`",
	"call": "Pseudo-instruction `call <label|offset>`.\n\nExpands to `auipc x1, hi` and `jalr x1, lo(x1)`",
	"tail": "Pseudo-instruction `tail <label|offset>`.\n\nExpands to `auipc x6, hi` and `jalr x0, lo(x6)`",
}

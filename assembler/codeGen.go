package assembler

import "fmt"

// Every encoder takes already-resolved operands and packs them without
// range checks: registers keep their low 5 bits, immediates wrap to their
// field width the way two's-complement hardware would.

func EncodeR(opcode, funct3, funct7, rd, rs1, rs2 uint32) uint32 {
	return ((funct7 & 0x7F) << 25) | ((rs2 & 0x1F) << 20) | ((rs1 & 0x1F) << 15) | ((funct3 & 0x7) << 12) | ((rd & 0x1F) << 7) | (opcode & 0x7F)
}

func EncodeI(opcode, funct3, rd, rs1 uint32, imm int32) uint32 {
	field := uint32(imm) & 0xFFF
	return (field << 20) | ((rs1 & 0x1F) << 15) | ((funct3 & 0x7) << 12) | ((rd & 0x1F) << 7) | (opcode & 0x7F)
}

func EncodeS(opcode, funct3, rs1, rs2 uint32, imm int32) uint32 {
	field := uint32(imm) & 0xFFF
	return ((field >> 5) << 25) | ((rs2 & 0x1F) << 20) | ((rs1 & 0x1F) << 15) | ((funct3 & 0x7) << 12) | ((field & 0x1F) << 7) | (opcode & 0x7F)
}

// EncodeB expects the branch distance in bytes. It is halved before packing,
// so bit 0 of an odd offset is lost.
func EncodeB(opcode, funct3 uint32, offset int32, rs1, rs2 uint32) uint32 {
	half := uint32(offset>>1) & 0xFFF // byte offset bits 12..1

	instr := ((rs2 & 0x1F) << 20) | ((rs1 & 0x1F) << 15) | ((funct3 & 0x7) << 12) | (opcode & 0x7F)
	// immediate is stored in a very convoluted way
	instr |= ((half >> 11) & 0x1) << 31 // imm[12]
	instr |= ((half >> 4) & 0x3F) << 25 // imm[10:5]
	instr |= (half & 0xF) << 8          // imm[4:1]
	instr |= ((half >> 10) & 0x1) << 7  // imm[11]

	return instr
}

// EncodeJ expects the jump distance in bytes, halved like EncodeB.
func EncodeJ(opcode uint32, offset int32, rd uint32) uint32 {
	half := uint32(offset>>1) & 0xFFFFF // byte offset bits 20..1

	instr := ((rd & 0x1F) << 7) | (opcode & 0x7F)
	instr |= ((half >> 19) & 0x1) << 31  // imm[20]
	instr |= (half & 0x3FF) << 21        // imm[10:1]
	instr |= ((half >> 10) & 0x1) << 20  // imm[11]
	instr |= ((half >> 11) & 0xFF) << 12 // imm[19:12]

	return instr
}

// EncodeU keeps bits 31..12 of imm.
func EncodeU(opcode, imm, rd uint32) uint32 {
	return ((imm >> 12) << 12) | ((rd & 0x1F) << 7) | (opcode & 0x7F)
}

func DecodeRTypeInstruction(instruction uint32) (opcode, rd, rs1, rs2, funct7, funct3 uint32) {
	opcode = instruction & 0x7F
	rd = (instruction >> 7) & 0x1F
	funct3 = (instruction >> 12) & 0x7
	rs1 = (instruction >> 15) & 0x1F
	rs2 = (instruction >> 20) & 0x1F
	funct7 = (instruction >> 25) & 0x7F
	return
}

func DecodeITypeInstruction(instruction uint32) (opcode, rd, rs1, funct3 uint32, imm int32) {
	opcode = instruction & 0x7F
	rd = (instruction >> 7) & 0x1F
	funct3 = (instruction >> 12) & 0x7
	rs1 = (instruction >> 15) & 0x1F
	imm = int32(instruction) >> 20
	return
}

func DecodeSTypeInstruction(instruction uint32) (opcode, rs1, rs2, funct3 uint32, imm int32) {
	opcode = instruction & 0x7F
	funct3 = (instruction >> 12) & 0x7
	rs1 = (instruction >> 15) & 0x1F
	rs2 = (instruction >> 20) & 0x1F
	raw := (((instruction >> 25) & 0x7F) << 5) | ((instruction >> 7) & 0x1F)
	imm = int32(raw<<20) >> 20
	return
}

// DecodeBTypeInstruction returns the branch distance in bytes.
func DecodeBTypeInstruction(instruction uint32) (opcode, rs1, rs2, funct3 uint32, offset int32) {
	opcode = instruction & 0x7F
	funct3 = (instruction >> 12) & 0x7
	rs1 = (instruction >> 15) & 0x1F
	rs2 = (instruction >> 20) & 0x1F
	raw := ((instruction >> 31) & 0x1) << 12
	raw |= ((instruction >> 7) & 0x1) << 11
	raw |= ((instruction >> 25) & 0x3F) << 5
	raw |= ((instruction >> 8) & 0xF) << 1
	offset = int32(raw<<19) >> 19
	return
}

func DecodeUTypeInstruction(instruction uint32) (opcode, rd, imm uint32) {
	opcode = instruction & 0x7F
	rd = (instruction >> 7) & 0x1F
	imm = instruction & 0xFFFFF000
	return
}

// DecodeJTypeInstruction returns the jump distance in bytes.
func DecodeJTypeInstruction(instruction uint32) (opcode, rd uint32, offset int32) {
	opcode = instruction & 0x7F
	rd = (instruction >> 7) & 0x1F
	raw := ((instruction >> 31) & 0x1) << 20
	raw |= ((instruction >> 21) & 0x3FF) << 1
	raw |= ((instruction >> 20) & 0x1) << 11
	raw |= ((instruction >> 12) & 0xFF) << 12
	offset = int32(raw<<11) >> 11
	return
}

func GetOpCode(instruction uint32) uint32 {
	return instruction & 0x7F
}

// FieldWidths lists the widths of a format's fields, most significant first.
func FieldWidths(format Format) []int {
	switch format {
	case FormatR:
		return []int{7, 5, 5, 3, 5, 7}
	case FormatI:
		return []int{12, 5, 3, 5, 7}
	case FormatS:
		return []int{7, 5, 5, 3, 5, 7}
	case FormatB:
		return []int{1, 6, 5, 5, 3, 4, 1, 7}
	case FormatJ:
		return []int{1, 10, 1, 8, 5, 7}
	case FormatU:
		return []int{20, 5, 7}
	}
	return nil
}

// FormatBinary renders a word as 32 '0'/'1' characters.
func FormatBinary(word uint32) string {
	return fmt.Sprintf("%032b", word)
}

// FormatHex renders a word as 8 lowercase hex digits.
func FormatHex(word uint32) string {
	return fmt.Sprintf("%08x", word)
}

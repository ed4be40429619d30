package assembler_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.gatech.edu/ECEInnovation/RV32I-Assembler/assembler"
)

func TestProgramIType(t *testing.T) {
	source := `
	.text
		addi x1, x0, 1
		addi x2, x0, 2
	`
	expected := []uint32{
		0x00100093,
		0x00200113,
	}

	program := assembler.Assemble(source)
	validateResult(t, program, expected, nil, nil)
}

func TestProgramBranchesAndLabels(t *testing.T) {
	source := `
	.text
		label1: addi x1, x0, 1
		addi x2, x0, 2
		beq x1, x2, label1 # should evaluate to -8
	`

	expected := []uint32{
		0x00100093,
		0x00200113,
		0xfe208ce3,
	}

	program := assembler.Assemble(source)
	validateResult(t, program, expected, nil, nil)

	// backward branch has the sign bit set
	assert.Equal(t, uint32(1), program.ProgramText[2]>>31)
}

func TestProgramJumps(t *testing.T) {
	source := `
	.text
		jal x1, label1
		addi x2, x0, 2
		label1: addi x3, x0, 3
	`

	expected := []uint32{
		0x008000ef,
		0x00200113,
		0x00300193,
	}

	program := assembler.Assemble(source)
	validateResult(t, program, expected, nil, nil)
}

func TestReferenceEncodings(t *testing.T) {
	source := `
	.text
	start:
		add x1, x2, x3
		addi x1, x2, 10
		sw x3, 4(x2)
		beq x1, x2, start
		jal x1, start
		lui x1, 0x10000
	`

	expected := []uint32{
		0x003100b3,
		0x00a10093,
		0x00312223,
		0xfe208ae3, // -12
		0xff1ff0ef, // -16
		0x100000b7,
	}

	program := assembler.Assemble(source)
	validateResult(t, program, expected, nil, nil)
}

func TestDataWord(t *testing.T) {
	source := `
	.data
	MyWord: .word 42
	`

	program := assembler.Assemble(source)
	validateResult(t, program, []uint32{}, []assembler.DataWord{{Address: 0x10000000, Value: 42}}, nil)

	require.Len(t, program.Listing, 1)
	assert.Equal(t, assembler.ListingData, program.Listing[0].Kind)
	assert.Equal(t, uint32(0x10000000), program.Listing[0].Address)
	assert.Equal(t, uint32(0x10000000), program.Labels["MyWord"])
	assert.Equal(t, "data", program.LabelTypes["MyWord"])
}

func TestDataInvalidWord(t *testing.T) {
	source := `.data
first: .word 0x12345678
.word oops
.word -1`

	expectedData := []assembler.DataWord{
		{Address: 0x10000000, Value: 0x12345678},
		{Address: 0x10000004, Value: 0},
		{Address: 0x10000008, Value: 0xffffffff},
	}
	expectedDiagnostics := []assembler.Diagnostic{
		{
			Range:    assembler.TextRange{Start: assembler.TextPosition{Line: 2, Char: 0}, End: assembler.TextPosition{Line: 2, Char: 10}},
			Message:  "Invalid .word value \"oops\", storing 0",
			Severity: assembler.Warning,
		},
	}

	program := assembler.Assemble(source)
	validateResult(t, program, []uint32{}, expectedData, expectedDiagnostics)
	assert.True(t, program.Succeeded())
}

func TestDataInProgram(t *testing.T) {
	source := `
	.data
	MyWord: .word 0x12345678
	.text
	la x1, MyWord
	lw x2, 0(x1)
	`

	expectedText := []uint32{
		0x100000b7, // lui x1, 0x10000
		0x00008093, // addi x1, x1, 0
		0x0000a103,
	}

	program := assembler.Assemble(source)
	// la occupies 8 bytes, nothing after it is labeled so no warning
	validateResult(t, program, expectedText, []assembler.DataWord{{Address: 0x10000000, Value: 0x12345678}}, nil)
}

func TestLoadImmediate(t *testing.T) {
	program := assembler.Assemble(".text\nli x1, 100\n")
	validateResult(t, program, []uint32{0x06400093}, nil, nil)

	for _, value := range []int32{100000, -100000, 0x7fffffff, -0x80000000, 2048, -2049} {
		program := assembler.AssembleWithConfig(".text\nli x5, "+itoa(value)+"\n", assembler.DefaultConfig())
		require.Empty(t, program.LineErrors, "li %d", value)
		require.Len(t, program.ProgramText, 2, "li %d", value)

		op, rd, upper := assembler.DecodeUTypeInstruction(program.ProgramText[0])
		assert.Equal(t, uint32(assembler.OPCODE_LUI), op)
		assert.Equal(t, uint32(5), rd)

		op, rd, rs1, _, lower := assembler.DecodeITypeInstruction(program.ProgramText[1])
		assert.Equal(t, uint32(assembler.OPCODE_ITYPE), op)
		assert.Equal(t, uint32(5), rd)
		assert.Equal(t, uint32(5), rs1)

		assert.Equal(t, value, int32(upper)+lower, "li %d", value)
	}
}

func TestListingRepeatsPseudoSource(t *testing.T) {
	program := assembler.Assemble(".text\nli t0, 100000 # big\nnop\n")
	require.Len(t, program.Listing, 3)

	assert.Equal(t, "li t0, 100000", program.Listing[0].Source)
	assert.Equal(t, "li t0, 100000", program.Listing[1].Source)
	assert.Equal(t, uint32(0), program.Listing[0].Address)
	assert.Equal(t, uint32(4), program.Listing[1].Address)
	assert.Equal(t, uint32(8), program.Listing[2].Address)
	assert.Equal(t, 1, program.AddressToLine[4])
}

func TestStaleLabelAfterExpansion(t *testing.T) {
	source := `.text
la x1, target
target: addi x2, x0, 1
j target`

	program := assembler.Assemble(source)

	// labels keep their first-pass address even though la emitted two words
	assert.Equal(t, uint32(4), program.Labels["target"])
	assert.Equal(t, uint32(8), program.Symbols.Expanded["target"])

	expected := []uint32{
		0x000000b7, // lui x1, 0
		0x00408093, // addi x1, x1, 4
		0x00100113,
		0xff9ff06f, // jal x0, -8 from 0xc
	}
	expectedDiagnostics := []assembler.Diagnostic{
		{
			Range:    assembler.TextRange{Start: assembler.TextPosition{Line: 2, Char: 0}, End: assembler.TextPosition{Line: 2, Char: 6}},
			Message:  "Label \"target\" resolves to 0x00000004 but is emitted at 0x00000008 after pseudo-instruction expansion",
			Severity: assembler.Warning,
		},
	}
	validateResult(t, program, expected, nil, expectedDiagnostics)
}

func TestResolveExpandedAddresses(t *testing.T) {
	source := `.text
la x1, target
target: addi x2, x0, 1
j target`

	config := assembler.DefaultConfig()
	config.ResolveExpandedAddresses = true
	program := assembler.AssembleWithConfig(source, config)

	expected := []uint32{
		0x000000b7,
		0x00808093, // addi x1, x1, 8
		0x00100113,
		0xffdff06f, // jal x0, -4
	}
	validateResult(t, program, expected, nil, nil)
}

func TestUnsupportedInstructionSkipsLine(t *testing.T) {
	source := `.text
foo x1, x2, x3
addi x1, x0, 1`

	program := assembler.Assemble(source)
	require.Len(t, program.LineErrors, 1)
	assert.True(t, assembler.EncodingErrors.IsUnsupportedInstructionError(program.LineErrors[0].Err))
	assert.Equal(t, uint32(0), program.LineErrors[0].PC)
	assert.False(t, program.Succeeded())

	// the failing line contributes no word but still advances the PC
	require.Len(t, program.Listing, 1)
	assert.Equal(t, uint32(4), program.Listing[0].Address)
	assert.Equal(t, []uint32{0x00100093}, program.ProgramText)

	require.Len(t, program.Diagnostics, 1)
	assert.Equal(t, "unsupported instruction: foo", program.Diagnostics[0].Message)
	assert.Equal(t, assembler.Error, program.Diagnostics[0].Severity)
}

func TestUndefinedLabelDiagnosticRange(t *testing.T) {
	source := `.text
loop: beq x1, x2, nowhere`

	program := assembler.Assemble(source)
	expectedDiagnostics := []assembler.Diagnostic{
		{
			Range:    assembler.TextRange{Start: assembler.TextPosition{Line: 1, Char: 18}, End: assembler.TextPosition{Line: 1, Char: 25}},
			Message:  "label not found: nowhere",
			Severity: assembler.Error,
		},
	}
	validateResult(t, program, []uint32{}, nil, expectedDiagnostics)
}

func TestRedefinedLabel(t *testing.T) {
	source := `.text
dup: nop
dup: nop
j dup`

	program := assembler.Assemble(source)
	assert.Equal(t, uint32(4), program.Labels["dup"])

	expectedDiagnostics := []assembler.Diagnostic{
		{
			Range:    assembler.TextRange{Start: assembler.TextPosition{Line: 2, Char: 0}, End: assembler.TextPosition{Line: 2, Char: 3}},
			Message:  "Label \"dup\" is defined more than once, the last definition wins",
			Severity: assembler.Warning,
		},
	}
	validateResult(t, program, []uint32{0x00000013, 0x00000013, 0xffdff06f}, nil, expectedDiagnostics)
}

func TestUnsupportedDataDirective(t *testing.T) {
	source := `.data
.ascii "hi"
.word 1`

	program := assembler.Assemble(source)
	expectedDiagnostics := []assembler.Diagnostic{
		{
			Range:    assembler.TextRange{Start: assembler.TextPosition{Line: 1, Char: 0}, End: assembler.TextPosition{Line: 1, Char: 6}},
			Message:  "Unsupported data directive: \".ascii\"",
			Severity: assembler.Error,
		},
	}
	validateResult(t, program, []uint32{}, []assembler.DataWord{{Address: 0x10000000, Value: 1}}, expectedDiagnostics)
}

func TestGloblAndComments(t *testing.T) {
	source := `
# a comment line
.globl main
.text
main:
	addi a0, zero, 7 # seven
	ecall
`

	program := assembler.Assemble(source)
	validateResult(t, program, []uint32{0x00700513, 0x00000073}, nil, nil)
	assert.Equal(t, uint32(0), program.Labels["main"])
	assert.Equal(t, 4, program.LabelToLineNumber["main"])
}

func TestCustomBases(t *testing.T) {
	config := assembler.AssemblerConfig{TextBase: 0x400000, DataBase: 0x10010000}
	program := assembler.AssembleWithConfig(".data\nv: .word 3\n.text\nmain: nop\n", config)

	assert.Equal(t, uint32(0x10010000), program.Labels["v"])
	assert.Equal(t, uint32(0x400000), program.Labels["main"])
	require.Len(t, program.Listing, 2)
	assert.Equal(t, uint32(0x400000), program.Listing[1].Address)
}

func validateResult(t *testing.T, program *assembler.AssembledResult, expectedText []uint32, expectedData []assembler.DataWord, expectedDiagnostics []assembler.Diagnostic) {
	t.Helper()

	require.Len(t, program.Diagnostics, len(expectedDiagnostics), "diagnostics: %v", program.Diagnostics)
	for i, diagnostic := range program.Diagnostics {
		assert.Equal(t, expectedDiagnostics[i].Severity, diagnostic.Severity, "diagnostic %d severity", i)
		assert.Equal(t, expectedDiagnostics[i].Range, diagnostic.Range, "diagnostic %d range", i)
		assert.Equal(t, expectedDiagnostics[i].Message, diagnostic.Message, "diagnostic %d message", i)
	}

	require.Len(t, program.ProgramText, len(expectedText), "instructions")
	for i, instruction := range program.ProgramText {
		assert.Equal(t, expectedText[i], instruction, "expected instruction %d to be 0x%08x, got 0x%08x", i, expectedText[i], instruction)
	}

	words := program.Data.Words()
	require.Len(t, words, len(expectedData), "data words")
	for i, word := range words {
		assert.Equal(t, expectedData[i], word, "data word %d", i)
	}
}

func itoa(v int32) string {
	return fmt.Sprintf("%d", v)
}

package assembler

import (
	"errors"
	"fmt"
	"strings"
)

// Line-scoped encoding failures. A line that fails contributes no words.

type UnsupportedInstructionError struct {
	mnemonic string
}

func (e *UnsupportedInstructionError) Error() string {
	return "unsupported instruction: " + e.mnemonic
}

type InvalidOperandError struct {
	operand  string
	mnemonic string
	reason   string
}

func (e *InvalidOperandError) Error() string {
	if e.reason != "" {
		return fmt.Sprintf("invalid operands for %s: %s", e.mnemonic, e.reason)
	}
	return fmt.Sprintf("unknown register or invalid argument: %q in instruction %s", e.operand, e.mnemonic)
}

type UndefinedSymbolError struct {
	symbol string
	isJump bool // referenced as a branch/jump target rather than an address
}

func (e *UndefinedSymbolError) Error() string {
	if e.isJump {
		return "label not found: " + e.symbol
	}
	return "symbol not defined: " + e.symbol
}

// Symbol returns the name that failed to resolve.
func (e *UndefinedSymbolError) Symbol() string {
	return e.symbol
}

type MalformedOffsetOperandError struct {
	operand  string
	mnemonic string
}

func (e *MalformedOffsetOperandError) Error() string {
	return fmt.Sprintf("invalid offset(register) operand for %s: %q", e.mnemonic, e.operand)
}

type encodingErrors struct{}

var EncodingErrors encodingErrors

func (encodingErrors) UnsupportedInstruction(mnemonic string) *UnsupportedInstructionError {
	return &UnsupportedInstructionError{mnemonic: mnemonic}
}

func (encodingErrors) InvalidOperand(operand, mnemonic string) *InvalidOperandError {
	return &InvalidOperandError{operand: operand, mnemonic: mnemonic}
}

func (encodingErrors) OperandCount(mnemonic string, want, got int) *InvalidOperandError {
	return &InvalidOperandError{mnemonic: mnemonic, reason: fmt.Sprintf("expected %d operands, got %d", want, got)}
}

func (encodingErrors) LabelNotFound(label string) *UndefinedSymbolError {
	return &UndefinedSymbolError{symbol: label, isJump: true}
}

func (encodingErrors) SymbolNotDefined(symbol string) *UndefinedSymbolError {
	return &UndefinedSymbolError{symbol: symbol}
}

func (encodingErrors) MalformedOffsetOperand(operand, mnemonic string) *MalformedOffsetOperandError {
	return &MalformedOffsetOperandError{operand: operand, mnemonic: mnemonic}
}

func (encodingErrors) IsUnsupportedInstructionError(err error) bool {
	var target *UnsupportedInstructionError
	return errors.As(err, &target)
}

func (encodingErrors) IsInvalidOperandError(err error) bool {
	var target *InvalidOperandError
	return errors.As(err, &target)
}

func (encodingErrors) IsUndefinedSymbolError(err error) bool {
	var target *UndefinedSymbolError
	return errors.As(err, &target)
}

func (encodingErrors) IsMalformedOffsetOperandError(err error) bool {
	var target *MalformedOffsetOperandError
	return errors.As(err, &target)
}

// AdjustRange removes the leading and trailing whitespace from text and
// narrows the range to match.
func AdjustRange(r TextRange, text string) (TextRange, string) {
	for len(text) > 0 && (text[0] == ' ' || text[0] == '\t') {
		text = text[1:]
		r.Start.Char += 1
	}

	for len(text) > 0 && (text[len(text)-1] == ' ' || text[len(text)-1] == '\t') {
		text = text[:len(text)-1]
		r.End.Char -= 1
	}

	return r, text
}

// Errors
type assemblyError struct{}

var Errors assemblyError

// EncodingFailure turns a line error into a diagnostic. Undefined symbols
// are narrowed to the symbol itself when it can be found in the line.
func (assemblyError) EncodingFailure(err error, line string, r TextRange) Diagnostic {
	var undefined *UndefinedSymbolError
	if errors.As(err, &undefined) {
		from := r.Start.Char
		if from > len(line) {
			from = len(line)
		}
		if idx := strings.Index(line[from:], undefined.symbol); idx != -1 {
			r = TextRange{
				Start: TextPosition{Line: r.Start.Line, Char: from + idx},
				End:   TextPosition{Line: r.Start.Line, Char: from + idx + len(undefined.symbol)},
			}
		}
	}
	return Diagnostic{
		Range:    r,
		Message:  err.Error(),
		Source:   "Assembler",
		Severity: Error,
	}
}

func (assemblyError) UnsupportedDirective(directive string, r TextRange) Diagnostic {
	r, directive = AdjustRange(r, directive)
	return Diagnostic{
		Range:    r,
		Message:  "Unsupported data directive: \"" + directive + "\"",
		Source:   "Assembler",
		Severity: Error,
	}
}

// Warnings
type assemblyWarning struct{}

var Warnings assemblyWarning

func (assemblyWarning) InvalidDataValue(value string, r TextRange) Diagnostic {
	r, value = AdjustRange(r, value)
	return Diagnostic{
		Range:    r,
		Message:  "Invalid .word value \"" + value + "\", storing 0",
		Source:   "Assembler",
		Severity: Warning,
	}
}

func (assemblyWarning) LabelRedefined(label string, r TextRange) Diagnostic {
	r, label = AdjustRange(r, label)
	return Diagnostic{
		Range:    r,
		Message:  "Label \"" + label + "\" is defined more than once, the last definition wins",
		Source:   "Assembler",
		Severity: Warning,
	}
}

func (assemblyWarning) StaleLabelAddress(label string, assigned, expanded uint32, r TextRange) Diagnostic {
	r, label = AdjustRange(r, label)
	return Diagnostic{
		Range:    r,
		Message:  fmt.Sprintf("Label \"%s\" resolves to 0x%08x but is emitted at 0x%08x after pseudo-instruction expansion", label, assigned, expanded),
		Source:   "Assembler",
		Severity: Warning,
	}
}

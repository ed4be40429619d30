package assembler

import (
	"fmt"
	"strings"
)

func isOperandSeparator(c byte) bool {
	return c == ' ' || c == '\t' || c == ',' || c == '(' || c == ')'
}

// tokenAt returns the token of text covering offset and its index among the
// tokens of text. Parentheses separate tokens so 4(sp) is two operands.
func tokenAt(text string, offset int) (string, int, bool) {
	index := 0
	for i := 0; i < len(text); {
		if isOperandSeparator(text[i]) {
			i++
			continue
		}
		start := i
		for i < len(text) && !isOperandSeparator(text[i]) {
			i++
		}
		if offset >= start && offset < i {
			return text[start:i], index, true
		}
		index++
	}
	return "", 0, false
}

// EvaluateHover returns markdown describing what is under position, and
// false when there is nothing to describe.
func (a *AssembledResult) EvaluateHover(position TextPosition) (string, bool) {
	if position.Line < 0 || position.Line >= len(a.parsedLines) {
		return "", false
	}
	line := a.parsedLines[position.Line]

	if line.label != "" && position.Char >= line.labelColumn && position.Char < line.labelColumn+len(line.label) {
		return a.hoverLabelDefinition(line.label), true
	}

	if line.kind != lineStatement || position.Char < line.column {
		return "", false
	}

	token, index, ok := tokenAt(line.text, position.Char-line.column)
	if !ok {
		return "", false
	}

	if index == 0 {
		if isWordDirective(line.text) {
			return hoverInfoFormats.wordDirective, true
		}
		info := getHoverInfoForInstruction(token)
		if info == "" {
			return "", false
		}
		return info + a.encodingSummary(position.Line), true
	}

	if reg, ok := LookupRegister(token); ok {
		return getHoverInfoForRegister(reg, token), true
	}
	if v, ok := parseInteger(token); ok {
		return fmt.Sprintf(hoverInfoFormats.integerLiteral, v, uint32(v)), true
	}
	if addr, ok := a.Labels[token]; ok {
		return fmt.Sprintf(hoverInfoFormats.labelReference, token, a.LabelTypes[token], addr), true
	}
	return "", false
}

func (a *AssembledResult) hoverLabelDefinition(label string) string {
	section := a.LabelTypes[label]
	if section == "" {
		section = "text"
	}
	info := fmt.Sprintf(hoverInfoFormats.labelDefinition, label, section, a.Labels[label])
	if a.Symbols != nil {
		expanded, ok := a.Symbols.Expanded[label]
		if ok && expanded != a.Symbols.Assigned[label] {
			info += fmt.Sprintf(hoverInfoFormats.labelExpanded, expanded)
		}
	}
	return info
}

// encodingSummary lists the words emitted for lineNum in address order.
func (a *AssembledResult) encodingSummary(lineNum int) string {
	var sb strings.Builder
	for _, entry := range a.Listing {
		if entry.Kind != ListingText || entry.Line != lineNum {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n\n`0x%08x` at `0x%08x`", entry.Word, entry.Address))
	}
	if sb.Len() == 0 {
		return ""
	}
	return "\n\n---\n\nEncoded as:" + sb.String()
}

func getHoverInfoForInstruction(mnemonic string) string {
	mnemonic = strings.TrimSpace(strings.ToLower(mnemonic))
	if info, ok := pseudoHoverInfo[mnemonic]; ok {
		if base, isReal := instructionHoverInfo[mnemonic]; isReal {
			// jal and jalr
			return base + "\n\n" + info
		}
		return info
	}
	if info, ok := instructionHoverInfo[mnemonic]; ok {
		def, _ := LookupInstruction(mnemonic)
		return info + fmt.Sprintf(hoverInfoFormats.format, def.Format)
	}
	return ""
}

func getHoverInfoForRegister(register uint32, name string) string {
	switch register {
	case 0:
		return hoverInfoFormats.zeroRegister
	case 1:
		return hoverInfoFormats.raRegister
	case 2:
		return hoverInfoFormats.spRegister
	case 3:
		return hoverInfoFormats.gpRegister
	case 4:
		return hoverInfoFormats.tpRegister
	}
	name = strings.TrimSpace(strings.ToLower(name))
	if !strings.HasPrefix(name, "x") {
		return fmt.Sprintf(hoverInfoFormats.namedGenericRegister, name, register)
	}
	return fmt.Sprintf(hoverInfoFormats.genericRegister, register, ABIName(register))
}

package assembler

import (
	"regexp"
	"strconv"
	"strings"
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineTextSection
	lineDataSection
	lineDirective // .globl and friends, no encoding
	lineLabelOnly
	lineStatement
)

type section int

const (
	sectionText section = iota
	sectionData
)

func (s section) String() string {
	if s == sectionData {
		return "data"
	}
	return "text"
}

var labelPattern = regexp.MustCompile(`^([A-Za-z_]\w*):\s*(.*)$`)

// sourceLine is one raw line with its comment and label split off.
type sourceLine struct {
	number      int
	kind        lineKind
	label       string
	labelColumn int
	text        string // what is left to encode, trimmed
	column      int    // position of text inside the raw line
}

func parseSourceLine(number int, raw string) sourceLine {
	l := sourceLine{number: number, labelColumn: -1}

	clean := raw
	if idx := strings.Index(clean, "#"); idx != -1 {
		// removing comment
		clean = clean[:idx]
	}
	trimmed := strings.TrimSpace(clean)

	switch trimmed {
	case "":
		l.kind = lineBlank
		return l
	case ".text":
		l.kind = lineTextSection
		return l
	case ".data":
		l.kind = lineDataSection
		return l
	}

	searchFrom := 0
	if m := labelPattern.FindStringSubmatch(trimmed); m != nil {
		l.label = m[1]
		l.labelColumn = strings.Index(raw, m[1])
		searchFrom = l.labelColumn + len(m[1]) + 1
		trimmed = strings.TrimSpace(m[2])
		if trimmed == "" {
			l.kind = lineLabelOnly
			return l
		}
	}

	l.text = trimmed
	l.column = searchFrom + strings.Index(raw[searchFrom:], trimmed)
	if strings.HasPrefix(trimmed, ".globl") {
		l.kind = lineDirective
	} else {
		l.kind = lineStatement
	}
	return l
}

func splitSourceLines(input string) []string {
	lines := strings.Split(input, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

// tokenize splits a delabeled line on whitespace and commas and lower-cases
// the mnemonic. Operands keep their case.
func tokenize(line string) (string, []string) {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

func isWordDirective(text string) bool {
	fields := strings.Fields(text)
	return len(fields) > 0 && strings.ToLower(fields[0]) == ".word"
}

// parseInteger accepts decimal, 0x, 0b and 0o literals with an optional sign.
func parseInteger(str string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(str), 0, 64)
	if err == nil {
		return v, true
	}
	// large unsigned hex literals such as 0xFFFFFFFF00000000 still wrap
	u, err := strconv.ParseUint(strings.TrimSpace(str), 0, 64)
	if err != nil {
		return 0, false
	}
	return int64(u), true
}

// as32 reinterprets v as a 32-bit two's-complement value.
func as32(v int64) int64 {
	return int64(int32(uint32(v)))
}

func fitsSigned12(v int64) bool {
	return v >= -2048 && v <= 2047
}

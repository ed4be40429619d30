package assembler

import (
	"strings"
)

// Assemble assembles input with the package configuration.
func Assemble(input string) *AssembledResult {
	return AssembleWithConfig(input, GetConfig())
}

// AssembleWithConfig builds the symbol table and then encodes the program
// line by line. Line failures are collected on the result and never stop the
// run.
func AssembleWithConfig(input string, config AssemblerConfig) (res *AssembledResult) {
	res = new(AssembledResult)
	res.config = config
	res.LabelTypes = make(map[string]string)
	res.AddressToLine = make(map[uint32]int)
	res.LabelToLineNumber = make(map[string]int)
	res.Data = NewDataImage()
	res.fileContents = splitSourceLines(input)

	// labels must all be known before the first line is encoded
	res.Symbols = BuildSymbolTable(res.fileContents, config)
	res.extractLabels()

	res.parseLines()

	res.reportSymbolWarnings()
	return
}

func (a *AssembledResult) extractLabels() {
	a.Labels = a.Symbols.Labels
	for name, def := range a.Symbols.Definitions {
		a.LabelTypes[name] = def.Section
		a.LabelToLineNumber[name] = def.Line
	}
}

func (a *AssembledResult) parseLines() {
	current := sectionText
	pc := a.config.TextBase
	dataPC := a.config.DataBase

	a.parsedLines = make([]sourceLine, len(a.fileContents))
	for i, raw := range a.fileContents {
		line := parseSourceLine(i, raw)
		a.parsedLines[i] = line

		switch line.kind {
		case lineTextSection:
			current = sectionText
			continue
		case lineDataSection:
			current = sectionData
			continue
		case lineStatement:
		default:
			// blank, label-only and .globl lines emit nothing
			continue
		}

		if current == sectionData {
			if a.emitData(line, dataPC) {
				dataPC += 4
			}
			continue
		}

		words, err := EncodeLine(line.text, a.Symbols, pc, false)
		if err != nil {
			a.recordFailure(line, pc, err)
			pc += 4
			continue
		}

		for _, word := range words {
			a.Listing = append(a.Listing, ListingEntry{
				Kind:    ListingText,
				Address: pc,
				Source:  line.text,
				Word:    word,
				Line:    i,
			})
			a.ProgramText = append(a.ProgramText, word)
			a.AddressToLine[pc] = i
			pc += 4
		}
	}
}

// emitData handles one data-section statement. It reports whether a word
// was written.
func (a *AssembledResult) emitData(line sourceLine, addr uint32) bool {
	fields := strings.Fields(line.text)
	directive := fields[0]
	lineRange := line.textRange()

	if !isWordDirective(line.text) {
		a.Diagnostics = append(a.Diagnostics, Errors.UnsupportedDirective(directive, TextRange{
			Start: lineRange.Start,
			End:   TextPosition{Line: line.number, Char: line.column + len(directive)},
		}))
		return false
	}

	// only the first value of a .word list is stored
	valueText := strings.TrimSpace(line.text[len(directive):])
	if idx := strings.Index(valueText, ","); idx != -1 {
		valueText = strings.TrimSpace(valueText[:idx])
	}

	value := uint32(0)
	v, ok := parseInteger(valueText)
	if ok {
		value = uint32(v)
	} else {
		a.Diagnostics = append(a.Diagnostics, Warnings.InvalidDataValue(valueText, lineRange))
	}

	a.Data.WriteWord(addr, value)
	a.Listing = append(a.Listing, ListingEntry{
		Kind:    ListingData,
		Address: addr,
		Source:  line.text,
		Word:    value,
		Line:    line.number,
	})
	return true
}

func (a *AssembledResult) recordFailure(line sourceLine, pc uint32, err error) {
	a.LineErrors = append(a.LineErrors, LineError{
		Line:   line.number,
		PC:     pc,
		Source: line.text,
		Err:    err,
	})
	a.Diagnostics = append(a.Diagnostics, Errors.EncodingFailure(err, a.fileContents[line.number], line.textRange()))
}

func (a *AssembledResult) reportSymbolWarnings() {
	for _, def := range a.Symbols.Redefined {
		a.Diagnostics = append(a.Diagnostics, Warnings.LabelRedefined(def.Name, labelRange(def)))
	}

	if a.config.ResolveExpandedAddresses {
		return
	}
	for _, name := range a.Symbols.StaleLabels() {
		def := a.Symbols.Definitions[name]
		a.Diagnostics = append(a.Diagnostics, Warnings.StaleLabelAddress(name, a.Symbols.Assigned[name], a.Symbols.Expanded[name], labelRange(def)))
	}
}

func (l sourceLine) textRange() TextRange {
	return TextRange{
		Start: TextPosition{Line: l.number, Char: l.column},
		End:   TextPosition{Line: l.number, Char: l.column + len(l.text)},
	}
}

func labelRange(def LabelDefinition) TextRange {
	return TextRange{
		Start: TextPosition{Line: def.Line, Char: def.Column},
		End:   TextPosition{Line: def.Line, Char: def.Column + len(def.Name)},
	}
}

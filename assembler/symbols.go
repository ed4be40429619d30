package assembler

import "sort"

// Symbols resolves label names to absolute addresses.
type Symbols interface {
	Lookup(name string) (uint32, bool)
}

// SymbolMap is the simplest Symbols, mostly useful when encoding single lines.
type SymbolMap map[string]uint32

func (m SymbolMap) Lookup(name string) (uint32, bool) {
	addr, ok := m[name]
	return addr, ok
}

type LabelDefinition struct {
	Name    string
	Line    int
	Column  int
	Section string // "text" or "data"
}

// SymbolTable is the result of the two scans over the source.
//
// Assigned holds the addresses of the first pass, which counts every
// instruction-bearing line as 4 bytes. Expanded holds the addresses of the
// second pass, which sizes la, li, call and tail by what they really emit.
// Labels is the table handed to the encoder: Assigned, unless the config
// asks for the expanded addresses.
type SymbolTable struct {
	Labels      map[string]uint32
	Assigned    map[string]uint32
	Expanded    map[string]uint32
	Definitions map[string]LabelDefinition
	Redefined   []LabelDefinition
}

func (s *SymbolTable) Lookup(name string) (uint32, bool) {
	addr, ok := s.Labels[name]
	return addr, ok
}

// StaleLabels lists, sorted, the labels whose first-pass address differs
// from the address they are emitted at.
func (s *SymbolTable) StaleLabels() []string {
	stale := []string{}
	for name, addr := range s.Assigned {
		if expanded, ok := s.Expanded[name]; ok && expanded != addr {
			stale = append(stale, name)
		}
	}
	sort.Strings(stale)
	return stale
}

// BuildSymbolTable scans lines twice and assigns every label an address in
// the code space or the data space.
func BuildSymbolTable(lines []string, config AssemblerConfig) *SymbolTable {
	table := &SymbolTable{
		Assigned:    make(map[string]uint32),
		Expanded:    make(map[string]uint32),
		Definitions: make(map[string]LabelDefinition),
	}

	parsed := make([]sourceLine, len(lines))
	for i, raw := range lines {
		parsed[i] = parseSourceLine(i, raw)
	}

	table.assignAddresses(parsed, config)
	table.expandAddresses(parsed, config)

	if config.ResolveExpandedAddresses {
		table.Labels = table.Expanded
	} else {
		table.Labels = table.Assigned
	}
	return table
}

// first pass, every instruction counts as 4 bytes
func (s *SymbolTable) assignAddresses(lines []sourceLine, config AssemblerConfig) {
	current := sectionText
	textPC := config.TextBase
	dataPC := config.DataBase

	for _, line := range lines {
		switch line.kind {
		case lineBlank:
			continue
		case lineTextSection:
			current = sectionText
			continue
		case lineDataSection:
			current = sectionData
			continue
		}

		if line.label != "" {
			def := LabelDefinition{Name: line.label, Line: line.number, Column: line.labelColumn, Section: current.String()}
			if _, ok := s.Definitions[line.label]; ok {
				s.Redefined = append(s.Redefined, def)
			}
			s.Definitions[line.label] = def
			if current == sectionText {
				s.Assigned[line.label] = textPC
			} else {
				s.Assigned[line.label] = dataPC
			}
		}

		if line.kind != lineStatement {
			continue
		}
		if current == sectionText {
			textPC += 4
		} else if isWordDirective(line.text) {
			dataPC += 4
		}
	}
}

// second pass, sized by pseudo-instruction expansion
func (s *SymbolTable) expandAddresses(lines []sourceLine, config AssemblerConfig) {
	current := sectionText
	textPC := config.TextBase
	dataPC := config.DataBase

	for _, line := range lines {
		switch line.kind {
		case lineBlank:
			continue
		case lineTextSection:
			current = sectionText
			continue
		case lineDataSection:
			current = sectionData
			continue
		}

		if line.label != "" {
			if current == sectionText {
				s.Expanded[line.label] = textPC
			} else {
				s.Expanded[line.label] = dataPC
			}
		}

		if line.kind != lineStatement {
			continue
		}
		if current == sectionText {
			mnemonic, operands := tokenize(line.text)
			textPC += expandedSize(mnemonic, operands)
		} else if isWordDirective(line.text) {
			dataPC += 4
		}
	}
}

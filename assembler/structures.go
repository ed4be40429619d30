package assembler

type ListingKind int

const (
	ListingText ListingKind = iota
	ListingData
)

// ListingEntry is one line of the binary/hex listings. A pseudo-instruction
// emitting two words yields two entries sharing Source and Line.
type ListingEntry struct {
	Kind    ListingKind
	Address uint32
	Source  string // source text after label and comment removal
	Word    uint32
	Line    int
}

// LineError is a line that failed to encode. It contributed no words.
type LineError struct {
	Line   int
	PC     uint32
	Source string
	Err    error
}

type AssembledResult struct {
	Labels            map[string]uint32 // label name to address
	LabelTypes        map[string]string // label name to section, "text" or "data"
	LabelToLineNumber map[string]int    // label name to line number
	AddressToLine     map[uint32]int    // code address to line number
	Symbols           *SymbolTable
	Listing           []ListingEntry
	ProgramText       []uint32
	Data              *DataImage
	LineErrors        []LineError
	Diagnostics       []Diagnostic
	FileName          string // for reflection
	fileContents      []string
	parsedLines       []sourceLine
	config            AssemblerConfig
}

// Succeeded reports whether every line encoded.
func (a *AssembledResult) Succeeded() bool {
	return len(a.LineErrors) == 0 && !a.HasErrors()
}

// HasErrors reports whether any diagnostic is an error.
func (a *AssembledResult) HasErrors() bool {
	for _, d := range a.Diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

type TextPosition struct {
	Line int `json:"line"`
	Char int `json:"character"`
}

type TextRange struct {
	Start TextPosition `json:"start"`
	End   TextPosition `json:"end"`
}

type CodeDescription struct {
	URL string `json:"href"`
}

type DiagnosticSeverity int

const (
	Error       DiagnosticSeverity = 1
	Warning     DiagnosticSeverity = 2
	Information DiagnosticSeverity = 3
	Hint        DiagnosticSeverity = 4
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Information:
		return "info"
	case Hint:
		return "hint"
	}
	return "unknown"
}

type Diagnostic struct {
	Range           TextRange          `json:"range"`
	Message         string             `json:"message"`
	Source          string             `json:"source,omitempty"`
	CodeDescription *CodeDescription   `json:"codeDescription,omitempty"`
	Severity        DiagnosticSeverity `json:"severity,omitempty"`
}

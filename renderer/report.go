package renderer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.gatech.edu/ECEInnovation/RV32I-Assembler/assembler"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// ReportRenderer lists what went wrong: one line per failed source line,
// then the remaining diagnostics with their file position.
type ReportRenderer struct {
	colored bool
}

func NewReportRenderer(colored bool) Renderer {
	return &ReportRenderer{colored: colored}
}

// IsTerminal reports whether w is a terminal, so reports can be colored.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *ReportRenderer) Render(result *assembler.AssembledResult, output io.Writer) error {
	var report strings.Builder

	failed := make(map[int]bool, len(result.LineErrors))
	for _, lineErr := range result.LineErrors {
		failed[lineErr.Line] = true
		report.WriteString(r.paint(colorRed, fmt.Sprintf("error at PC=0x%x: %s", lineErr.PC, lineErr.Err)))
		report.WriteString("\n")
	}

	fileName := result.FileName
	if fileName == "" {
		fileName = "<input>"
	}
	for _, d := range result.Diagnostics {
		// already reported above
		if d.Severity == assembler.Error && failed[d.Range.Start.Line] {
			continue
		}
		color := colorCyan
		switch d.Severity {
		case assembler.Error:
			color = colorRed
		case assembler.Warning:
			color = colorYellow
		}
		report.WriteString(fmt.Sprintf("%s:%d:%d: %s %s\n", fileName, d.Range.Start.Line+1, d.Range.Start.Char+1,
			r.paint(color, d.Severity.String()+":"), d.Message))
	}

	if _, err := io.WriteString(output, report.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (r *ReportRenderer) paint(color, text string) string {
	if !r.colored {
		return text
	}
	return color + text + colorReset
}

func (r *ReportRenderer) Format() string {
	return "report"
}

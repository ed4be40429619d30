// Package renderer writes assembled programs out as listings, data dumps
// and error reports.
package renderer

import (
	"fmt"
	"io"

	"github.gatech.edu/ECEInnovation/RV32I-Assembler/assembler"
)

// Renderer defines the interface for writing an assembled program in one
// output format.
type Renderer interface {
	// Render writes result to output.
	Render(result *assembler.AssembledResult, output io.Writer) error

	// Format returns the name of the output format (e.g., "bin", "hex", "data").
	Format() string
}

// ByFormat returns the renderer registered under name.
func ByFormat(name string) (Renderer, error) {
	switch name {
	case "bin", "binary":
		return NewBinaryRenderer(), nil
	case "hex":
		return NewHexRenderer(), nil
	case "data":
		return NewDataRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "report":
		return NewReportRenderer(false), nil
	}
	return nil, fmt.Errorf("unknown output format %q", name)
}

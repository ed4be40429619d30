package renderer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.gatech.edu/ECEInnovation/RV32I-Assembler/assembler"
)

// DataRenderer dumps the data segment as a JSON object from decimal address
// to unsigned value.
type DataRenderer struct{}

func NewDataRenderer() Renderer {
	return &DataRenderer{}
}

func (r *DataRenderer) Render(result *assembler.AssembledResult, output io.Writer) error {
	b, err := result.Data.Indented()
	if err != nil {
		return fmt.Errorf("failed to encode data segment: %w", err)
	}
	if _, err := output.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("failed to write data segment: %w", err)
	}
	return nil
}

func (r *DataRenderer) Format() string {
	return "data"
}

// JSONRenderer renders the whole result for tools: listing, labels, data and
// diagnostics.
type JSONRenderer struct{}

func NewJSONRenderer() Renderer {
	return &JSONRenderer{}
}

type jsonEntry struct {
	Address uint32 `json:"address"`
	Source  string `json:"source"`
	Hex     string `json:"hex"`
	Line    int    `json:"line"`
	Data    bool   `json:"data,omitempty"`
}

type jsonLineError struct {
	Line    int    `json:"line"`
	PC      uint32 `json:"pc"`
	Message string `json:"message"`
}

type jsonResult struct {
	Listing     []jsonEntry            `json:"listing"`
	Labels      map[string]uint32      `json:"labels"`
	Data        *assembler.DataImage   `json:"data"`
	Errors      []jsonLineError        `json:"errors"`
	Diagnostics []assembler.Diagnostic `json:"diagnostics"`
}

// Encode builds the JSON form of result. The playground sends the same
// document over its websocket.
func Encode(result *assembler.AssembledResult) interface{} {
	out := jsonResult{
		Listing:     make([]jsonEntry, 0, len(result.Listing)),
		Labels:      result.Labels,
		Data:        result.Data,
		Errors:      make([]jsonLineError, 0, len(result.LineErrors)),
		Diagnostics: result.Diagnostics,
	}
	if out.Diagnostics == nil {
		out.Diagnostics = []assembler.Diagnostic{}
	}
	for _, entry := range result.Listing {
		out.Listing = append(out.Listing, jsonEntry{
			Address: entry.Address,
			Source:  entry.Source,
			Hex:     assembler.FormatHex(entry.Word),
			Line:    entry.Line,
			Data:    entry.Kind == assembler.ListingData,
		})
	}
	for _, lineErr := range result.LineErrors {
		out.Errors = append(out.Errors, jsonLineError{Line: lineErr.Line, PC: lineErr.PC, Message: lineErr.Err.Error()})
	}
	return out
}

func (r *JSONRenderer) Render(result *assembler.AssembledResult, output io.Writer) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(Encode(result)); err != nil {
		return fmt.Errorf("failed to write json result: %w", err)
	}
	return nil
}

func (r *JSONRenderer) Format() string {
	return "json"
}

package renderer

import (
	"bufio"
	"fmt"
	"io"

	"github.gatech.edu/ECEInnovation/RV32I-Assembler/assembler"
)

// ListingRenderer writes one line per emitted word, text and data alike.
type ListingRenderer struct {
	hex bool
}

// NewBinaryRenderer renders words as 32 binary digits and data as decimal.
func NewBinaryRenderer() Renderer {
	return &ListingRenderer{}
}

// NewHexRenderer renders both words and data as 8 hex digits.
func NewHexRenderer() Renderer {
	return &ListingRenderer{hex: true}
}

func (r *ListingRenderer) Render(result *assembler.AssembledResult, output io.Writer) error {
	w := bufio.NewWriter(output)
	for _, entry := range result.Listing {
		if _, err := io.WriteString(w, r.line(entry)+"\n"); err != nil {
			return fmt.Errorf("failed to write %s listing: %w", r.Format(), err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s listing: %w", r.Format(), err)
	}
	return nil
}

func (r *ListingRenderer) line(entry assembler.ListingEntry) string {
	if entry.Kind == assembler.ListingData {
		if r.hex {
			return fmt.Sprintf("DATA @0x%08x: %s", entry.Address, assembler.FormatHex(entry.Word))
		}
		return fmt.Sprintf("DATA @0x%08x: %d", entry.Address, entry.Word)
	}

	word := assembler.FormatBinary(entry.Word)
	if r.hex {
		word = assembler.FormatHex(entry.Word)
	}
	return fmt.Sprintf("PC=0x%04x | %s → %s", entry.Address, entry.Source, word)
}

func (r *ListingRenderer) Format() string {
	if r.hex {
		return "hex"
	}
	return "bin"
}

package assembler

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

type dataPage struct {
	Block       [1024]uint32
	StartAddr   uint32
	Initialized [1024]bool
}

// DataImage is the sparse data segment built from .word directives, kept in
// 4 KiB pages.
type DataImage struct {
	pages map[uint32]*dataPage
	count int
}

// DataWord is one initialized word of a DataImage.
type DataWord struct {
	Address uint32
	Value   uint32
}

func NewDataImage() *DataImage {
	return &DataImage{pages: map[uint32]*dataPage{}}
}

func (m *DataImage) getOrCreatePage(addr uint32) *dataPage {
	page, ok := m.pages[addr>>12]
	if !ok {
		page = &dataPage{StartAddr: addr & 0xFFFFF000}
		m.pages[addr>>12] = page
	}
	return page
}

// WriteWord stores value at the word containing addr.
func (m *DataImage) WriteWord(addr uint32, value uint32) {
	page := m.getOrCreatePage(addr)
	slot := (addr & 0xFFF) >> 2
	if !page.Initialized[slot] {
		m.count++
	}
	page.Block[slot] = value
	page.Initialized[slot] = true
}

func (m *DataImage) ReadWord(addr uint32) (uint32, bool) {
	page, ok := m.pages[addr>>12]
	if !ok {
		return 0, false
	}
	slot := (addr & 0xFFF) >> 2
	return page.Block[slot], page.Initialized[slot]
}

// Len is the number of initialized words.
func (m *DataImage) Len() int {
	return m.count
}

// Words returns the initialized words in address order.
func (m *DataImage) Words() []DataWord {
	words := make([]DataWord, 0, m.count)
	for _, page := range m.pages {
		for i, set := range page.Initialized {
			if set {
				words = append(words, DataWord{Address: page.StartAddr + uint32(i)<<2, Value: page.Block[i]})
			}
		}
	}
	sort.Slice(words, func(i, j int) bool { return words[i].Address < words[j].Address })
	return words
}

// MarshalJSON writes the image as an object from decimal address to
// unsigned value, ordered by address.
func (m *DataImage) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, w := range m.Words() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.FormatUint(uint64(w.Address), 10)))
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatUint(uint64(w.Value), 10))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Indented is the two-space indented form of MarshalJSON, as persisted in
// the data dump.
func (m *DataImage) Indented() ([]byte, error) {
	raw, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

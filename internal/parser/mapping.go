package parser

import (
	"io"

	"github.com/decca/chartist/internal/common"
)

// GlyphTable resolves a character to the ordinal of its tile in the charset.
//
// Entries keep their file order, repeats included. Lookups return the first
// occurrence, so a later duplicate occupies a tile index that no character
// resolves to.
type GlyphTable struct {
	order []rune
	index map[rune]int
}

// DefaultGlyphTable returns the identity table: printable ASCII 32..127 in
// order, so that a character resolves to its code minus 32.
func DefaultGlyphTable() *GlyphTable {
	return NewGlyphTable(nil)
}

// NewGlyphTable builds a table from chars in encounter order. When fewer
// than common.TableFloor entries are supplied, every printable ASCII
// character not already present is appended in ASCII order.
func NewGlyphTable(chars []rune) *GlyphTable {
	t := &GlyphTable{
		order: make([]rune, 0, max(len(chars), common.TableFloor)),
		index: make(map[rune]int, common.TableFloor),
	}
	for _, r := range chars {
		t.add(r)
	}
	if len(t.order) < common.TableFloor {
		for r := rune(common.FirstPrintable); r <= common.LastPrintable; r++ {
			if _, ok := t.index[r]; !ok {
				t.add(r)
			}
		}
	}
	return t
}

func (t *GlyphTable) add(r rune) {
	if _, ok := t.index[r]; !ok {
		t.index[r] = len(t.order)
	}
	t.order = append(t.order, r)
}

// ParseMapping reads a mapping table: every character of every line, in file
// order, names the next tile of the charset.
func ParseMapping(r io.Reader, enc Encoding) (*GlyphTable, error) {
	lines, err := ReadLines(r, enc)
	if err != nil {
		return nil, err
	}
	var chars []rune
	for _, line := range lines {
		chars = append(chars, []rune(line)...)
	}
	return NewGlyphTable(chars), nil
}

// Lookup returns the tile index of r, or false if r is not in the table.
func (t *GlyphTable) Lookup(r rune) (int, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.index[r]
	return i, ok
}

// Len returns the number of entries, repeats included.
func (t *GlyphTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Chars returns a copy of the table entries in tile order.
func (t *GlyphTable) Chars() []rune {
	if t == nil {
		return nil
	}
	out := make([]rune, len(t.order))
	copy(out, t.order)
	return out
}

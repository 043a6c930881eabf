package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/decca/chartist/internal/common"
)

// TableError reports a malformed line in a width table.
type TableError struct {
	Line   int    // 1-based line number
	Text   string // offending line
	Reason string
}

func (e *TableError) Error() string {
	return fmt.Sprintf("width table line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Unwrap lets callers match the error against common.ErrBadTable.
func (e *TableError) Unwrap() error {
	return common.ErrBadTable
}

// WidthTable resolves a character to its horizontal advance in pixels.
type WidthTable struct {
	widths   map[rune]int
	fallback int
}

// UniformWidthTable maps every printable ASCII character to tileW.
func UniformWidthTable(tileW int) *WidthTable {
	t := &WidthTable{
		widths:   make(map[rune]int, common.TableFloor),
		fallback: tileW,
	}
	t.fill()
	return t
}

// ParseWidths reads a width table and completes it for tileW with
// NewWidthTable.
func ParseWidths(r io.Reader, enc Encoding, tileW int) (*WidthTable, error) {
	entries, err := ParseWidthEntries(r, enc)
	if err != nil {
		return nil, err
	}
	return NewWidthTable(entries, tileW), nil
}

// ParseWidthEntries reads the entries of a width table made of
// "<glyph>\t<pixels>" lines. Each line is split on its first tab; the glyph
// must be a single character and the width a non-negative integer. Blank
// lines are ignored. The first entry for a character wins.
func ParseWidthEntries(r io.Reader, enc Encoding) (map[rune]int, error) {
	lines, err := ReadLines(r, enc)
	if err != nil {
		return nil, err
	}

	entries := make(map[rune]int, common.TableFloor)
	for i, line := range lines {
		if line == "" {
			continue
		}
		glyph, widthText, found := strings.Cut(line, "\t")
		if !found {
			return nil, &TableError{Line: i + 1, Text: line, Reason: "missing tab separator"}
		}
		if utf8.RuneCountInString(glyph) != 1 {
			return nil, &TableError{Line: i + 1, Text: line, Reason: "glyph must be a single character"}
		}
		width, err := strconv.Atoi(strings.TrimSpace(widthText))
		if err != nil {
			return nil, &TableError{Line: i + 1, Text: line, Reason: "width is not a number"}
		}
		if width < 0 {
			return nil, &TableError{Line: i + 1, Text: line, Reason: "width must be non-negative"}
		}
		r, _ := utf8.DecodeRuneInString(glyph)
		if _, dup := entries[r]; !dup {
			entries[r] = width
		}
	}
	return entries, nil
}

// NewWidthTable builds a table from entries. When fewer than
// common.TableFloor entries are given, missing printable ASCII characters
// get tileW. entries is not retained.
func NewWidthTable(entries map[rune]int, tileW int) *WidthTable {
	t := &WidthTable{
		widths:   make(map[rune]int, max(len(entries), common.TableFloor)),
		fallback: tileW,
	}
	for r, w := range entries {
		t.widths[r] = w
	}
	if len(t.widths) < common.TableFloor {
		t.fill()
	}
	return t
}

// fill gives every printable ASCII character without an entry the fallback width.
func (t *WidthTable) fill() {
	for r := rune(common.FirstPrintable); r <= common.LastPrintable; r++ {
		if _, ok := t.widths[r]; !ok {
			t.widths[r] = t.fallback
		}
	}
}

// Lookup returns the width recorded for r, or false if r has no entry.
func (t *WidthTable) Lookup(r rune) (int, bool) {
	if t == nil {
		return 0, false
	}
	w, ok := t.widths[r]
	return w, ok
}

// Width returns the advance of r, falling back to the tile width for
// characters without an entry.
func (t *WidthTable) Width(r rune) int {
	if w, ok := t.Lookup(r); ok {
		return w
	}
	if t == nil {
		return 0
	}
	return t.fallback
}

// Len returns the number of characters with an entry.
func (t *WidthTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.widths)
}

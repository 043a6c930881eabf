package chartist

import (
	"io"

	"github.com/decca/chartist/internal/parser"
)

// Encoding selects how text, mapping and width files are decoded.
type Encoding = parser.Encoding

// Supported encodings
const (
	EncodingUTF8   = parser.EncodingUTF8
	EncodingLatin1 = parser.EncodingLatin1
	EncodingCP437  = parser.EncodingCP437
)

// ParseEncoding resolves an encoding name ("utf8", "latin1", "cp437").
func ParseEncoding(name string) (Encoding, error) {
	return parser.ParseEncoding(name)
}

// ReadLines reads text as lines with their terminators stripped.
func ReadLines(r io.Reader, enc Encoding) ([]string, error) {
	return parser.ReadLines(r, enc)
}

// ParseMapping reads a mapping table: the characters of the file, in order,
// name the charset tiles from index 0. When fewer than 96 characters are
// given, missing printable ASCII characters are appended in ASCII order.
func ParseMapping(r io.Reader, enc Encoding) (*GlyphTable, error) {
	return parser.ParseMapping(r, enc)
}

// NewGlyphTable builds a mapping table from chars, auto-filled like
// ParseMapping.
func NewGlyphTable(chars []rune) *GlyphTable {
	return parser.NewGlyphTable(chars)
}

// ParseWidths reads a width table of "<glyph>\t<pixels>" lines for
// WithWidths. A malformed line returns an error matching ErrBadTable.
func ParseWidths(r io.Reader, enc Encoding) (map[rune]int, error) {
	return parser.ParseWidthEntries(r, enc)
}

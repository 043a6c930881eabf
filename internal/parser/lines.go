// Package parser reads the line-oriented inputs of a render: the text to
// draw, glyph mapping tables and glyph width tables.
package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Encoding selects how the bytes of a text or table file become characters.
type Encoding int

const (
	// EncodingUTF8 reads files as UTF-8 (the default)
	EncodingUTF8 Encoding = iota
	// EncodingLatin1 reads files as ISO-8859-1
	EncodingLatin1
	// EncodingCP437 reads files as IBM code page 437 (DOS)
	EncodingCP437
)

// String returns the canonical name of the encoding.
func (e Encoding) String() string {
	switch e {
	case EncodingLatin1:
		return "latin1"
	case EncodingCP437:
		return "cp437"
	default:
		return "utf8"
	}
}

// ParseEncoding maps a user supplied encoding name to an Encoding.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf8", "utf-8":
		return EncodingUTF8, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1, nil
	case "cp437", "ibm437", "dos":
		return EncodingCP437, nil
	}
	return EncodingUTF8, fmt.Errorf("unsupported encoding %q (use utf8, latin1 or cp437)", name)
}

// decoder wraps r so that it yields UTF-8 regardless of the file encoding.
func (e Encoding) decoder(r io.Reader) io.Reader {
	switch e {
	case EncodingLatin1:
		return charmap.ISO8859_1.NewDecoder().Reader(r)
	case EncodingCP437:
		return charmap.CodePage437.NewDecoder().Reader(r)
	default:
		return r
	}
}

// ReadLines reads r as an ordered sequence of lines with line terminators
// stripped. A UTF-8 byte order mark on the first line is dropped.
func ReadLines(r io.Reader, enc Encoding) ([]string, error) {
	scanner, buf := createPooledScanner(enc.decoder(r))
	defer releaseScannerBuffer(buf)

	const utf8BOM = "\uFEFF"
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, utf8BOM)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading lines: %w", err)
	}
	return lines, nil
}

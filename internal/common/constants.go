// Package common provides shared constants and errors for internal packages.
// These values must match the public API in the chartist package.
package common

import "errors"

// Printable ASCII range covered by the default glyph and width tables.
const (
	// FirstPrintable is the first printable ASCII code (space)
	FirstPrintable = 32
	// LastPrintable is the last code of the legacy charset range (DEL)
	LastPrintable = 127
	// TableFloor is the number of entries a table must reach before
	// auto-fill stops adding printable ASCII characters.
	TableFloor = LastPrintable - FirstPrintable + 1
)

// Common errors (must match public API in chartist package)
var (
	// ErrNilCharset is returned when no charset is supplied
	ErrNilCharset = errors.New("charset cannot be nil")
	// ErrUnknownGlyph is returned when a character is absent from the glyph table
	ErrUnknownGlyph = errors.New("unknown glyph")
	// ErrRowOverflow classifies tiles whose address lies below the charset
	ErrRowOverflow = errors.New("tile row outside charset")
	// ErrBadTable is returned for malformed mapping or width tables
	ErrBadTable = errors.New("bad table")
	// ErrBadSetting is returned for out-of-range sizes, spacings and scales
	ErrBadSetting = errors.New("bad setting")
	// ErrEmptyText is returned when there is nothing to measure a canvas from
	ErrEmptyText = errors.New("empty text")
)

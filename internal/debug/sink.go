package debug

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Sink is the interface for debug output destinations.
type Sink interface {
	Write(event Event) error
	Flush() error
	Close() error
}

// JSONSink writes events in JSON Lines format.
type JSONSink struct {
	w       *bufio.Writer
	encoder *json.Encoder
}

// NewJSONSink creates a new JSON Lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	return &JSONSink{
		w:       bw,
		encoder: json.NewEncoder(bw),
	}
}

// Write encodes and writes an event as a JSON line.
func (s *JSONSink) Write(event Event) error {
	return s.encoder.Encode(event)
}

// Flush writes any buffered data to the underlying writer.
func (s *JSONSink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *JSONSink) Close() error {
	return s.Flush()
}

// PrettySink writes events in human-readable format.
type PrettySink struct {
	w *bufio.Writer
}

// NewPrettySink creates a new pretty-format sink writing to w.
func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{
		w: bufio.NewWriter(w),
	}
}

// Write formats and writes an event in human-readable format.
func (s *PrettySink) Write(event Event) error {
	// Format: [timestamp] [phase/event]
	fmt.Fprintf(s.w, "[%s] [%s/%s] session=%s\n", event.Timestamp, event.Phase, event.Event, event.SessionID)

	// Pretty print data based on type
	switch d := event.Data.(type) {
	case CharsetData:
		s.writeCharset(d)
	case TablesData:
		s.writeTables(d)
	case CanvasData:
		s.writeCanvas(d)
	case RenderStartData:
		s.writeRenderStart(d)
	case RenderEndData:
		s.writeRenderEnd(d)
	case GlyphData:
		s.writeGlyph(d)
	case WarningData:
		s.writeWarning(d)
	case SaveData:
		s.writeSave(d)
	case ErrorData:
		fmt.Fprintf(s.w, "  %s: %s\n", d.Type, d.Message)
	case SessionStartData:
		s.writeSessionStart(d)
	case SessionEndData:
		s.writeSessionEnd(d)
	default:
		fmt.Fprintf(s.w, "  data: %+v\n", d)
	}

	return nil
}

func (s *PrettySink) writeCharset(d CharsetData) {
	if d.Name != "" {
		fmt.Fprintf(s.w, "  name: %s\n", d.Name)
	}
	fmt.Fprintf(s.w, "  format: %s, size: %d x %d\n", d.Format, d.Width, d.Height)
	if d.Indexed {
		fmt.Fprintf(s.w, "  indexed: true, palette_size: %d\n", d.PaletteSize)
	}
}

func (s *PrettySink) writeTables(d TablesData) {
	fmt.Fprintf(s.w, "  tile: %d x %d%s\n", d.TileWidth, d.TileHeight, autoStr(d.TileSizeAuto))
	fmt.Fprintf(s.w, "  glyph_entries: %d (%s), width_entries: %d (%s)\n",
		d.GlyphEntries, sourceStr(d.ExternalGlyph), d.WidthEntries, sourceStr(d.ExternalWidth))
}

func (s *PrettySink) writeCanvas(d CanvasData) {
	fmt.Fprintf(s.w, "  size: %d x %d%s\n", d.Width, d.Height, autoStr(d.SizeAuto))
	fmt.Fprintf(s.w, "  background: %s%s, strategy: %s\n", d.Background, autoStr(d.BackAuto), d.Strategy)
	if d.PaletteIndex >= 0 {
		fmt.Fprintf(s.w, "  palette_index: %d\n", d.PaletteIndex)
	}
}

func (s *PrettySink) writeRenderStart(d RenderStartData) {
	fmt.Fprintf(s.w, "  lines: %d (longest: %d)\n", d.Lines, d.LongestLine)
	fmt.Fprintf(s.w, "  tile: %d x %d, line_advance: %d\n", d.TileWidth, d.TileHeight, d.LineAdvance)
	fmt.Fprintf(s.w, "  origin: %d,%d\n", d.OriginX, d.OriginY)
}

func (s *PrettySink) writeRenderEnd(d RenderEndData) {
	fmt.Fprintf(s.w, "  total_lines: %d, total_runes: %d, total_glyphs: %d\n",
		d.TotalLines, d.TotalRunes, d.TotalGlyphs)
	fmt.Fprintf(s.w, "  warnings: %d, elapsed_ms: %d\n", d.Warnings, d.ElapsedMs)
}

func (s *PrettySink) writeGlyph(d GlyphData) {
	fmt.Fprintf(s.w, "  line: %d, column: %d, rune: %s, tile: %d\n", d.Line, d.Column, runeStr(d.Rune), d.Tile)
	fmt.Fprintf(s.w, "  src: %d,%d-%d,%d (%s) → dst: %d,%d\n",
		d.SrcX0, d.SrcY0, d.SrcX1, d.SrcY1, d.Placement, d.DstX, d.DstY)
	fmt.Fprintf(s.w, "  advance: %d\n", d.Advance)
}

func (s *PrettySink) writeWarning(d WarningData) {
	fmt.Fprintf(s.w, "  kind: %s, line: %d, column: %d, rune: %s, tile: %d\n",
		d.Kind, d.Line, d.Column, runeStr(d.Rune), d.Tile)
	fmt.Fprintf(s.w, "  message: %s\n", d.Message)
}

func (s *PrettySink) writeSave(d SaveData) {
	fmt.Fprintf(s.w, "  path: %s, format: %s\n", d.Path, d.Format)
	if d.Fallback {
		fmt.Fprintf(s.w, "  fallback: source format extension appended\n")
	}
}

func (s *PrettySink) writeSessionStart(d SessionStartData) {
	fmt.Fprintf(s.w, "  chartist %s, charset: %s, text: %s\n", d.Version, d.Charset, d.Text)
	if d.Output != "" {
		fmt.Fprintf(s.w, "  output: %s\n", d.Output)
	} else {
		fmt.Fprintf(s.w, "  output: display\n")
	}
}

func (s *PrettySink) writeSessionEnd(d SessionEndData) {
	fmt.Fprintf(s.w, "  glyphs: %d, warnings: %d, elapsed: %dms\n", d.Glyphs, d.Warnings, d.ElapsedMs)
	if d.Failed {
		fmt.Fprintf(s.w, "  failed: %s\n", d.Failure)
	}
}

// Flush writes any buffered data to the underlying writer.
func (s *PrettySink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *PrettySink) Close() error {
	return s.Flush()
}

// runeStr formats a rune for display: 'X' (0x58) or NUL for 0.
func runeStr(r rune) string {
	if r == 0 {
		return "NUL"
	}
	if r >= 32 && r < 127 {
		return fmt.Sprintf("'%c' (0x%02X)", r, r)
	}
	return fmt.Sprintf("0x%02X", r)
}

func autoStr(auto bool) string {
	if auto {
		return " (auto)"
	}
	return ""
}

func sourceStr(external bool) string {
	if external {
		return "file"
	}
	return "default"
}

package debug

// SessionStartData names the inputs of a traced run.
type SessionStartData struct {
	Version string `json:"version"`
	Charset string `json:"charset"`
	Text    string `json:"text,omitempty"`
	Output  string `json:"output,omitempty"` // empty when the image is displayed
}

// SessionEndData summarises a traced run.
type SessionEndData struct {
	ElapsedMs int64  `json:"elapsed_ms"`
	Glyphs    int    `json:"glyphs"`
	Warnings  int    `json:"warnings"`
	Failed    bool   `json:"failed"`
	Failure   string `json:"failure,omitempty"`
}

// CharsetData describes a decoded charset spritesheet.
type CharsetData struct {
	Name        string `json:"name,omitempty"`
	Format      string `json:"format"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Indexed     bool   `json:"indexed"`
	PaletteSize int    `json:"palette_size,omitempty"`
}

// TablesData describes the resolved glyph and width tables.
type TablesData struct {
	TileWidth     int  `json:"tile_width"`
	TileHeight    int  `json:"tile_height"`
	TileSizeAuto  bool `json:"tile_size_auto"`
	GlyphEntries  int  `json:"glyph_entries"`
	WidthEntries  int  `json:"width_entries"`
	ExternalGlyph bool `json:"external_glyph"`
	ExternalWidth bool `json:"external_width"`
}

// CanvasData describes how the output canvas was allocated.
type CanvasData struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	SizeAuto     bool   `json:"size_auto"`
	Strategy     string `json:"strategy"` // "direct", "palette", "fallback"
	Background   string `json:"background"`
	BackAuto     bool   `json:"background_auto"`
	PaletteIndex int    `json:"palette_index"` // -1 unless Strategy is "palette"
}

// RenderStartData contains information about the start of a render operation.
type RenderStartData struct {
	Lines       int `json:"lines"`
	LongestLine int `json:"longest_line"`
	TileWidth   int `json:"tile_width"`
	TileHeight  int `json:"tile_height"`
	LineAdvance int `json:"line_advance"`
	OriginX     int `json:"origin_x"`
	OriginY     int `json:"origin_y"`
}

// GlyphData contains information about a placed glyph.
type GlyphData struct {
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Rune      rune   `json:"rune"`
	Tile      int    `json:"tile"`
	SrcX0     int    `json:"src_x0"`
	SrcY0     int    `json:"src_y0"`
	SrcX1     int    `json:"src_x1"`
	SrcY1     int    `json:"src_y1"`
	DstX      int    `json:"dst_x"`
	DstY      int    `json:"dst_y"`
	Advance   int    `json:"advance"`
	Placement string `json:"placement"`
}

// WarningData contains information about a non-fatal render problem.
type WarningData struct {
	Kind    string `json:"kind"` // "overflow", "unknown"
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Rune    rune   `json:"rune"`
	Tile    int    `json:"tile"`
	Message string `json:"message"`
}

// RenderEndData contains information about the end of a render operation.
type RenderEndData struct {
	TotalLines  int   `json:"total_lines"`
	TotalRunes  int   `json:"total_runes"`
	TotalGlyphs int   `json:"total_glyphs"`
	Warnings    int   `json:"warnings"`
	ElapsedMs   int64 `json:"elapsed_ms"`
}

// SaveData contains information about writing the output image.
type SaveData struct {
	Path     string `json:"path"`
	Format   string `json:"format"`
	Fallback bool   `json:"fallback"`
}

// ErrorData contains error information.
type ErrorData struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

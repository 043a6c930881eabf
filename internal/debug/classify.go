package debug

import "image"

// Placement names reported in GlyphData.Placement.
const (
	PlacementFirstRow = "row0"     // tile taken from the first charset row
	PlacementWrapped  = "wrapped"  // tile taken from a later charset row
	PlacementClamped  = "clamped"  // tile cut short by the charset edge
	PlacementOverflow = "overflow" // tile address outside the charset
)

// ClassifyPlacement describes where a source rectangle came from in the
// charset, given the nominal tile size.
func ClassifyPlacement(src image.Rectangle, tileW, tileH int) string {
	if src.Empty() {
		return PlacementOverflow
	}
	if src.Dx() < tileW || src.Dy() < tileH {
		return PlacementClamped
	}
	if src.Min.Y == 0 {
		return PlacementFirstRow
	}
	return PlacementWrapped
}

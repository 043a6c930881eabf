package renderer

import (
	"errors"
	"image"
	"testing"
)

func TestLocateFirstRow(t *testing.T) {
	const tileW, tileH, sheetW, sheetH = 8, 8, 128, 8
	for i := 0; i*tileW < sheetW; i++ {
		got, err := Locate(i, tileW, tileH, sheetW, sheetH)
		if err != nil {
			t.Fatalf("Locate(%d) error: %v", i, err)
		}
		want := image.Rect(i*tileW, 0, i*tileW+tileW, tileH)
		if got != want {
			t.Errorf("Locate(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestLocateWrappedRows(t *testing.T) {
	tests := []struct {
		name string
		tile int
		want image.Rectangle
	}{
		{"row 1 start", 16, image.Rect(0, 8, 8, 16)},
		{"row 1 middle", 20, image.Rect(32, 8, 40, 16)},
		{"row 2 start", 32, image.Rect(0, 16, 8, 24)},
		{"last tile", 63, image.Rect(120, 24, 128, 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Locate(tt.tile, 8, 8, 128, 32)
			if err != nil {
				t.Fatalf("Locate(%d) error: %v", tt.tile, err)
			}
			if got != tt.want {
				t.Errorf("Locate(%d) = %v, want %v", tt.tile, got, tt.want)
			}
		})
	}
}

func TestLocateRowOverflow(t *testing.T) {
	// 'H' in an identity table is tile 40: 320px into a 128px strip, row 2.
	got, err := Locate(40, 8, 8, 128, 8)
	if !errors.Is(err, ErrRowOverflow) {
		t.Fatalf("Locate(40) error = %v, want ErrRowOverflow", err)
	}
	if !got.Empty() {
		t.Errorf("Locate(40) = %v, want empty rectangle", got)
	}
	if got.Min != image.Pt(64, 16) {
		t.Errorf("Locate(40).Min = %v, want (64,16)", got.Min)
	}
}

func TestLocateClampsPartialTiles(t *testing.T) {
	// 100x12 sheet with 8x8 tiles: last column is 4px wide, second row 4px tall.
	tests := []struct {
		name string
		tile int
		want image.Rectangle
	}{
		{"partial width", 12, image.Rect(96, 0, 100, 8)},
		{"partial height", 13, image.Rect(4, 8, 12, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Locate(tt.tile, 8, 8, 100, 12)
			if err != nil {
				t.Fatalf("Locate(%d) error: %v", tt.tile, err)
			}
			if got != tt.want {
				t.Errorf("Locate(%d) = %v, want %v", tt.tile, got, tt.want)
			}
		})
	}
}

func TestLocateBadGeometry(t *testing.T) {
	tests := []struct {
		name                        string
		tile, tileW, tileH, sw, sh int
	}{
		{"zero tile width", 1, 0, 8, 128, 8},
		{"zero tile height", 1, 8, 0, 128, 8},
		{"zero sheet width", 1, 8, 8, 0, 8},
		{"negative sheet height", 1, 8, 8, 128, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Locate(tt.tile, tt.tileW, tt.tileH, tt.sw, tt.sh)
			if !errors.Is(err, ErrBadGeometry) {
				t.Errorf("error = %v, want ErrBadGeometry", err)
			}
		})
	}

	if _, err := Locate(-1, 8, 8, 128, 8); err == nil {
		t.Error("negative tile index should fail")
	}
}

package parser

import (
	"reflect"
	"strings"
	"testing"
)

func TestReadLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single without newline", "HI", []string{"HI"}},
		{"trailing newline", "HI\nOK\n", []string{"HI", "OK"}},
		{"crlf", "HI\r\nOK\r\n", []string{"HI", "OK"}},
		{"blank middle line", "A\n\nB", []string{"A", "", "B"}},
		{"bom", "\uFEFFHI\n", []string{"HI"}},
		{"keeps inner spaces", "  A B  \n", []string{"  A B  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLines(strings.NewReader(tt.input), EncodingUTF8)
			if err != nil {
				t.Fatalf("ReadLines failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadLines(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		in      string
		want    Encoding
		wantErr bool
	}{
		{"", EncodingUTF8, false},
		{"UTF-8", EncodingUTF8, false},
		{"latin1", EncodingLatin1, false},
		{"ISO-8859-1", EncodingLatin1, false},
		{"cp437", EncodingCP437, false},
		{"ebcdic", EncodingUTF8, true},
	}
	for _, tt := range tests {
		got, err := ParseEncoding(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEncoding(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEncoding(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestReadLinesCP437(t *testing.T) {
	got, err := ReadLines(strings.NewReader("\xc9\xcd\xbb\n"), EncodingCP437)
	if err != nil {
		t.Fatalf("ReadLines failed: %v", err)
	}
	if len(got) != 1 || got[0] != "╔═╗" {
		t.Errorf("ReadLines = %q, want [\"╔═╗\"]", got)
	}
}

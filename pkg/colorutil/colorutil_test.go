package colorutil

import (
	"image/color"
	"testing"
)

func TestHexRoundTrip(t *testing.T) {
	tests := []struct {
		in   color.RGBA
		want string
	}{
		{Red, "#ff0000"},
		{Blue, "#0000ff"},
		{color.RGBA{R: 0x12, G: 0xab, B: 0x7f, A: 255}, "#12ab7f"},
	}
	for _, tt := range tests {
		got := ToHex(tt.in)
		if got != tt.want {
			t.Errorf("ToHex(%v) = %q, want %q", tt.in, got, tt.want)
		}
		back, err := ParseHex(got)
		if err != nil {
			t.Fatalf("ParseHex(%q) error: %v", got, err)
		}
		if back != tt.in {
			t.Errorf("ParseHex(%q) = %v, want %v", got, back, tt.in)
		}
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, s := range []string{"", "#fff", "#gg0000", "12345678"} {
		if _, err := ParseHex(s); err == nil {
			t.Errorf("ParseHex(%q) error = nil, want error", s)
		}
	}
}

func TestGray(t *testing.T) {
	if got := Gray(White); got != 255 {
		t.Errorf("Gray(White) = %d, want 255", got)
	}
	if got := Gray(Black); got != 0 {
		t.Errorf("Gray(Black) = %d, want 0", got)
	}
	if got := Gray(Red); got != 87 {
		t.Errorf("Gray(Red) = %d, want 87", got)
	}
}

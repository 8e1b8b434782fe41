package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"region-zoom/internal/brush"
	"region-zoom/internal/zoom"
	"region-zoom/pkg/colorutil"
)

func TestDefaults(t *testing.T) {
	p := LoadFile(filepath.Join(t.TempDir(), "none.json"))
	if got := p.DefaultScale(); got != zoom.DefaultScale {
		t.Errorf("DefaultScale() = %v, want %v", got, zoom.DefaultScale)
	}
	if got := p.BrushSize(); got != brush.DefaultWidth {
		t.Errorf("BrushSize() = %d, want %d", got, brush.DefaultWidth)
	}
	if got := p.BrushColor(); got != colorutil.DefaultBrush {
		t.Errorf("BrushColor() = %v, want %v", got, colorutil.DefaultBrush)
	}
	if p.LastDirectory() != "" || p.LastImage() != "" {
		t.Error("expected empty paths")
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "preferences.json")
	p := LoadFile(path)
	p.SetDefaultScale(3.7)
	p.SetBrushSize(12)
	p.SetBrushColor(colorutil.Blue)
	p.SetLastDirectory("/tmp/images")
	p.SetLastImage("/tmp/images/board.png")
	if err := p.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	q := LoadFile(path)
	if got := q.DefaultScale(); got != 3.7 {
		t.Errorf("DefaultScale() = %v, want 3.7", got)
	}
	if got := q.BrushSize(); got != 12 {
		t.Errorf("BrushSize() = %d, want 12", got)
	}
	if got := q.BrushColor(); got != colorutil.Blue {
		t.Errorf("BrushColor() = %v, want blue", got)
	}
	if got := q.LastDirectory(); got != "/tmp/images" {
		t.Errorf("LastDirectory() = %q", got)
	}
	if got := q.LastImage(); got != "/tmp/images/board.png" {
		t.Errorf("LastImage() = %q", got)
	}
}

func TestClampsStoredValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	data := `{"defaultScale": 25, "brushSize": 0, "brushColor": "not a color"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	p := LoadFile(path)
	if got := p.DefaultScale(); got != zoom.MaxScale {
		t.Errorf("DefaultScale() = %v, want %v", got, zoom.MaxScale)
	}
	if got := p.BrushSize(); got != brush.MinWidth {
		t.Errorf("BrushSize() = %d, want %d", got, brush.MinWidth)
	}
	if got := p.BrushColor(); got != colorutil.DefaultBrush {
		t.Errorf("BrushColor() = %v, want default", got)
	}
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := LoadFile(path)
	if got := p.DefaultScale(); got != zoom.DefaultScale {
		t.Errorf("DefaultScale() = %v, want default", got)
	}
	if p.Path() != path {
		t.Errorf("Path() = %q, want %q", p.Path(), path)
	}
}

package image

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"region-zoom/pkg/colorutil"
	"region-zoom/pkg/geometry"
)

func TestSaveLoadLossless(t *testing.T) {
	src := NewFilled(16, 9, colorutil.White)
	if err := src.StrokeLine(geometry.PointInt{X: 2, Y: 4}, geometry.PointInt{X: 13, Y: 4}, colorutil.Red, 2); err != nil {
		t.Fatalf("StrokeLine: %v", err)
	}

	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out"+ext)
			if err := Save(src, path); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.Width() != 16 || got.Height() != 9 {
				t.Fatalf("size = %dx%d, want 16x9", got.Width(), got.Height())
			}
			for y := 0; y < 9; y++ {
				for x := 0; x < 16; x++ {
					if got.RGBAAt(x, y) != src.RGBAAt(x, y) {
						t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got.RGBAAt(x, y), src.RGBAAt(x, y))
					}
				}
			}
		})
	}
}

func TestSaveJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	if err := Save(NewFilled(8, 8, colorutil.Blue), path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Width() != 8 || got.Height() != 8 {
		t.Errorf("size = %dx%d, want 8x8", got.Width(), got.Height())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.png"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}

	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(junk)
	if !errors.Is(err, ErrDecodeFailed) {
		t.Errorf("Load(junk) error = %v, want ErrDecodeFailed", err)
	}
}

func TestSaveErrors(t *testing.T) {
	buf := NewFilled(2, 2, colorutil.White)

	err := Save(buf, filepath.Join(t.TempDir(), "out.xyz"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.xyz) error = %v, want ErrUnsupportedFormat", err)
	}

	err = Save(buf, filepath.Join(t.TempDir(), "no", "such", "dir", "out.png"))
	if !errors.Is(err, ErrWriteFailed) {
		t.Errorf("Save(bad dir) error = %v, want ErrWriteFailed", err)
	}
}

func TestSaveKeepsExistingFileOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keep.png")
	if err := Save(NewFilled(3, 3, colorutil.Red), path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Save(NewBuffer(0, 0), path); !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("Save(empty) error = %v, want ErrWriteFailed", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.RGBAAt(1, 1) != colorutil.Red {
		t.Errorf("existing file was modified")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.PNG":  FormatPNG,
		"a.jpeg": FormatJPEG,
		"a.jpg":  FormatJPEG,
		"a.bmp":  FormatBMP,
		"a.tif":  FormatTIFF,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %v, %v; want %v", path, got, err, want)
		}
	}
}

package zoom

import (
	"image/color"
	"path/filepath"
	"testing"

	"region-zoom/internal/coords"
	zimage "region-zoom/internal/image"
	"region-zoom/pkg/colorutil"
	"region-zoom/pkg/geometry"

	xdraw "golang.org/x/image/draw"
)

func isBrush(c color.RGBA) bool { return c.R > 200 && c.G < 100 && c.B < 100 }
func isWhite(c color.RGBA) bool { return c.R > 240 && c.G > 240 && c.B > 240 }

// newTestView opens a 4x view of the 50x30 region at (10,10) of a white
// 100x60 image, displayed centered in a 400x300 widget at native size.
// The zoomed image therefore starts at widget (100, 90).
func newTestView(t *testing.T) (*View, coords.Surface, *zimage.Buffer) {
	t.Helper()
	src := zimage.NewFilled(100, 60, colorutil.White)
	v, err := NewView(src, geometry.NewRectInt(10, 10, 50, 30), 4)
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	t.Cleanup(func() { v.Close() })
	zoomed := v.Renderer().Zoomed().Size()
	return v, v.Surface(geometry.NewSize(400, 300), zoomed), src
}

func at(x, y float64) geometry.Point2D { return geometry.NewPoint2D(100+x, 90+y) }

func drawTestStroke(t *testing.T, v *View, s coords.Surface) {
	t.Helper()
	v.SetBrushEnabled(true)
	v.Brush().SetWidth(8)
	if !v.PointerDown(s, at(20, 40)) {
		t.Fatal("PointerDown() = false")
	}
	changed, err := v.PointerMove(s, at(180, 40))
	if err != nil || !changed {
		t.Fatalf("PointerMove() = %v, %v", changed, err)
	}
	v.PointerUp()
}

func TestViewStrokeRoundTrip(t *testing.T) {
	v, s, src := newTestView(t)
	drawTestStroke(t, v, s)

	zoomed := v.Renderer().Zoomed()
	if got := zoomed.RGBAAt(100, 40); !isBrush(got) {
		t.Fatalf("zoomed (100,40) = %v, want brush", got)
	}

	// Rebuild the magnified view from the native-resolution buffer alone.
	fresh := v.Renderer().Cropped().Resample(zoomed.Width(), zoomed.Height(), xdraw.BiLinear)

	// Both endpoints and the middle survive within one cropped pixel (4
	// zoomed pixels).
	for _, x := range []int{22, 100, 182} {
		if got := fresh.RGBAAt(x, 42); !isBrush(got) {
			t.Errorf("fresh (%d,42) = %v, want brush", x, got)
		}
	}
	for _, x := range []int{10, 195} {
		if got := fresh.RGBAAt(x, 42); !isWhite(got) {
			t.Errorf("fresh (%d,42) = %v, want white beyond the stroke", x, got)
		}
	}

	// The source image is never edited.
	if got := src.RGBAAt(35, 20); got != colorutil.White {
		t.Errorf("source (35,20) = %v, want white", got)
	}
}

func TestViewEditsSurviveScaleChange(t *testing.T) {
	v, s, _ := newTestView(t)
	drawTestStroke(t, v, s)

	if got := v.SetScale(2); got != 2 {
		t.Fatalf("SetScale(2) = %v", got)
	}
	z := v.Renderer().Zoomed()
	if z.Width() != 100 || z.Height() != 60 {
		t.Fatalf("zoomed size = %dx%d, want 100x60", z.Width(), z.Height())
	}
	if got := z.RGBAAt(51, 21); !isBrush(got) {
		t.Errorf("zoomed (51,21) after rescale = %v, want brush", got)
	}
}

func TestViewScaleChangeEndsStroke(t *testing.T) {
	v, s, _ := newTestView(t)
	v.SetBrushEnabled(true)
	v.PointerDown(s, at(20, 40))
	if !v.ScaleLocked() {
		t.Fatal("ScaleLocked() = false during stroke")
	}

	v.SetScale(3)
	if v.ScaleLocked() {
		t.Error("ScaleLocked() = true after SetScale")
	}
	s = v.Surface(geometry.NewSize(400, 300), v.Renderer().Zoomed().Size())
	changed, err := v.PointerMove(s, geometry.NewPoint2D(200, 150))
	if err != nil || changed {
		t.Errorf("PointerMove() after scale change = %v, %v; want false, nil", changed, err)
	}
}

func TestViewPointerOffImage(t *testing.T) {
	v, s, _ := newTestView(t)
	v.SetBrushEnabled(true)

	if v.PointerDown(s, geometry.NewPoint2D(5, 5)) {
		t.Error("PointerDown() outside the image = true")
	}

	v.PointerDown(s, at(20, 40))
	changed, err := v.PointerMove(s, geometry.NewPoint2D(5, 5))
	if err != nil || changed {
		t.Errorf("PointerMove() outside = %v, %v; want false, nil", changed, err)
	}
	if !v.Brush().Drawing() {
		t.Error("stroke ended by an off-image sample")
	}
}

func TestViewBrushDisabled(t *testing.T) {
	v, s, _ := newTestView(t)
	if v.PointerDown(s, at(20, 40)) {
		t.Error("PointerDown() with brush disabled = true")
	}
	changed, _ := v.PointerMove(s, at(60, 40))
	if changed {
		t.Error("PointerMove() with brush disabled changed the buffers")
	}
}

func TestViewSave(t *testing.T) {
	v, s, _ := newTestView(t)
	drawTestStroke(t, v, s)
	dir := t.TempDir()

	native := filepath.Join(dir, "native.png")
	if err := v.Save(native, OutputCropped); err != nil {
		t.Fatalf("Save(cropped): %v", err)
	}
	got, err := zimage.Load(native)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Width() != 50 || got.Height() != 30 {
		t.Errorf("saved size = %dx%d, want 50x30", got.Width(), got.Height())
	}
	if c := got.RGBAAt(25, 10); !isBrush(c) {
		t.Errorf("saved (25,10) = %v, want brush", c)
	}

	magnified := filepath.Join(dir, "zoomed.bmp")
	if err := v.Save(magnified, OutputZoomed); err != nil {
		t.Fatalf("Save(zoomed): %v", err)
	}
	got, err = zimage.Load(magnified)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Width() != 200 || got.Height() != 120 {
		t.Errorf("saved zoomed size = %dx%d, want 200x120", got.Width(), got.Height())
	}
}

// Package image provides the mutable pixel buffers the application draws on,
// along with loading and saving them.
package image

import (
	"image"
	"image/color"

	"region-zoom/pkg/geometry"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
)

// Buffer is a fixed-size RGBA pixel grid that can be stroked in place.
// Pixels live in a gg.Pixmap, which stores straight alpha. RGBA exposes the
// same memory as an *image.RGBA for codecs and resamplers; image buffers
// are opaque, so the premultiplied and straight interpretations of the
// bytes agree. Translucent buffers such as overlays are read through NRGBA.
type Buffer struct {
	pm *gg.Pixmap
	dc *gg.Context
}

// NewBuffer creates a transparent buffer of the given size.
func NewBuffer(width, height int) *Buffer {
	width = max(width, 0)
	height = max(height, 0)
	return &Buffer{pm: gg.NewPixmap(width, height)}
}

// NewFilled creates a buffer filled with a single color.
func NewFilled(width, height int, c color.Color) *Buffer {
	b := NewBuffer(width, height)
	b.pm.Clear(gg.FromColor(c))
	return b
}

// Fill overwrites every pixel with c.
func (b *Buffer) Fill(c color.Color) {
	b.pm.Clear(gg.FromColor(c))
}

// FromImage copies img into a new buffer whose origin is (0,0).
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	b := NewBuffer(bounds.Dx(), bounds.Dy())
	xdraw.Copy(b.RGBA(), image.Point{}, img, bounds, xdraw.Src, nil)
	return b
}

// RGBA returns an *image.RGBA that shares memory with the buffer.
// Writes through it are visible to subsequent strokes and vice versa.
func (b *Buffer) RGBA() *image.RGBA {
	w, h := b.pm.Width(), b.pm.Height()
	return &image.RGBA{
		Pix:    b.pm.Data(),
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
}

// NRGBA returns an *image.NRGBA that shares memory with the buffer.
func (b *Buffer) NRGBA() *image.NRGBA {
	w, h := b.pm.Width(), b.pm.Height()
	return &image.NRGBA{
		Pix:    b.pm.Data(),
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	if b == nil {
		return 0
	}
	return b.pm.Width()
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	if b == nil {
		return 0
	}
	return b.pm.Height()
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() geometry.Size {
	return geometry.NewSize(float64(b.Width()), float64(b.Height()))
}

// Rect returns the buffer bounds as a RectInt at the origin.
func (b *Buffer) Rect() geometry.RectInt {
	return geometry.NewRectInt(0, 0, b.Width(), b.Height())
}

// Empty reports whether the buffer is absent or has no pixels.
func (b *Buffer) Empty() bool {
	return b == nil || b.Width() == 0 || b.Height() == 0
}

// RGBAAt returns the pixel at (x, y), or transparent black outside the buffer.
func (b *Buffer) RGBAAt(x, y int) color.RGBA {
	return b.RGBA().RGBAAt(x, y)
}

// Clone returns an independent copy.
func (b *Buffer) Clone() *Buffer {
	c := NewBuffer(b.Width(), b.Height())
	copy(c.pm.Data(), b.pm.Data())
	return c
}

// Crop copies the pixels inside r into a new buffer. r is intersected with
// the buffer bounds first; an empty intersection yields an empty buffer.
func (b *Buffer) Crop(r geometry.RectInt) *Buffer {
	r = r.Intersect(b.Rect())
	if r.Empty() {
		return NewBuffer(0, 0)
	}
	return FromImage(b.RGBA().SubImage(r.ToImage()))
}

// Resample returns a copy scaled to width x height with the given
// interpolator. A nil interpolator selects bilinear filtering.
func (b *Buffer) Resample(width, height int, interp xdraw.Interpolator) *Buffer {
	if interp == nil {
		interp = xdraw.BiLinear
	}
	dst := NewBuffer(width, height)
	if dst.Empty() || b.Empty() {
		return dst
	}
	interp.Scale(dst.RGBA(), dst.RGBA().Bounds(), b.RGBA(), b.RGBA().Bounds(), xdraw.Src, nil)
	return dst
}

// context returns the drawing context bound to this buffer's pixmap.
func (b *Buffer) context() *gg.Context {
	if b.dc == nil {
		b.dc = gg.NewContext(b.Width(), b.Height(), gg.WithPixmap(b.pm))
	}
	return b.dc
}

// StrokeLine draws a round-capped line between the centers of two pixels.
// A zero-length segment leaves a round dot of the same width.
func (b *Buffer) StrokeLine(from, to geometry.PointInt, c color.Color, width float64) error {
	if b.Empty() {
		return nil
	}
	if width < 1 {
		width = 1
	}
	dc := b.context()
	dc.SetColor(c)

	x1, y1 := float64(from.X)+0.5, float64(from.Y)+0.5
	if from == to {
		dc.DrawCircle(x1, y1, width/2)
		return dc.Fill()
	}

	dc.SetStroke(gg.RoundStroke().WithWidth(width))
	dc.DrawLine(x1, y1, float64(to.X)+0.5, float64(to.Y)+0.5)
	return dc.Stroke()
}

// StrokeRect outlines r. A non-empty dash pattern draws a dashed outline.
func (b *Buffer) StrokeRect(r geometry.RectInt, c color.Color, width float64, dash ...float64) error {
	if b.Empty() {
		return nil
	}
	dc := b.context()
	dc.SetColor(c)
	stroke := gg.DefaultStroke().WithWidth(width)
	if len(dash) > 0 {
		stroke = stroke.WithDashPattern(dash...)
	}
	dc.SetStroke(stroke)
	dc.DrawRectangle(float64(r.X)+0.5, float64(r.Y)+0.5, float64(r.Width), float64(r.Height))
	return dc.Stroke()
}

// Close releases the drawing context, if one was created.
func (b *Buffer) Close() error {
	if b == nil || b.dc == nil {
		return nil
	}
	err := b.dc.Close()
	b.dc = nil
	return err
}

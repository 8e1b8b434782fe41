package canvas

import (
	"image/color"
	"log"
	"math"

	"region-zoom/internal/coords"
	zimage "region-zoom/internal/image"
	"region-zoom/pkg/colorutil"
	"region-zoom/pkg/geometry"
)

// Overlay is a set of rectangle outlines drawn above the image. Rectangles
// are in image pixel coordinates; the outline width is in widget units so
// it stays the same on screen however the image is stretched.
type Overlay struct {
	Rects []geometry.RectInt
	Color color.RGBA
	Width float64
	Dash  []float64
}

// SelectionOverlay is the rubber band shown while a region is dragged out:
// a dashed blue 2-unit outline.
func SelectionOverlay(r geometry.RectInt) *Overlay {
	return &Overlay{
		Rects: []geometry.RectInt{r},
		Color: colorutil.SelectionColor,
		Width: 2,
		Dash:  []float64{6, 4},
	}
}

// render draws the overlay into a transparent buffer covering the surface.
// reuse is cleared and drawn into when it already has the surface's size;
// otherwise it is closed and a new buffer is returned.
func (o *Overlay) render(s coords.Surface, reuse *zimage.Buffer) *zimage.Buffer {
	w, h := int(math.Ceil(s.Size.Width)), int(math.Ceil(s.Size.Height))
	buf := reuse
	if buf != nil && buf.Width() == w && buf.Height() == h {
		buf.Fill(color.Transparent)
	} else {
		buf.Close()
		buf = zimage.NewBuffer(w, h)
	}
	toWidget, ok := s.ToWidget()
	if !ok {
		return buf
	}
	for _, r := range o.Rects {
		topLeft := toWidget.Apply(geometry.NewPoint2D(float64(r.X), float64(r.Y))).Floor()
		bottomRight := toWidget.Apply(geometry.NewPoint2D(float64(r.X+r.Width), float64(r.Y+r.Height))).Floor()
		// Keep single-pixel-wide drags visible.
		rect := geometry.RectFromPoints(topLeft, bottomRight)
		rect.Width = max(rect.Width, 1)
		rect.Height = max(rect.Height, 1)
		if err := buf.StrokeRect(rect, o.Color, o.Width, o.Dash...); err != nil {
			log.Printf("overlay: %v", err)
		}
	}
	return buf
}

package zoom

import (
	"fmt"

	"region-zoom/internal/brush"
	"region-zoom/internal/coords"
	zimage "region-zoom/internal/image"
	"region-zoom/pkg/geometry"
)

// Output selects which buffer Save writes.
type Output int

const (
	// OutputCropped is the region at source resolution, including edits.
	OutputCropped Output = iota
	// OutputZoomed is the magnified buffer as currently displayed.
	OutputZoomed
)

// View is one open zoom view: a Renderer and the Brush that edits it.
// All methods run on the UI thread. A scale change ends any stroke in
// progress before the zoomed buffer is regenerated, so a stroke never
// spans two magnifications.
type View struct {
	renderer *Renderer
	brush    *brush.Engine
}

// NewView creates a zoom view over region of source. The source is copied;
// later edits in the view never reach it.
func NewView(source *zimage.Buffer, region geometry.RectInt, scale float64, opts ...Option) (*View, error) {
	r, err := NewRenderer(source, region, scale, opts...)
	if err != nil {
		return nil, err
	}
	return &View{renderer: r, brush: brush.New()}, nil
}

// Renderer returns the view's buffers.
func (v *View) Renderer() *Renderer {
	return v.renderer
}

// Brush returns the view's brush.
func (v *View) Brush() *brush.Engine {
	return v.brush
}

// Scale returns the current magnification.
func (v *View) Scale() float64 {
	return v.renderer.Scale()
}

// SetScale ends any stroke, then applies the clamped scale.
func (v *View) SetScale(s float64) float64 {
	v.brush.End()
	return v.renderer.SetScale(s)
}

// ScaleLocked reports whether a stroke is in progress. Hosts disable their
// scale controls while it is true.
func (v *View) ScaleLocked() bool {
	return v.brush.Drawing()
}

// SetBrushEnabled toggles the brush; disabling ends any stroke.
func (v *View) SetBrushEnabled(enabled bool) {
	v.brush.SetEnabled(enabled)
}

// Surface describes the zoomed buffer drawn at content size, centered in a
// widget of the given size.
func (v *View) Surface(size, content geometry.Size) coords.Surface {
	return coords.Centered(size, content, v.renderer.Zoomed().Size())
}

// PointerDown starts a stroke if the brush is enabled and pos lies on the
// zoomed image. It reports whether a stroke started.
func (v *View) PointerDown(s coords.Surface, pos geometry.Point2D) bool {
	p, ok := s.Map(pos)
	if !ok {
		return false
	}
	return v.brush.Start(p)
}

// PointerMove extends the stroke to pos. It reports whether the buffers
// changed. Positions off the image are skipped without ending the stroke.
func (v *View) PointerMove(s coords.Surface, pos geometry.Point2D) (bool, error) {
	if !v.brush.Drawing() {
		return false, nil
	}
	p, ok := s.Map(pos)
	if !ok {
		return false, nil
	}
	return v.brush.Extend(v.renderer, p)
}

// PointerUp ends the stroke.
func (v *View) PointerUp() {
	v.brush.End()
}

// Save writes the selected buffer to path.
func (v *View) Save(path string, out Output) error {
	buf := v.renderer.Cropped()
	if out == OutputZoomed {
		buf = v.renderer.Zoomed()
	}
	if err := zimage.Save(buf, path); err != nil {
		return fmt.Errorf("save zoom view: %w", err)
	}
	return nil
}

// Close releases the view's buffers.
func (v *View) Close() error {
	v.brush.End()
	return v.renderer.Close()
}

// Package zoom owns the cropped and magnified buffers of one zoom view and
// keeps brush edits consistent between them.
package zoom

import (
	"errors"
	"fmt"
	"math"

	zimage "region-zoom/internal/image"
	"region-zoom/pkg/geometry"

	xdraw "golang.org/x/image/draw"
)

const (
	MinScale     = 1.0
	MaxScale     = 10.0
	DefaultScale = 2.0
	// ScaleStep is the quantum scales are rounded to.
	ScaleStep = 0.1
)

// ErrEmptyRegion is returned when a region does not overlap the source image.
var ErrEmptyRegion = errors.New("region does not overlap the image")

// ClampScale bounds s to [MinScale, MaxScale] and rounds it to tenths.
// NaN maps to DefaultScale.
func ClampScale(s float64) float64 {
	if math.IsNaN(s) {
		return DefaultScale
	}
	s = math.Round(s*10) / 10
	return math.Max(MinScale, math.Min(MaxScale, s))
}

// ScaleToTenths converts a scale to the integer slider domain (10..100).
func ScaleToTenths(s float64) int {
	return int(math.Round(ClampScale(s) * 10))
}

// TenthsToScale is the inverse of ScaleToTenths.
func TenthsToScale(t int) float64 {
	return ClampScale(float64(t) / 10)
}

// Renderer holds a private copy of a region of the source image (the
// cropped buffer) and a magnified copy of it (the zoomed buffer).
type Renderer struct {
	region  geometry.RectInt
	cropped *zimage.Buffer
	zoomed  *zimage.Buffer
	scale   float64
	interp  xdraw.Interpolator
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithInterpolator selects the resampling filter. The default is bilinear.
func WithInterpolator(interp xdraw.Interpolator) Option {
	return func(r *Renderer) {
		r.interp = interp
	}
}

// NewRenderer copies region out of source and renders it at scale.
// An empty region selects the whole source image. The region is
// intersected with the source bounds; ErrEmptyRegion is returned if
// nothing remains.
func NewRenderer(source *zimage.Buffer, region geometry.RectInt, scale float64, opts ...Option) (*Renderer, error) {
	r := &Renderer{interp: xdraw.BiLinear}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.SetRegion(source, region, scale); err != nil {
		return nil, err
	}
	return r, nil
}

// SetRegion replaces the cropped buffer with a copy of region from source
// and re-renders the zoomed buffer at scale.
func (r *Renderer) SetRegion(source *zimage.Buffer, region geometry.RectInt, scale float64) error {
	if source.Empty() {
		return fmt.Errorf("set region: %w", ErrEmptyRegion)
	}
	if region.Empty() {
		region = source.Rect()
	}
	region = region.Intersect(source.Rect())
	if region.Empty() {
		return fmt.Errorf("set region %+v: %w", region, ErrEmptyRegion)
	}

	r.release()
	r.region = region
	r.cropped = source.Crop(region)
	r.scale = ClampScale(scale)
	r.render()
	return nil
}

// SetScale clamps and quantizes s, re-renders the zoomed buffer from the
// cropped buffer, and returns the scale actually applied. Brush edits are
// preserved because they are also in the cropped buffer; only their
// rendering at the old magnification is discarded.
func (r *Renderer) SetScale(s float64) float64 {
	r.scale = ClampScale(s)
	r.render()
	return r.scale
}

// Scale returns the current magnification.
func (r *Renderer) Scale() float64 {
	return r.scale
}

// Region returns the source-image rectangle the cropped buffer was copied from.
func (r *Renderer) Region() geometry.RectInt {
	return r.region
}

// Cropped returns the native-resolution buffer.
func (r *Renderer) Cropped() *zimage.Buffer {
	return r.cropped
}

// Zoomed returns the magnified buffer.
func (r *Renderer) Zoomed() *zimage.Buffer {
	return r.zoomed
}

// ZoomedSize returns the dimensions the zoomed buffer has at the current scale.
func (r *Renderer) ZoomedSize() (width, height int) {
	return zoomedSize(r.cropped.Width(), r.cropped.Height(), r.scale)
}

// Close releases both buffers' drawing contexts.
func (r *Renderer) Close() error {
	return r.release()
}

func (r *Renderer) render() {
	if r.zoomed != nil {
		r.zoomed.Close()
	}
	w, h := r.ZoomedSize()
	r.zoomed = r.cropped.Resample(w, h, r.interp)
}

func (r *Renderer) release() error {
	return errors.Join(r.cropped.Close(), r.zoomed.Close())
}

func zoomedSize(w, h int, scale float64) (int, int) {
	return max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))
}

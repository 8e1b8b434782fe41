// Package brush implements the freehand brush that paints into a zoom
// view's magnified buffer and mirrors every segment into its
// native-resolution buffer.
package brush

import (
	"fmt"
	"image/color"

	zimage "region-zoom/internal/image"
	"region-zoom/pkg/colorutil"
	"region-zoom/pkg/geometry"
)

const (
	MinWidth     = 1
	MaxWidth     = 50
	DefaultWidth = 3
)

// Target is the pair of buffers a stroke is painted into.
type Target interface {
	// Zoomed is the buffer pointer positions refer to.
	Zoomed() *zimage.Buffer
	// Cropped is the same content at 1/Scale the size.
	Cropped() *zimage.Buffer
	Scale() float64
}

// State is the stroke state.
type State int

const (
	StateIdle State = iota
	StateDrawing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDrawing:
		return "Drawing"
	default:
		return "Unknown"
	}
}

// Engine is the brush state machine. Points passed to it are in zoomed
// buffer coordinates.
type Engine struct {
	enabled bool
	color   color.RGBA
	width   int
	state   State
	last    geometry.PointInt
}

// New returns a disabled brush with the default color and width.
func New() *Engine {
	return &Engine{
		color: colorutil.DefaultBrush,
		width: DefaultWidth,
	}
}

// SetEnabled turns the brush on or off. Turning it off ends any stroke.
func (e *Engine) SetEnabled(enabled bool) {
	e.enabled = enabled
	if !enabled {
		e.End()
	}
}

// Enabled reports whether the brush accepts strokes.
func (e *Engine) Enabled() bool {
	return e.enabled
}

// SetColor sets the stroke color. Alpha is ignored.
func (e *Engine) SetColor(c color.Color) {
	e.color = colorutil.ToRGBA(c)
}

// Color returns the stroke color.
func (e *Engine) Color() color.RGBA {
	return e.color
}

// SetWidth sets the stroke width in zoomed pixels, clamped to
// [MinWidth, MaxWidth].
func (e *Engine) SetWidth(width int) {
	e.width = geometry.Clamp(width, MinWidth, MaxWidth)
}

// Width returns the stroke width in zoomed pixels.
func (e *Engine) Width() int {
	return e.width
}

// State returns the stroke state.
func (e *Engine) State() State {
	return e.state
}

// Drawing reports whether a stroke is in progress.
func (e *Engine) Drawing() bool {
	return e.state == StateDrawing
}

// Last returns the most recent stroke point while drawing.
func (e *Engine) Last() (geometry.PointInt, bool) {
	return e.last, e.state == StateDrawing
}

// Start begins a stroke at p. It returns false if the brush is disabled.
func (e *Engine) Start(p geometry.PointInt) bool {
	if !e.enabled {
		return false
	}
	e.state = StateDrawing
	e.last = p
	return true
}

// Extend paints the segment from the previous point to p into t's zoomed
// buffer, paints the same segment divided by t's scale into its cropped
// buffer, and advances the stroke. It returns false without painting when
// no stroke is in progress.
func (e *Engine) Extend(t Target, p geometry.PointInt) (bool, error) {
	if e.state != StateDrawing {
		return false, nil
	}
	scale := t.Scale()
	from := e.last
	e.last = p

	if err := t.Zoomed().StrokeLine(from, p, e.color, float64(e.width)); err != nil {
		return true, fmt.Errorf("stroke zoomed buffer: %w", err)
	}
	if err := t.Cropped().StrokeLine(from.Div(scale), p.Div(scale), e.color, CroppedWidth(e.width, scale)); err != nil {
		return true, fmt.Errorf("stroke cropped buffer: %w", err)
	}
	return true, nil
}

// End finishes the current stroke.
func (e *Engine) End() {
	e.state = StateIdle
	e.last = geometry.PointInt{}
}

// CroppedWidth is the stroke width used in the native-resolution buffer.
func CroppedWidth(width int, scale float64) float64 {
	return max(1, float64(width)/scale)
}

// Package selection tracks a press-drag-release gesture in image space and
// derives the region to magnify from it.
package selection

import (
	"region-zoom/pkg/geometry"
)

const (
	// MinSelectionSize is the exclusive lower bound on both sides of a
	// dragged rectangle.
	MinSelectionSize = 5
	// ClickSize is the side of the square produced by a click without drag.
	ClickSize = 120
)

// State is the gesture state.
type State int

const (
	StateIdle State = iota
	StateSelecting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSelecting:
		return "Selecting"
	default:
		return "Unknown"
	}
}

// Selector is the region selection state machine for one image.
// Points are image pixel coordinates; callers pass ok=false for pointer
// positions that did not map onto the image.
type Selector struct {
	state      State
	start, end geometry.PointInt
	width      int
	height     int
}

// New creates a selector for an image of the given size.
func New(width, height int) *Selector {
	return &Selector{width: width, height: height}
}

// SetImageSize changes the image bounds and abandons any gesture in progress.
func (s *Selector) SetImageSize(width, height int) {
	s.width, s.height = width, height
	s.Cancel()
}

// State returns the current gesture state.
func (s *Selector) State() State {
	return s.state
}

// Selecting reports whether a drag is in progress.
func (s *Selector) Selecting() bool {
	return s.state == StateSelecting
}

// Press starts a gesture at p. It returns false, leaving the selector idle,
// when p is not on the image.
func (s *Selector) Press(p geometry.PointInt, ok bool) bool {
	if !ok || !s.hasImage() {
		return false
	}
	s.state = StateSelecting
	s.start, s.end = p, p
	return true
}

// Move updates the end point. It returns true when the caller should redraw
// the rubber band.
func (s *Selector) Move(p geometry.PointInt, ok bool) bool {
	if s.state != StateSelecting || !ok {
		return false
	}
	s.end = p
	return true
}

// Release ends the gesture and returns the derived region, if any.
// A release position that is off the image keeps the last good end point.
func (s *Selector) Release(p geometry.PointInt, ok bool) (geometry.RectInt, bool) {
	if s.state != StateSelecting {
		return geometry.RectInt{}, false
	}
	if ok {
		s.end = p
	}
	start, end := s.start, s.end
	s.Cancel()
	return DeriveRegion(start, end, s.width, s.height)
}

// Cancel discards any gesture in progress.
func (s *Selector) Cancel() {
	s.state = StateIdle
	s.start, s.end = geometry.PointInt{}, geometry.PointInt{}
}

// Rubber returns the rectangle between the gesture's start and end points
// for overlay drawing. ok is false when idle.
func (s *Selector) Rubber() (geometry.RectInt, bool) {
	if s.state != StateSelecting {
		return geometry.RectInt{}, false
	}
	return geometry.RectFromPoints(s.start, s.end), true
}

func (s *Selector) hasImage() bool {
	return s.width > 0 && s.height > 0
}

// DeriveRegion turns a finished gesture into a region of a width x height
// image.
//
// A drag larger than MinSelectionSize on both axes yields its bounding box.
// A click (start == end) yields a ClickSize square, shrunk to the image if
// the image is smaller, centered on the click and shifted to stay inside the
// image. Anything else, including a drag long on one axis and short on the
// other, yields nothing. The result is always intersected with the image.
func DeriveRegion(start, end geometry.PointInt, width, height int) (geometry.RectInt, bool) {
	var region geometry.RectInt

	drag := geometry.RectFromPoints(start, end)
	switch {
	case drag.Width > MinSelectionSize && drag.Height > MinSelectionSize:
		region = drag
	case start == end:
		region = clickRegion(start, width, height)
	default:
		return geometry.RectInt{}, false
	}

	region = region.Intersect(geometry.NewRectInt(0, 0, width, height))
	if region.Empty() {
		return geometry.RectInt{}, false
	}
	return region, true
}

func clickRegion(p geometry.PointInt, width, height int) geometry.RectInt {
	w := min(ClickSize, width)
	h := min(ClickSize, height)
	half := ClickSize / 2
	return geometry.RectInt{
		X:      geometry.Clamp(p.X-half, 0, width-w),
		Y:      geometry.Clamp(p.Y-half, 0, height-h),
		Width:  w,
		Height: h,
	}
}

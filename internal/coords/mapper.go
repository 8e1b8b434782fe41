// Package coords converts pointer positions on a rendering surface into
// pixel coordinates of the image the surface displays.
//
// Everything here is a pure function of explicit sizes so the same mapping
// serves the stretched main view and the centered zoom view, and can be
// tested without a window.
package coords

import (
	"region-zoom/pkg/geometry"
)

// MapToImage maps a point in render space to image pixel coordinates.
//
// render is the on-screen size of the drawn image content; img is the
// native pixel size. Each axis is scaled independently and the result is
// floored. ok is false when either size is zero or the mapped point falls
// outside [0, img.Width) x [0, img.Height).
func MapToImage(p geometry.Point2D, render, img geometry.Size) (pt geometry.PointInt, ok bool) {
	t, ok := renderToImage(render, img)
	if !ok {
		return geometry.PointInt{}, false
	}
	return inImage(t.Apply(p).Floor(), img)
}

// MapCentered maps a point on a surface that draws its content centered.
//
// surface is the size of the widget receiving the event and content the
// size of the drawn image inside it. The centering offset
// (surface - content) / 2 is removed before mapping as in MapToImage.
func MapCentered(p geometry.Point2D, surface, content, img geometry.Size) (geometry.PointInt, bool) {
	return MapToImage(p.Sub(CenterOffset(surface, content)), content, img)
}

// CenterOffset returns the top-left position of content centered in surface.
// The offset is negative on an axis where content is larger than surface.
func CenterOffset(surface, content geometry.Size) geometry.Point2D {
	return geometry.NewPoint2D(
		(surface.Width-content.Width)/2,
		(surface.Height-content.Height)/2,
	)
}

// Transform returns the affine mapping from render space to image space.
// ok is false if either size has no area.
func Transform(render, img geometry.Size) (geometry.AffineTransform, bool) {
	return renderToImage(render, img)
}

func renderToImage(render, img geometry.Size) (geometry.AffineTransform, bool) {
	if render.IsZero() || img.IsZero() {
		return geometry.AffineTransform{}, false
	}
	return geometry.Scale(img.Width/render.Width, img.Height/render.Height), true
}

func inImage(p geometry.PointInt, img geometry.Size) (geometry.PointInt, bool) {
	if p.X < 0 || p.Y < 0 || float64(p.X) >= img.Width || float64(p.Y) >= img.Height {
		return geometry.PointInt{}, false
	}
	return p, true
}

// Surface describes how an image is laid out on a widget at the moment a
// pointer event arrives.
type Surface struct {
	Size     geometry.Size // widget size
	Content  geometry.Size // drawn image size within the widget
	Image    geometry.Size // native pixel size of the image
	Centered bool          // content is centered rather than stretched to Size
}

// Stretched describes a surface whose content fills the widget.
func Stretched(size, img geometry.Size) Surface {
	return Surface{Size: size, Content: size, Image: img}
}

// Centered describes a surface that draws content centered within size.
func Centered(size, content, img geometry.Size) Surface {
	return Surface{Size: size, Content: content, Image: img, Centered: true}
}

// Map converts a widget-relative point into image pixel coordinates.
func (s Surface) Map(p geometry.Point2D) (geometry.PointInt, bool) {
	if s.Centered {
		return MapCentered(p, s.Size, s.Content, s.Image)
	}
	return MapToImage(p, s.Content, s.Image)
}

// Origin returns the top-left of the drawn content in widget coordinates.
func (s Surface) Origin() geometry.Point2D {
	if s.Centered {
		return CenterOffset(s.Size, s.Content)
	}
	return geometry.Point2D{}
}

// ToWidget returns the transform from image pixel coordinates back to
// widget coordinates, used to place overlays. ok is false if either size
// has no area.
func (s Surface) ToWidget() (geometry.AffineTransform, bool) {
	if s.Content.IsZero() || s.Image.IsZero() {
		return geometry.AffineTransform{}, false
	}
	o := s.Origin()
	scale := geometry.Scale(s.Content.Width/s.Image.Width, s.Content.Height/s.Image.Height)
	return geometry.Translation(o.X, o.Y).Compose(scale), true
}

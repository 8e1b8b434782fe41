// Package canvas provides the image widget both windows draw into and
// receive pointer events from.
package canvas

import (
	"region-zoom/internal/coords"
	zimage "region-zoom/internal/image"
	"region-zoom/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Mode selects how the buffer is laid out in the widget.
type Mode int

const (
	// ModeStretch scales the image to fill the widget, each axis
	// independently.
	ModeStretch Mode = iota
	// ModeCentered draws the image at one widget unit per pixel, centered.
	ModeCentered
)

// PointerFunc receives a widget-relative position together with the
// surface layout that was current when the event arrived.
type PointerFunc func(s coords.Surface, pos geometry.Point2D)

// ImageCanvas displays a Buffer and reports primary-button pointer
// gestures in widget coordinates.
type ImageCanvas struct {
	widget.BaseWidget

	mode    Mode
	buf     *zimage.Buffer
	overlay *Overlay
	cursor  desktop.Cursor

	// Gesture state
	pressed bool
	lastPos fyne.Position

	// Callbacks
	onPress   PointerFunc
	onMove    PointerFunc
	onRelease PointerFunc
	onHover   PointerFunc
	onLeave   func()
}

var (
	_ desktop.Mouseable  = (*ImageCanvas)(nil)
	_ desktop.Hoverable  = (*ImageCanvas)(nil)
	_ desktop.Cursorable = (*ImageCanvas)(nil)
	_ fyne.Draggable     = (*ImageCanvas)(nil)
)

// New creates an empty canvas.
func New(mode Mode) *ImageCanvas {
	ic := &ImageCanvas{mode: mode, cursor: desktop.DefaultCursor}
	ic.ExtendBaseWidget(ic)
	return ic
}

// SetBuffer replaces the displayed buffer. The canvas reads it on every
// refresh, so edits in place only need Refresh.
func (ic *ImageCanvas) SetBuffer(buf *zimage.Buffer) {
	ic.buf = buf
	ic.pressed = false
	ic.Refresh()
}

// Buffer returns the displayed buffer.
func (ic *ImageCanvas) Buffer() *zimage.Buffer {
	return ic.buf
}

// SetOverlay draws o above the image until ClearOverlay.
func (ic *ImageCanvas) SetOverlay(o *Overlay) {
	ic.overlay = o
	ic.Refresh()
}

// ClearOverlay removes the overlay.
func (ic *ImageCanvas) ClearOverlay() {
	if ic.overlay == nil {
		return
	}
	ic.overlay = nil
	ic.Refresh()
}

// SetCursor sets the pointer shown over the canvas.
func (ic *ImageCanvas) SetCursor(c desktop.Cursor) {
	ic.cursor = c
}

// Cursor implements desktop.Cursorable.
func (ic *ImageCanvas) Cursor() desktop.Cursor {
	return ic.cursor
}

// Surface describes the current layout for coordinate mapping.
func (ic *ImageCanvas) Surface() coords.Surface {
	size := toSize(ic.Size())
	img := ic.buf.Size()
	if ic.mode == ModeCentered {
		return coords.Centered(size, img, img)
	}
	return coords.Stretched(size, img)
}

// OnPress sets the callback for a primary-button press.
func (ic *ImageCanvas) OnPress(fn PointerFunc) { ic.onPress = fn }

// OnMove sets the callback for pointer motion while the button is held.
func (ic *ImageCanvas) OnMove(fn PointerFunc) { ic.onMove = fn }

// OnRelease sets the callback for the end of a press.
func (ic *ImageCanvas) OnRelease(fn PointerFunc) { ic.onRelease = fn }

// OnHover sets the callback for pointer motion with no button held.
func (ic *ImageCanvas) OnHover(fn PointerFunc) { ic.onHover = fn }

// OnLeave sets the callback for the pointer leaving the canvas.
func (ic *ImageCanvas) OnLeave(fn func()) { ic.onLeave = fn }

// MouseDown implements desktop.Mouseable.
func (ic *ImageCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary || ic.buf.Empty() {
		return
	}
	ic.pressed = true
	ic.lastPos = ev.Position
	if ic.onPress != nil {
		ic.onPress(ic.Surface(), toPoint(ev.Position))
	}
}

// MouseUp implements desktop.Mouseable.
func (ic *ImageCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	ic.release(ev.Position)
}

// Dragged implements fyne.Draggable. Drags arrive instead of hover events
// while the button is held.
func (ic *ImageCanvas) Dragged(ev *fyne.DragEvent) {
	ic.moved(ev.Position)
}

// DragEnd implements fyne.Draggable.
func (ic *ImageCanvas) DragEnd() {
	ic.release(ic.lastPos)
}

// MouseIn implements desktop.Hoverable.
func (ic *ImageCanvas) MouseIn(ev *desktop.MouseEvent) {
	ic.MouseMoved(ev)
}

// MouseMoved implements desktop.Hoverable.
func (ic *ImageCanvas) MouseMoved(ev *desktop.MouseEvent) {
	if ic.pressed {
		ic.moved(ev.Position)
		return
	}
	if ic.onHover != nil {
		ic.onHover(ic.Surface(), toPoint(ev.Position))
	}
}

// MouseOut implements desktop.Hoverable.
func (ic *ImageCanvas) MouseOut() {
	if ic.onLeave != nil {
		ic.onLeave()
	}
}

func (ic *ImageCanvas) moved(pos fyne.Position) {
	if !ic.pressed || pos == ic.lastPos {
		return
	}
	ic.lastPos = pos
	if ic.onMove != nil {
		ic.onMove(ic.Surface(), toPoint(pos))
	}
}

func (ic *ImageCanvas) release(pos fyne.Position) {
	if !ic.pressed {
		return
	}
	ic.pressed = false
	if ic.onRelease != nil {
		ic.onRelease(ic.Surface(), toPoint(pos))
	}
}

// MinSize keeps a centered canvas at least as large as its image so a
// surrounding scroll container can reach every pixel.
func (ic *ImageCanvas) MinSize() fyne.Size {
	if ic.mode == ModeCentered && !ic.buf.Empty() {
		return fyne.NewSize(float32(ic.buf.Width()), float32(ic.buf.Height()))
	}
	return fyne.NewSize(320, 240)
}

// CreateRenderer implements fyne.Widget.
func (ic *ImageCanvas) CreateRenderer() fyne.WidgetRenderer {
	image := &fynecanvas.Image{FillMode: fynecanvas.ImageFillStretch, ScaleMode: fynecanvas.ImageScalePixels}
	overlay := &fynecanvas.Image{FillMode: fynecanvas.ImageFillStretch}
	r := &imageCanvasRenderer{canvas: ic, image: image, overlay: overlay}
	r.Refresh()
	return r
}

type imageCanvasRenderer struct {
	canvas  *ImageCanvas
	image   *fynecanvas.Image
	overlay *fynecanvas.Image

	// Backing store for overlay, kept across refreshes.
	overlayBuf *zimage.Buffer
}

func (r *imageCanvasRenderer) Layout(size fyne.Size) {
	s := r.canvas.Surface()
	origin := s.Origin()
	r.image.Move(fyne.NewPos(float32(origin.X), float32(origin.Y)))
	r.image.Resize(fyne.NewSize(float32(s.Content.Width), float32(s.Content.Height)))

	r.overlay.Move(fyne.NewPos(0, 0))
	r.overlay.Resize(size)
	r.drawOverlay(s)
}

func (r *imageCanvasRenderer) MinSize() fyne.Size {
	return r.canvas.MinSize()
}

func (r *imageCanvasRenderer) Refresh() {
	if r.canvas.buf.Empty() {
		r.image.Image = nil
	} else {
		r.image.Image = r.canvas.buf.RGBA()
	}
	r.Layout(r.canvas.Size())
	r.image.Refresh()
}

func (r *imageCanvasRenderer) drawOverlay(s coords.Surface) {
	if r.canvas.overlay == nil || s.Size.IsZero() {
		r.overlay.Hidden = true
		return
	}
	r.overlayBuf = r.canvas.overlay.render(s, r.overlayBuf)
	r.overlay.Image = r.overlayBuf.NRGBA()
	r.overlay.Hidden = false
	r.overlay.Refresh()
}

func (r *imageCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.image, r.overlay}
}

func (r *imageCanvasRenderer) Destroy() {
	r.overlay.Image = nil
	r.overlayBuf.Close()
	r.overlayBuf = nil
}

func toPoint(p fyne.Position) geometry.Point2D {
	return geometry.NewPoint2D(float64(p.X), float64(p.Y))
}

func toSize(s fyne.Size) geometry.Size {
	return geometry.NewSize(float64(s.Width), float64(s.Height))
}

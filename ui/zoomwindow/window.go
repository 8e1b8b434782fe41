// Package zoomwindow provides the window that shows one zoom view and
// lets the user paint on it.
package zoomwindow

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strings"

	"region-zoom/internal/app"
	"region-zoom/internal/brush"
	"region-zoom/internal/coords"
	"region-zoom/internal/image"
	"region-zoom/internal/zoom"
	"region-zoom/pkg/geometry"
	"region-zoom/ui/canvas"
	"region-zoom/ui/dialogs"
	"region-zoom/ui/prefs"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	brushLabel     = "Brush"
	stopBrushLabel = "Stop Brush"
)

// ZoomWindow shows a zoom view's magnified buffer with scale and brush
// controls.
type ZoomWindow struct {
	fyne.Window
	state *app.State
	view  *zoom.View
	prefs *prefs.Prefs

	// Registration removed from state when the window closes
	closedListener app.ListenerID

	canvas *canvas.ImageCanvas
	scroll *container.Scroll

	// Controls
	scale       *dialogs.ScaleControl
	brushBtn    *widget.Button
	colorSwatch *fynecanvas.Rectangle
	sizeSlider  *widget.Slider
	sizeLabel   *widget.Label
	statusBar   *widget.Label
}

// New creates a window for view. Closing the window closes the view.
func New(fyneApp fyne.App, state *app.State, view *zoom.View, p *prefs.Prefs) *ZoomWindow {
	zw := &ZoomWindow{
		Window: fyneApp.NewWindow("Zoom"),
		state:  state,
		view:   view,
		prefs:  p,
	}

	view.Brush().SetColor(p.BrushColor())
	view.Brush().SetWidth(p.BrushSize())

	zw.setupUI()
	zw.setupMenus()
	zw.setupEventHandlers()
	zw.updateTitle()

	zw.SetOnClosed(func() {
		zw.state.Off(app.EventZoomClosed, zw.closedListener)
		zw.state.CloseZoom(zw.view)
	})
	return zw
}

// setupUI creates the window layout: controls on top, the zoomed image
// in a scroll container, status at the bottom.
func (zw *ZoomWindow) setupUI() {
	zw.canvas = canvas.New(canvas.ModeCentered)
	zw.canvas.SetBuffer(zw.view.Renderer().Zoomed())
	zw.canvas.OnPress(zw.onPointerPress)
	zw.canvas.OnMove(zw.onPointerMove)
	zw.canvas.OnRelease(zw.onPointerRelease)
	zw.scroll = container.NewScroll(zw.canvas)

	zw.scale = dialogs.NewScaleControl(zw.view.Scale(), zw.onScaleChanged)

	zw.brushBtn = widget.NewButton(brushLabel, zw.onToggleBrush)

	zw.colorSwatch = fynecanvas.NewRectangle(zw.view.Brush().Color())
	zw.colorSwatch.SetMinSize(fyne.NewSize(20, 20))
	colorBtn := widget.NewButton("Color...", zw.onPickColor)

	zw.sizeSlider = widget.NewSlider(brush.MinWidth, brush.MaxWidth)
	zw.sizeSlider.Step = 1
	zw.sizeSlider.SetValue(float64(zw.view.Brush().Width()))
	zw.sizeLabel = widget.NewLabel(sizeText(zw.view.Brush().Width()))
	zw.sizeSlider.OnChanged = zw.onBrushSize

	scaleRow := container.NewBorder(nil, nil, widget.NewLabel("Scale:"), nil, zw.scale.Container())
	brushRow := container.NewBorder(nil, nil,
		container.NewHBox(zw.brushBtn, container.NewCenter(zw.colorSwatch), colorBtn),
		zw.sizeLabel,
		zw.sizeSlider,
	)

	zw.statusBar = widget.NewLabel("")
	zw.updateStatus()

	zw.SetContent(container.NewBorder(
		container.NewVBox(scaleRow, brushRow),
		container.NewPadded(zw.statusBar),
		nil,
		nil,
		zw.scroll,
	))
	zw.fitToImage()
}

// setupMenus creates the window menus.
func (zw *ZoomWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Save As...", func() { zw.onSave(zoom.OutputCropped) }),
		fyne.NewMenuItem("Save Zoomed As...", func() { zw.onSave(zoom.OutputZoomed) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Close", zw.Close),
	)
	zw.SetMainMenu(fyne.NewMainMenu(fileMenu))
}

// setupEventHandlers closes this window when its view is closed elsewhere,
// for example when the main window goes away.
func (zw *ZoomWindow) setupEventHandlers() {
	zw.closedListener = zw.state.On(app.EventZoomClosed, func(data interface{}) {
		if v, ok := data.(*zoom.View); ok && v == zw.view {
			zw.Close()
		}
	})
}

func (zw *ZoomWindow) updateTitle() {
	r := zw.view.Renderer().Region()
	zw.SetTitle(fmt.Sprintf("Zoom %sx - %s (%d,%d %dx%d)",
		dialogs.FormatScale(zw.view.Scale()), zw.state.ImageName(), r.X, r.Y, r.Width, r.Height))
}

func (zw *ZoomWindow) updateStatus() {
	w, h := zw.view.Renderer().ZoomedSize()
	r := zw.view.Renderer().Region()
	zw.statusBar.SetText(fmt.Sprintf("%dx%d shown at %dx%d", r.Width, r.Height, w, h))
}

// fitToImage sizes the window to the zoomed image, within limits.
func (zw *ZoomWindow) fitToImage() {
	w, h := zw.view.Renderer().ZoomedSize()
	zw.Resize(fyne.NewSize(float32(min(max(w, 360), 1200)), float32(min(h, 800))+120))
}

// Pointer handlers

func (zw *ZoomWindow) onPointerPress(s coords.Surface, pos geometry.Point2D) {
	if zw.view.PointerDown(s, pos) {
		zw.scale.Disable()
	}
}

func (zw *ZoomWindow) onPointerMove(s coords.Surface, pos geometry.Point2D) {
	changed, err := zw.view.PointerMove(s, pos)
	if err != nil {
		log.Printf("Brush stroke failed: %v", err)
	}
	if changed {
		zw.canvas.Refresh()
	}
}

func (zw *ZoomWindow) onPointerRelease(coords.Surface, geometry.Point2D) {
	zw.view.PointerUp()
	zw.scale.Enable()
}

// Control handlers

func (zw *ZoomWindow) onScaleChanged(s float64) {
	if zw.view.ScaleLocked() {
		zw.scale.SetValue(zw.view.Scale())
		return
	}
	applied := zw.view.SetScale(s)
	zw.scale.SetValue(applied)
	zw.canvas.SetBuffer(zw.view.Renderer().Zoomed())
	zw.scroll.Refresh()
	zw.updateTitle()
	zw.updateStatus()
}

func (zw *ZoomWindow) onToggleBrush() {
	enabled := !zw.view.Brush().Enabled()
	zw.view.SetBrushEnabled(enabled)
	if enabled {
		zw.brushBtn.SetText(stopBrushLabel)
		zw.canvas.SetCursor(desktop.CrosshairCursor)
	} else {
		zw.brushBtn.SetText(brushLabel)
		zw.canvas.SetCursor(desktop.DefaultCursor)
		zw.scale.Enable()
	}
}

func (zw *ZoomWindow) onPickColor() {
	dialogs.ShowColorPicker(zw.view.Brush().Color(), zw.Window, func(c color.RGBA) {
		zw.view.Brush().SetColor(c)
		zw.colorSwatch.FillColor = c
		zw.colorSwatch.Refresh()
		zw.prefs.SetBrushColor(c)
	})
}

func (zw *ZoomWindow) onBrushSize(v float64) {
	zw.view.Brush().SetWidth(int(v))
	width := zw.view.Brush().Width()
	zw.sizeLabel.SetText(sizeText(width))
	zw.prefs.SetBrushSize(width)
}

func (zw *ZoomWindow) onSave(out zoom.Output) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := savePath(writer.URI().Path())
		if err := zw.state.SaveZoom(zw.view, path, out); err != nil {
			log.Printf("Failed to save %s: %v", path, err)
			dialog.ShowError(err, zw.Window)
			return
		}
		zw.prefs.SetLastDirectory(filepath.Dir(path))
		zw.statusBar.SetText("Saved " + filepath.Base(path))
	}, zw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(image.SaveExtensions()))
	fd.SetFileName(defaultFileName(zw.state.ImageName(), out))
	if dir := zw.prefs.LastDirectory(); dir != "" {
		if loc, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			fd.SetLocation(loc)
		}
	}
	fd.Show()
}

func sizeText(width int) string {
	return fmt.Sprintf("Size: %d", width)
}

// savePath adds .png to a path with no extension.
func savePath(path string) string {
	if filepath.Ext(path) == "" {
		return path + ".png"
	}
	return path
}

// defaultFileName suggests a file name derived from the source image.
func defaultFileName(source string, out zoom.Output) string {
	suffix := "region"
	if out == zoom.OutputZoomed {
		suffix = "zoomed"
	}
	base := strings.TrimSuffix(source, filepath.Ext(source))
	if base == "" {
		return suffix + ".png"
	}
	return base + "-" + suffix + ".png"
}

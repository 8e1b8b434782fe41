// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"region-zoom/internal/app"
	"region-zoom/internal/coords"
	"region-zoom/internal/image"
	"region-zoom/internal/selection"
	"region-zoom/internal/version"
	"region-zoom/pkg/geometry"
	"region-zoom/ui/canvas"
	"region-zoom/ui/dialogs"
	"region-zoom/ui/prefs"
	"region-zoom/ui/zoomwindow"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	appTitle = "Region Zoom"

	maxInitialWidth  = 1200
	maxInitialHeight = 900
)

// MainWindow shows one source image and opens zoom windows on regions of it.
type MainWindow struct {
	fyne.Window
	app      fyne.App
	state    *app.State
	prefs    *prefs.Prefs
	canvas   *canvas.ImageCanvas
	selector *selection.Selector

	statusBar     *widget.Label
	positionLabel *widget.Label
}

// New creates a main window with its own empty state.
func New(fyneApp fyne.App, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window:   win,
		app:      fyneApp,
		state:    app.NewState(),
		prefs:    p,
		selector: selection.New(0, 0),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	win.SetOnClosed(mw.onClosed)
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.New(canvas.ModeStretch)
	mw.canvas.OnPress(mw.onPointerPress)
	mw.canvas.OnMove(mw.onPointerMove)
	mw.canvas.OnRelease(mw.onPointerRelease)
	mw.canvas.OnHover(mw.onPointerHover)
	mw.canvas.OnLeave(func() { mw.positionLabel.SetText("") })

	mw.statusBar = widget.NewLabel("Open an image to begin")
	mw.positionLabel = widget.NewLabel("")

	status := container.NewBorder(nil, nil, nil, mw.positionLabel, mw.statusBar)
	mw.SetContent(container.NewBorder(nil, container.NewPadded(status), nil, nil, mw.canvas))
	mw.Resize(fyne.NewSize(640, 480))
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpen),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Close Window", mw.Close),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Zoom Whole Image", mw.onZoomWholeImage),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, toolsMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		src := mw.state.Source
		mw.selector.SetImageSize(src.Width(), src.Height())
		mw.canvas.ClearOverlay()
		mw.canvas.SetBuffer(src)
		mw.SetTitle(appTitle + " - " + mw.state.ImageName())
		mw.Resize(fyne.NewSize(
			float32(min(src.Width(), maxInitialWidth)),
			float32(min(src.Height(), maxInitialHeight))+mw.statusBar.MinSize().Height,
		))
		mw.updateStatus(fmt.Sprintf("%dx%d  drag to select a region, click to zoom around a point", src.Width(), src.Height()))
	})

	mw.state.On(app.EventSelectionChanged, func(data interface{}) {
		if r, ok := data.(geometry.RectInt); ok {
			mw.updateStatus(regionText(r))
		}
	})

	mw.state.On(app.EventImageSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.updateStatus("Saved " + path)
		}
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// LoadImage opens path in this window. On failure the current image stays.
func (mw *MainWindow) LoadImage(path string) error {
	if err := mw.state.LoadImage(path); err != nil {
		return err
	}
	mw.prefs.SetLastImage(path)
	mw.prefs.SetLastDirectory(filepath.Dir(path))
	log.Printf("Loaded %s (%dx%d)", path, mw.state.Source.Width(), mw.state.Source.Height())
	return nil
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.LastDirectory()
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// Pointer handlers

func (mw *MainWindow) onPointerPress(s coords.Surface, pos geometry.Point2D) {
	mw.selector.Press(s.Map(pos))
}

func (mw *MainWindow) onPointerMove(s coords.Surface, pos geometry.Point2D) {
	p, ok := s.Map(pos)
	if ok {
		mw.showPosition(p)
	}
	if !mw.selector.Move(p, ok) {
		return
	}
	if r, ok := mw.selector.Rubber(); ok {
		mw.canvas.SetOverlay(canvas.SelectionOverlay(r))
	}
}

func (mw *MainWindow) onPointerRelease(s coords.Surface, pos geometry.Point2D) {
	region, ok := mw.selector.Release(s.Map(pos))
	mw.canvas.ClearOverlay()
	if !ok {
		mw.updateStatus("Selection too small")
		return
	}
	mw.state.SetSelection(region)
	mw.promptZoom(region)
}

func (mw *MainWindow) onPointerHover(s coords.Surface, pos geometry.Point2D) {
	p, ok := s.Map(pos)
	if !ok {
		mw.positionLabel.SetText("")
		return
	}
	mw.showPosition(p)
}

func (mw *MainWindow) showPosition(p geometry.PointInt) {
	mw.positionLabel.SetText(positionText(p, true, mw.state.Source.RGBAAt(p.X, p.Y)))
}

// promptZoom asks for a scale and opens a zoom window on region. An empty
// region zooms the whole image. Cancelling opens nothing.
func (mw *MainWindow) promptZoom(region geometry.RectInt) {
	dialogs.NewScaleDialog(mw.prefs.DefaultScale(), mw.Window, func(scale float64) {
		mw.prefs.SetDefaultScale(scale)
		mw.openZoom(region, scale)
	}).Show()
}

func (mw *MainWindow) openZoom(region geometry.RectInt, scale float64) {
	view, err := mw.state.OpenZoom(region, scale)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	log.Printf("Opened zoom of %s at %.1fx", regionText(view.Renderer().Region()), view.Scale())
	zoomwindow.New(mw.app, mw.state, view, mw.prefs).Show()
}

// Menu action handlers

func (mw *MainWindow) onOpen() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()

		target := mw
		if mw.state.HasImage() {
			target = New(mw.app, mw.prefs)
		}
		if err := target.LoadImage(path); err != nil {
			log.Printf("Failed to load %s: %v", path, err)
			dialog.ShowError(err, mw.Window)
			if target != mw {
				target.Close()
			}
			return
		}
		target.Show()
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(image.OpenExtensions()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onZoomWholeImage() {
	if !mw.state.HasImage() {
		mw.updateStatus("No image loaded")
		return
	}
	mw.promptZoom(geometry.RectInt{})
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s %s\n\n"+
			"Select a region of an image, view it magnified,\n"+
			"and paint on it at either resolution.",
			appTitle, version.String()),
		mw.Window)
}

func (mw *MainWindow) onClosed() {
	mw.state.Close()
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

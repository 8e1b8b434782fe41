package zoomwindow

import (
	"path/filepath"
	"testing"

	"region-zoom/internal/app"
	"region-zoom/internal/image"
	"region-zoom/internal/zoom"
	"region-zoom/pkg/colorutil"
	"region-zoom/pkg/geometry"
	"region-zoom/ui/prefs"

	"fyne.io/fyne/v2/test"
)

func TestSavePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/tmp/out", "/tmp/out.png"},
		{"/tmp/out.bmp", "/tmp/out.bmp"},
		{"/tmp/out.TIF", "/tmp/out.TIF"},
	}
	for _, tt := range tests {
		if got := savePath(tt.in); got != tt.want {
			t.Errorf("savePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultFileName(t *testing.T) {
	if got := defaultFileName("board.jpg", zoom.OutputCropped); got != "board-region.png" {
		t.Errorf("cropped name = %q", got)
	}
	if got := defaultFileName("board.jpg", zoom.OutputZoomed); got != "board-zoomed.png" {
		t.Errorf("zoomed name = %q", got)
	}
	if got := defaultFileName("", zoom.OutputCropped); got != "region.png" {
		t.Errorf("empty source name = %q", got)
	}
}

func TestClosedWindowsUnsubscribe(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	dir := t.TempDir()
	path := filepath.Join(dir, "board.png")
	if err := image.Save(image.NewFilled(40, 30, colorutil.White), path); err != nil {
		t.Fatal(err)
	}
	state := app.NewState()
	if err := state.LoadImage(path); err != nil {
		t.Fatal(err)
	}
	p := prefs.LoadFile(filepath.Join(dir, "preferences.json"))
	base := state.Listeners(app.EventZoomClosed)

	// Open and close many zoom windows over one long-lived state.
	for i := 0; i < 10; i++ {
		view, err := state.OpenZoom(geometry.NewRectInt(0, 0, 10, 10), 2)
		if err != nil {
			t.Fatal(err)
		}
		zw := New(a, state, view, p)
		if n := state.Listeners(app.EventZoomClosed); n != base+1 {
			t.Fatalf("open window %d: listeners = %d, want %d", i, n, base+1)
		}
		zw.Close()
	}

	if n := state.Listeners(app.EventZoomClosed); n != base {
		t.Errorf("listeners after closing = %d, want %d", n, base)
	}
	if len(state.Views()) != 0 {
		t.Errorf("views after closing = %d, want 0", len(state.Views()))
	}
}

func TestCloseZoomClosesWindow(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	dir := t.TempDir()
	path := filepath.Join(dir, "board.png")
	if err := image.Save(image.NewFilled(40, 30, colorutil.White), path); err != nil {
		t.Fatal(err)
	}
	state := app.NewState()
	if err := state.LoadImage(path); err != nil {
		t.Fatal(err)
	}
	view, err := state.OpenZoom(geometry.RectInt{}, 1)
	if err != nil {
		t.Fatal(err)
	}
	New(a, state, view, prefs.LoadFile(filepath.Join(dir, "preferences.json")))

	// Closing the state closes the view, which must close the window and
	// drop its listener.
	state.Close()
	if n := state.Listeners(app.EventZoomClosed); n != 0 {
		t.Errorf("listeners after state.Close = %d, want 0", n)
	}
}

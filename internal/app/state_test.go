package app

import (
	"errors"
	"path/filepath"
	"testing"

	"region-zoom/internal/image"
	"region-zoom/internal/zoom"
	"region-zoom/pkg/colorutil"
	"region-zoom/pkg/geometry"
)

func writeImage(t *testing.T, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := image.Save(image.NewFilled(w, h, colorutil.White), path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return path
}

func TestLoadImageEmits(t *testing.T) {
	s := NewState()
	var got []interface{}
	s.On(EventImageLoaded, func(data interface{}) { got = append(got, data) })

	path := writeImage(t, "a.png", 30, 20)
	if err := s.LoadImage(path); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if !s.HasImage() || s.Source.Width() != 30 {
		t.Fatalf("source not loaded: %+v", s.Source)
	}
	if s.ImageName() != "a.png" {
		t.Errorf("ImageName() = %q, want a.png", s.ImageName())
	}
	if len(got) != 1 || got[0] != path {
		t.Errorf("events = %v, want [%s]", got, path)
	}
}

func TestLoadImageFailureKeepsPrevious(t *testing.T) {
	s := NewState()
	path := writeImage(t, "a.png", 30, 20)
	if err := s.LoadImage(path); err != nil {
		t.Fatal(err)
	}

	err := s.LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, image.ErrNotFound) {
		t.Fatalf("LoadImage(missing) error = %v, want ErrNotFound", err)
	}
	if s.ImagePath != path || s.Source.Width() != 30 {
		t.Errorf("previous image replaced after failed load")
	}
}

func TestOpenZoomWithoutImage(t *testing.T) {
	s := NewState()
	_, err := s.OpenZoom(geometry.RectInt{}, 2)
	if !errors.Is(err, zoom.ErrEmptyRegion) {
		t.Errorf("OpenZoom() error = %v, want ErrEmptyRegion", err)
	}
}

func TestOpenAndCloseZoom(t *testing.T) {
	s := NewState()
	if err := s.LoadImage(writeImage(t, "a.png", 40, 40)); err != nil {
		t.Fatal(err)
	}
	var opened, closed int
	s.On(EventZoomOpened, func(interface{}) { opened++ })
	s.On(EventZoomClosed, func(interface{}) { closed++ })

	a, err := s.OpenZoom(geometry.NewRectInt(0, 0, 10, 10), 2)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.OpenZoom(geometry.RectInt{}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if b.Renderer().Region() != geometry.NewRectInt(0, 0, 40, 40) {
		t.Errorf("whole-image region = %+v", b.Renderer().Region())
	}
	if len(s.Views()) != 2 || opened != 2 {
		t.Fatalf("views = %d, opened = %d; want 2, 2", len(s.Views()), opened)
	}

	s.CloseZoom(a)
	s.CloseZoom(a)
	if len(s.Views()) != 1 || closed != 1 {
		t.Errorf("views = %d, closed = %d; want 1, 1", len(s.Views()), closed)
	}

	s.Close()
	if len(s.Views()) != 0 || closed != 2 {
		t.Errorf("after Close views = %d, closed = %d", len(s.Views()), closed)
	}
}

func TestSaveZoomEmits(t *testing.T) {
	s := NewState()
	if err := s.LoadImage(writeImage(t, "a.png", 20, 20)); err != nil {
		t.Fatal(err)
	}
	v, err := s.OpenZoom(geometry.RectInt{}, 2)
	if err != nil {
		t.Fatal(err)
	}
	var saved string
	s.On(EventImageSaved, func(data interface{}) { saved = data.(string) })

	out := filepath.Join(t.TempDir(), "out.png")
	if err := s.SaveZoom(v, out, zoom.OutputZoomed); err != nil {
		t.Fatalf("SaveZoom: %v", err)
	}
	if saved != out {
		t.Errorf("saved = %q, want %q", saved, out)
	}
}

func TestOffRemovesListener(t *testing.T) {
	s := NewState()
	var a, b int
	idA := s.On(EventZoomClosed, func(interface{}) { a++ })
	s.On(EventZoomClosed, func(interface{}) { b++ })

	s.Emit(EventZoomClosed, nil)
	s.Off(EventZoomClosed, idA)
	s.Off(EventZoomClosed, idA)
	s.Off(EventImageSaved, 999)
	s.Emit(EventZoomClosed, nil)

	if a != 1 || b != 2 {
		t.Errorf("calls a=%d b=%d, want 1, 2", a, b)
	}
	if n := s.Listeners(EventZoomClosed); n != 1 {
		t.Errorf("Listeners() = %d, want 1", n)
	}
}

func TestOffDuringEmit(t *testing.T) {
	s := NewState()
	var id ListenerID
	var calls []string
	id = s.On(EventImageSaved, func(interface{}) {
		calls = append(calls, "first")
		s.Off(EventImageSaved, id)
	})
	s.On(EventImageSaved, func(interface{}) { calls = append(calls, "second") })

	s.Emit(EventImageSaved, nil)
	s.Emit(EventImageSaved, nil)
	if len(calls) != 3 || calls[0] != "first" || calls[1] != "second" || calls[2] != "second" {
		t.Errorf("calls = %v, want [first second second]", calls)
	}
}

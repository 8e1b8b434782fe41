// Package app provides application state and events shared by a main
// window and the zoom windows it opens.
package app

import (
	"fmt"
	"path/filepath"
	"sync"

	"region-zoom/internal/image"
	"region-zoom/internal/zoom"
	"region-zoom/pkg/geometry"
)

// State holds the loaded source image and the zoom views opened from it.
// Each main window owns one State.
type State struct {
	mu sync.RWMutex

	// Source image
	ImagePath string
	Source    *image.Buffer

	// Last committed selection, in source pixels
	Selection geometry.RectInt

	// Open zoom views
	views []*zoom.View

	// Event listeners
	listeners map[EventType][]listenerEntry
	nextID    ListenerID
}

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventSelectionChanged
	EventZoomOpened
	EventZoomClosed
	EventImageSaved
)

func (e EventType) String() string {
	switch e {
	case EventImageLoaded:
		return "ImageLoaded"
	case EventSelectionChanged:
		return "SelectionChanged"
	case EventZoomOpened:
		return "ZoomOpened"
	case EventZoomClosed:
		return "ZoomClosed"
	case EventImageSaved:
		return "ImageSaved"
	default:
		return "Unknown"
	}
}

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// ListenerID identifies a registered listener for Off.
type ListenerID uint64

type listenerEntry struct {
	id ListenerID
	fn EventListener
}

// NewState creates an empty application state.
func NewState() *State {
	return &State{
		listeners: make(map[EventType][]listenerEntry),
	}
}

// On registers an event listener for the specified event type. Listeners
// owned by a window that closes before the State must be removed with Off.
func (s *State) On(event EventType, listener EventListener) ListenerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.listeners[event] = append(s.listeners[event], listenerEntry{id: s.nextID, fn: listener})
	return s.nextID
}

// Off removes a listener registered with On. Unknown ids are ignored.
func (s *State) Off(event EventType, id ListenerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.listeners[event]
	for i, e := range entries {
		if e.id == id {
			// Copy so an Emit in progress keeps its snapshot intact.
			kept := make([]listenerEntry, 0, len(entries)-1)
			kept = append(kept, entries[:i]...)
			s.listeners[event] = append(kept, entries[i+1:]...)
			return
		}
	}
}

// Listeners returns the number of listeners registered for event.
func (s *State) Listeners(event EventType) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners[event])
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, l := range listeners {
		l.fn(data)
	}
}

// HasImage reports whether a source image is loaded.
func (s *State) HasImage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.Source.Empty()
}

// ImageName returns the base name of the loaded image, or "".
func (s *State) ImageName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ImagePath == "" {
		return ""
	}
	return filepath.Base(s.ImagePath)
}

// LoadImage replaces the source image with the file at path. On failure
// the previously loaded image is kept.
func (s *State) LoadImage(path string) error {
	buf, err := image.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	s.mu.Lock()
	old := s.Source
	s.Source = buf
	s.ImagePath = path
	s.Selection = geometry.RectInt{}
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}
	s.Emit(EventImageLoaded, path)
	return nil
}

// SetSelection records the region committed by the selector.
func (s *State) SetSelection(r geometry.RectInt) {
	s.mu.Lock()
	s.Selection = r
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, r)
}

// OpenZoom creates a zoom view over region of the source image. An empty
// region zooms the whole image.
func (s *State) OpenZoom(region geometry.RectInt, scale float64) (*zoom.View, error) {
	s.mu.RLock()
	src := s.Source
	s.mu.RUnlock()
	if src.Empty() {
		return nil, fmt.Errorf("failed to open zoom: no image loaded: %w", zoom.ErrEmptyRegion)
	}

	v, err := zoom.NewView(src, region, scale)
	if err != nil {
		return nil, fmt.Errorf("failed to open zoom: %w", err)
	}

	s.mu.Lock()
	s.views = append(s.views, v)
	s.mu.Unlock()
	s.Emit(EventZoomOpened, v)
	return v, nil
}

// CloseZoom releases a view opened with OpenZoom.
func (s *State) CloseZoom(v *zoom.View) {
	s.mu.Lock()
	found := false
	for i, open := range s.views {
		if open == v {
			s.views = append(s.views[:i], s.views[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return
	}
	v.Close()
	s.Emit(EventZoomClosed, v)
}

// Views returns the open zoom views.
func (s *State) Views() []*zoom.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*zoom.View(nil), s.views...)
}

// SaveZoom writes one output of a zoom view and emits EventImageSaved.
func (s *State) SaveZoom(v *zoom.View, path string, out zoom.Output) error {
	if err := v.Save(path, out); err != nil {
		return err
	}
	s.Emit(EventImageSaved, path)
	return nil
}

// Close releases every open view and the source image.
func (s *State) Close() {
	for _, v := range s.Views() {
		s.CloseZoom(v)
	}
	s.mu.Lock()
	if s.Source != nil {
		s.Source.Close()
	}
	s.mu.Unlock()
}

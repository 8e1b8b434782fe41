// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"region-zoom/internal/zoom"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// FormatScale formats a scale the way the scale entry shows it.
func FormatScale(s float64) string {
	return strconv.FormatFloat(s, 'f', 1, 64)
}

// ParseScale parses user input such as "2.5" or "3x". The result is
// clamped to the valid range; ok is false if the text is not a number.
func ParseScale(text string) (float64, bool) {
	text = strings.TrimSuffix(strings.TrimSpace(text), "x")
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return zoom.ClampScale(v), true
}

// ScaleControl is a slider in tenths of a unit next to a numeric entry,
// kept in agreement. Changing either one updates the other without
// re-entering the change callback.
type ScaleControl struct {
	Slider *widget.Slider
	Entry  *widget.Entry

	value    float64
	updating bool
	disabled bool

	onChanged func(float64)
}

// NewScaleControl creates a control showing initial, clamped.
func NewScaleControl(initial float64, onChanged func(float64)) *ScaleControl {
	c := &ScaleControl{
		Slider:    widget.NewSlider(float64(zoom.ScaleToTenths(zoom.MinScale)), float64(zoom.ScaleToTenths(zoom.MaxScale))),
		Entry:     widget.NewEntry(),
		onChanged: onChanged,
	}
	c.Slider.Step = 1
	c.SetValue(initial)

	c.Slider.OnChanged = func(v float64) {
		c.apply(zoom.TenthsToScale(int(math.Round(v))))
	}
	c.Entry.OnSubmitted = func(text string) {
		s, ok := ParseScale(text)
		if !ok {
			c.SetValue(c.value)
			return
		}
		c.apply(s)
	}
	return c
}

// Value returns the current scale.
func (c *ScaleControl) Value() float64 {
	return c.value
}

// SetValue moves both widgets to s without calling the change callback.
func (c *ScaleControl) SetValue(s float64) {
	c.updating = true
	defer func() { c.updating = false }()

	c.value = zoom.ClampScale(s)
	c.Slider.SetValue(float64(zoom.ScaleToTenths(c.value)))
	c.Entry.SetText(FormatScale(c.value))
}

// Enable accepts changes again.
func (c *ScaleControl) Enable() {
	c.disabled = false
	c.Entry.Enable()
}

// Disable rejects changes. The slider snaps back to the current value if
// dragged.
func (c *ScaleControl) Disable() {
	c.disabled = true
	c.Entry.Disable()
}

// Container lays out the slider with the entry on its right.
func (c *ScaleControl) Container() fyne.CanvasObject {
	return container.NewBorder(nil, nil, nil, c.Entry, c.Slider)
}

func (c *ScaleControl) apply(s float64) {
	if c.updating {
		return
	}
	if c.disabled {
		c.SetValue(c.value)
		return
	}
	changed := zoom.ClampScale(s) != c.value
	c.SetValue(s)
	if changed && c.onChanged != nil {
		c.onChanged(c.value)
	}
}

// ScaleDialog asks for the magnification of a new zoom view.
type ScaleDialog struct {
	window  fyne.Window
	initial float64
	control *ScaleControl

	// Callback
	onAccept func(scale float64)
}

// NewScaleDialog creates a scale prompt starting at initial. onAccept is
// only called if the user confirms.
func NewScaleDialog(initial float64, window fyne.Window, onAccept func(scale float64)) *ScaleDialog {
	return &ScaleDialog{
		window:   window,
		initial:  initial,
		onAccept: onAccept,
	}
}

// Show displays the dialog.
func (d *ScaleDialog) Show() {
	d.control = NewScaleControl(d.initial, nil)
	rangeLabel := widget.NewLabel(fmt.Sprintf("%s to %s", FormatScale(zoom.MinScale), FormatScale(zoom.MaxScale)))

	content := container.NewVBox(d.control.Container(), rangeLabel)
	dlg := dialog.NewCustomConfirm("Zoom Scale", "Zoom", "Cancel", content, d.close, d.window)
	dlg.Resize(fyne.NewSize(360, 200))
	dlg.Show()
}

// close handles the dialog's buttons. Cancel opens nothing.
func (d *ScaleDialog) close(ok bool) {
	if !ok {
		return
	}
	// Pick up a typed value that was never submitted with Enter.
	if s, valid := ParseScale(d.control.Entry.Text); valid {
		d.control.SetValue(s)
	}
	if d.onAccept != nil {
		d.onAccept(d.control.Value())
	}
}

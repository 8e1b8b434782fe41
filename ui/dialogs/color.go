package dialogs

import (
	"image/color"

	"region-zoom/pkg/colorutil"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// ShowColorPicker asks for a brush color starting at current. onPick
// receives the chosen color made opaque; it is not called on cancel.
func ShowColorPicker(current color.Color, window fyne.Window, onPick func(color.RGBA)) {
	picker := dialog.NewColorPicker("Brush Color", "Select the brush color", func(c color.Color) {
		if c == nil {
			return
		}
		onPick(colorutil.ToRGBA(c))
	}, window)
	picker.Advanced = true
	picker.SetColor(current)
	picker.Show()
}

package mainwindow

import (
	"fmt"
	"image/color"

	"region-zoom/pkg/colorutil"
	"region-zoom/pkg/geometry"
)

// positionText describes the pixel under the pointer for the status bar.
func positionText(p geometry.PointInt, ok bool, c color.Color) string {
	if !ok {
		return ""
	}
	return fmt.Sprintf("x: %d  y: %d  gray: %d", p.X, p.Y, colorutil.Gray(c))
}

// regionText describes a committed selection.
func regionText(r geometry.RectInt) string {
	return fmt.Sprintf("region %d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}

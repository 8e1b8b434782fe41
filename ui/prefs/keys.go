package prefs

import (
	"image/color"

	"region-zoom/internal/brush"
	"region-zoom/internal/zoom"
	"region-zoom/pkg/colorutil"
	"region-zoom/pkg/geometry"
)

// DefaultScale returns the scale the scale prompt starts at, clamped to the
// valid range.
func (p *Prefs) DefaultScale() float64 {
	return zoom.ClampScale(p.FloatWithFallback(KeyDefaultScale, zoom.DefaultScale))
}

// SetDefaultScale remembers the last scale the user chose.
func (p *Prefs) SetDefaultScale(s float64) {
	p.SetFloat(KeyDefaultScale, zoom.ClampScale(s))
}

// BrushSize returns the remembered brush width.
func (p *Prefs) BrushSize() int {
	w := int(p.FloatWithFallback(KeyBrushSize, brush.DefaultWidth))
	return geometry.Clamp(w, brush.MinWidth, brush.MaxWidth)
}

// SetBrushSize remembers the brush width.
func (p *Prefs) SetBrushSize(w int) {
	p.SetFloat(KeyBrushSize, float64(geometry.Clamp(w, brush.MinWidth, brush.MaxWidth)))
}

// BrushColor returns the remembered brush color, or the default red if
// none is stored or the stored value does not parse.
func (p *Prefs) BrushColor() color.RGBA {
	c, err := colorutil.ParseHex(p.String(KeyBrushColor))
	if err != nil {
		return colorutil.DefaultBrush
	}
	return c
}

// SetBrushColor remembers the brush color as #rrggbb.
func (p *Prefs) SetBrushColor(c color.Color) {
	p.SetString(KeyBrushColor, colorutil.ToHex(c))
}

// LastDirectory returns the directory of the last opened or saved file.
func (p *Prefs) LastDirectory() string {
	return p.String(KeyLastDirectory)
}

// SetLastDirectory remembers dir for the next file dialog.
func (p *Prefs) SetLastDirectory(dir string) {
	p.SetString(KeyLastDirectory, dir)
}

// LastImage returns the path of the last opened image.
func (p *Prefs) LastImage() string {
	return p.String(KeyLastImage)
}

// SetLastImage remembers the last opened image.
func (p *Prefs) SetLastImage(path string) {
	p.SetString(KeyLastImage, path)
}

// Package colorutil provides shared color utilities for the region zoom application.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"
)

// Common colors used throughout the application.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Blue  = color.RGBA{R: 0, G: 0, B: 255, A: 255}
)

// DefaultBrush is the brush color of a freshly opened zoom window.
var DefaultBrush = Red

// SelectionColor is used for the rubber-band rectangle in the main view.
var SelectionColor = Blue

// ToRGBA converts any color to an opaque 8-bit RGBA.
func ToRGBA(c color.Color) color.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 255}
}

// ToHex formats a color as #rrggbb.
func ToHex(c color.Color) string {
	rgba := ToRGBA(c)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// ParseHex parses #rrggbb or rrggbb.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Gray returns the 0-255 gray level of a color using integer weights
// 11/16/5 over 32.
func Gray(c color.Color) int {
	rgba := ToRGBA(c)
	return (int(rgba.R)*11 + int(rgba.G)*16 + int(rgba.B)*5) / 32
}

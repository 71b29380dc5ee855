// Package colorutil provides shared color utilities for the quiltify pipeline.
package colorutil

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHex parses a "#rrggbb" or "#rgb" color string into an opaque RGBA.
func ParseHex(s string) (color.RGBA, error) {
	// colorful.Hex scans leniently and would accept odd-length strings
	// like "#12345"; only the two documented forms are valid here.
	if len(s) != 4 && len(s) != 7 {
		return color.RGBA{}, fmt.Errorf("parse hex color %q: want #rgb or #rrggbb", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Hex formats a color as a lowercase "#rrggbb" string. Alpha is ignored.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lab converts an sRGB color to CIELAB (D65 white point).
func Lab(c color.RGBA) (l, a, b float64) {
	return toColorful(c).Lab()
}

// DistanceLab returns the Euclidean distance between two colors in CIELAB
// space. Symmetric, and zero for identical colors.
func DistanceLab(c1, c2 color.RGBA) float64 {
	return toColorful(c1).DistanceLab(toColorful(c2))
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

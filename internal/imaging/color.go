package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 100=white)
}

// ColorSample contains a sampled color in hex and HSL representations.
//
// The measurement pipeline attaches one of these for the center of the
// selected region, which gives callers a quick sanity check that the
// detected shape is the expected subject and not, say, the background.
type ColorSample struct {
	Hex string   `json:"hex"` // Hex format "#rrggbb"
	HSL HSLColor `json:"hsl"`
}

// SampleColor extracts the color at a pixel coordinate.
//
// Returns an error when the coordinate lies outside the image bounds.
func SampleColor(img image.Image, x, y int) (*ColorSample, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		// Fully transparent pixel; report it as black.
		c = colorful.Color{}
	}

	h, s, l := c.Hsl()
	return &ColorSample{
		Hex: c.Hex(),
		HSL: HSLColor{
			H: int(math.Round(h)),
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}, nil
}

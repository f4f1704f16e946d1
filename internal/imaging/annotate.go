package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// AnnotateResult contains a copy of the source image with the measured
// bounding box drawn on it, encoded as base64 PNG.
type AnnotateResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// AnnotateBox draws a rectangle outline onto a copy of an image.
//
// Parameters:
//   - img: Source image. Never modified; drawing happens on a clone.
//   - rect: Box to draw, in source pixel coordinates. Clipped to the image.
//   - colorHex: Outline color as "#rrggbb". Invalid values fall back to red.
//
// Returns the annotated image as base64 PNG, the same result shape the
// edge-map export uses.
func AnnotateBox(img image.Image, rect image.Rectangle, colorHex string) (*AnnotateResult, error) {
	bounds := img.Bounds()
	out := imaging.Clone(img)

	lineColor := color.NRGBA{R: 255, A: 255}
	if parsed, err := colorful.Hex(colorHex); err == nil {
		r, g, b := parsed.RGB255()
		lineColor = color.NRGBA{R: r, G: g, B: b, A: 255}
	}

	// Clone normalizes bounds to start at (0,0)
	rect = rect.Sub(bounds.Min).Intersect(out.Bounds())
	if !rect.Empty() {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			out.SetNRGBA(x, rect.Min.Y, lineColor)
			out.SetNRGBA(x, rect.Max.Y-1, lineColor)
		}
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			out.SetNRGBA(rect.Min.X, y, lineColor)
			out.SetNRGBA(rect.Max.X-1, y, lineColor)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode annotated image: %w", err)
	}

	return &AnnotateResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

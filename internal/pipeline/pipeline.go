// Package pipeline assembles the imaging and detection stages into the
// foot measurement pipeline.
//
// A single invocation runs strictly forward through decode, grayscale,
// blur, edge detection, contour extraction, largest-region selection, and
// bounding-box measurement. No stage is retried and no state survives the
// call: identical input bytes always yield identical results.
//
// Domain failures are values, never panics:
//
//   - *imaging.DecodeError (via errors.As) when the payload cannot be
//     parsed as its declared encoding
//   - ErrNoContourFound (via errors.Is) when processing succeeded but no
//     shape was detected, an expected outcome for blank or low-contrast
//     images
//
// Any other error is an unexpected internal failure and is never coerced
// into one of the two domain outcomes.
package pipeline

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/dougdotcon/footsizer-backend/internal/detection"
	"github.com/dougdotcon/footsizer-backend/internal/imaging"
)

// ErrNoContourFound reports that the image decoded and processed cleanly
// but contained no detectable shape. This is a first-class outcome, not an
// exceptional condition.
var ErrNoContourFound = errors.New("no contour found in image")

// Default pipeline constants. They encode the calibration assumptions of
// the capture setup; see Config for overriding them per invocation.
const (
	// DefaultThresholdLow is the low Canny hysteresis threshold (0-255).
	DefaultThresholdLow = 50

	// DefaultThresholdHigh is the high Canny hysteresis threshold (0-255).
	DefaultThresholdHigh = 150

	// DefaultConversionFactor maps pixel distance to centimeters. The
	// value assumes a fixed, uncalibrated camera distance; it is a
	// pipeline-wide constant, never derived from the image.
	DefaultConversionFactor = 0.2
)

// Config carries the tunable numeric parameters of a pipeline invocation.
// Passing the configuration explicitly keeps tests free to vary parameters
// without mutating shared globals.
type Config struct {
	// ThresholdLow is the low Canny hysteresis threshold (0-255).
	ThresholdLow int

	// ThresholdHigh is the high Canny hysteresis threshold (0-255).
	ThresholdHigh int

	// ConversionFactor is the pixel-to-centimeter scale.
	ConversionFactor float64
}

// DefaultConfig returns the standard pipeline parameters: thresholds
// 50/150 and 0.2 cm per pixel.
func DefaultConfig() Config {
	return Config{
		ThresholdLow:     DefaultThresholdLow,
		ThresholdHigh:    DefaultThresholdHigh,
		ConversionFactor: DefaultConversionFactor,
	}
}

// Measurement is the successful outcome of a pipeline invocation.
type Measurement struct {
	// LengthCm is the measured foot length in centimeters, rounded
	// half-away-from-zero to two decimal places.
	LengthCm float64 `json:"length_cm"`

	// WidthPx and HeightPx are the pixel extents of the measured region.
	WidthPx  int `json:"width_px"`
	HeightPx int `json:"height_px"`

	// Box is the bounding box of the measured region, in source pixel
	// coordinates. It is derived from the interior enclosed by the traced
	// edge band (see detection.RegionBounds), so it matches the underlying
	// shape rather than the band around it.
	Box detection.Bounds `json:"box"`

	// Color summarizes the color at the center of the selected region.
	Color *imaging.ColorSample `json:"color,omitempty"`
}

// Artifacts exposes intermediate stage outputs of an invocation for
// callers that render diagnostics (edge-map export, annotated results).
// The measurement itself never depends on them.
type Artifacts struct {
	// Image is the decoded source raster.
	Image image.Image

	// Edges is the binary edge map the contours were traced from.
	Edges *imaging.EdgeMap
}

// Measure runs the full measurement pipeline over an encoded image.
//
// Stages: decode -> grayscale -> blur -> edge detection -> contour
// extraction -> largest-region selection -> bounding-box measurement.
// Each invocation allocates its own buffers, so concurrent calls need no
// synchronization.
//
// Returns ErrNoContourFound when no shape was detected and *DecodeError
// when the payload does not parse as the declared encoding.
func Measure(data []byte, mime imaging.MIMEType, cfg Config) (*Measurement, error) {
	m, _, err := MeasureWithArtifacts(data, mime, cfg)
	return m, err
}

// MeasureWithArtifacts behaves like Measure but additionally returns the
// decoded image and edge map. Artifacts are non-nil whenever decoding
// succeeded, including when the result is ErrNoContourFound.
func MeasureWithArtifacts(data []byte, mime imaging.MIMEType, cfg Config) (*Measurement, *Artifacts, error) {
	img, err := imaging.Decode(data, mime)
	if err != nil {
		return nil, nil, err
	}

	gray := imaging.Grayscale(img)
	blurred := gray.Blur()
	edges := imaging.DetectEdges(blurred, cfg.ThresholdLow, cfg.ThresholdHigh)
	artifacts := &Artifacts{Image: img, Edges: edges}

	contours := detection.FindContours(edges)
	largest, ok := detection.Largest(contours)
	if !ok {
		return nil, artifacts, ErrNoContourFound
	}

	// The traced contour follows the edge band around the region, not the
	// region itself; RegionBounds recovers the region's own box from the
	// interior the band encloses.
	box, _ := detection.RegionBounds(edges, largest)

	centerX := (box.X1 + box.X2) / 2
	centerY := (box.Y1 + box.Y2) / 2
	sample, err := imaging.SampleColor(img, centerX, centerY)
	if err != nil {
		return nil, artifacts, fmt.Errorf("sampling region center: %w", err)
	}

	return &Measurement{
		LengthCm: roundCm(float64(box.Width()) * cfg.ConversionFactor),
		WidthPx:  box.Width(),
		HeightPx: box.Height(),
		Box:      box,
		Color:    sample,
	}, artifacts, nil
}

// roundCm rounds to two decimal places, half away from zero.
func roundCm(v float64) float64 {
	return math.Round(v*100) / 100
}

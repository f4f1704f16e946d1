package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
)

// EdgeMap is a binary edge image: Edges[y][x] is true where an edge pixel
// was detected. Dimensions match the source image.
type EdgeMap struct {
	Width  int
	Height int
	Edges  [][]bool
}

// NewEdgeMap allocates an all-false edge map of the given dimensions.
func NewEdgeMap(width, height int) *EdgeMap {
	edges := make([][]bool, height)
	for y := range edges {
		edges[y] = make([]bool, width)
	}
	return &EdgeMap{Width: width, Height: height, Edges: edges}
}

// Empty reports whether the map contains no edge pixels at all.
func (em *EdgeMap) Empty() bool {
	for y := 0; y < em.Height; y++ {
		for x := 0; x < em.Width; x++ {
			if em.Edges[y][x] {
				return false
			}
		}
	}
	return true
}

// Image renders the edge map as a grayscale image with edges in white (255)
// and non-edges in black (0).
func (em *EdgeMap) Image() *image.Gray {
	out := image.NewGray(image.Rect(0, 0, em.Width, em.Height))
	for y := 0; y < em.Height; y++ {
		for x := 0; x < em.Width; x++ {
			if em.Edges[y][x] {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// EncodeBase64PNG renders the edge map and encodes it as a base64 PNG
// string, suitable for embedding in a JSON response.
func (em *EdgeMap) EncodeBase64PNG() (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, em.Image()); err != nil {
		return "", fmt.Errorf("failed to encode edge image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DetectEdges performs Canny-style edge detection on a smoothed intensity
// map, producing a binary edge map.
//
// Parameters:
//   - g: Source intensity map. Callers normally pass the output of
//     Grayscale followed by Blur.
//   - thresholdLow: Low hysteresis threshold (0-255). Gradient magnitudes
//     below this are discarded. Default for the pipeline: 50.
//   - thresholdHigh: High hysteresis threshold (0-255). Magnitudes above
//     this are definite edges. Default for the pipeline: 150.
//
// # Algorithm
//
//  1. Gradient computation: Sobel operators for X and Y gradients
//     magnitude = sqrt(Gx² + Gy²), direction = atan2(Gy, Gx)
//
//  2. Non-maximum suppression: Thin edges by keeping only local maxima in
//     the gradient direction. Comparison is >=, so equal-magnitude
//     plateaus survive on both sides. GrayMap values are quantized to
//     whole levels, which makes the two gradients straddling an ideal
//     step exactly equal; a straight step edge therefore leaves a
//     two-pixel band straddling the region boundary. Corners can keep
//     additional pixels one step further out, so a traced contour may
//     overshoot the underlying region by up to two pixels per side.
//
//  3. Hysteresis thresholding:
//     - Magnitudes above thresholdHigh are strong edges (always kept)
//     - Magnitudes between the thresholds are weak edges, kept only when
//     8-connected to a strong edge
//     - Magnitudes below thresholdLow are discarded
//
// Image border pixels are never edges: non-maximum suppression skips the
// outermost row and column on every side.
func DetectEdges(g *GrayMap, thresholdLow, thresholdHigh int) *EdgeMap {
	width := g.Width
	height := g.Height

	// Compute gradients using Sobel operator
	magnitude := make([][]float64, height)
	direction := make([][]float64, height)

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)

		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += g.Pix[py][px] * sobelX[ky+1][kx+1]
					gy += g.Pix[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]

			// Determine neighbors to compare based on gradient direction
			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			} else {
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}

	// Double threshold and edge tracking by hysteresis. Thresholds share
	// the intensity-level scale of GrayMap, so they compare directly.
	out := NewEdgeMap(width, height)
	lowThresh := float64(thresholdLow)
	highThresh := float64(thresholdHigh)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			val := suppressed[y][x]
			if val >= highThresh {
				out.Edges[y][x] = true
			} else if val >= lowThresh {
				// Weak edge: keep only if connected to a strong edge
				hasStrongNeighbor := false
				for ky := -1; ky <= 1 && !hasStrongNeighbor; ky++ {
					for kx := -1; kx <= 1 && !hasStrongNeighbor; kx++ {
						py := clamp(y+ky, 0, height-1)
						px := clamp(x+kx, 0, width-1)
						if suppressed[py][px] >= highThresh {
							hasStrongNeighbor = true
						}
					}
				}
				if hasStrongNeighbor {
					out.Edges[y][x] = true
				}
			}
		}
	}

	return out
}

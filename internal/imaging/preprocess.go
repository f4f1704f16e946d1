package imaging

import (
	"image"
	"math"
)

// GrayMap is a single-channel intensity map. Values are quantized to whole
// intensity levels in [0, 255], stored as float64 for the convolution
// stages.
//
// Quantization matters for edge detection downstream: integer levels keep
// convolution sums exact in float64, so symmetric gradients around an
// ideal step compare exactly equal instead of differing by rounding noise.
// Pix is addressed as Pix[y][x].
type GrayMap struct {
	Width  int
	Height int
	Pix    [][]float64
}

// NewGrayMap allocates a zeroed intensity map of the given dimensions.
func NewGrayMap(width, height int) *GrayMap {
	pix := make([][]float64, height)
	for y := range pix {
		pix[y] = make([]float64, width)
	}
	return &GrayMap{Width: width, Height: height, Pix: pix}
}

// Grayscale reduces an image to a single-channel intensity map using
// ITU-R BT.601 luminance weights (0.299*R + 0.587*G + 0.114*B), rounded
// to whole levels in [0, 255].
//
// The conversion is deterministic and takes no configuration. Output
// dimensions match the input.
func Grayscale(img image.Image) *GrayMap {
	bounds := img.Bounds()
	g := NewGrayMap(bounds.Dx(), bounds.Dy())

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			r, gc, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			rf := float64(r >> 8)
			gf := float64(gc >> 8)
			bf := float64(b >> 8)
			g.Pix[y][x] = math.Round(0.299*rf + 0.587*gf + 0.114*bf)
		}
	}
	return g
}

// blurKernel is the fixed 5x5 Gaussian smoothing kernel (sigma ~ 1.1,
// derived from the kernel size). Sum is 273, used for normalization.
var blurKernel = [5][5]float64{
	{1, 4, 7, 4, 1},
	{4, 16, 26, 16, 4},
	{7, 26, 41, 26, 7},
	{4, 16, 26, 16, 4},
	{1, 4, 7, 4, 1},
}

const blurKernelSum = 273.0

// Blur applies the fixed 5x5 Gaussian kernel to suppress sensor and
// compression noise before edge detection. The result is re-quantized to
// whole intensity levels, preserving the exactness guarantee of GrayMap.
//
// Border pixels use clamped (edge-replicating) padding so the image border
// itself never produces an artificial gradient. The receiver is not
// modified; a new map is returned.
func (g *GrayMap) Blur() *GrayMap {
	out := NewGrayMap(g.Width, g.Height)

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					py := clamp(y+ky, 0, g.Height-1)
					px := clamp(x+kx, 0, g.Width-1)
					sum += g.Pix[py][px] * blurKernel[ky+2][kx+2]
				}
			}
			out.Pix[y][x] = math.Round(sum / blurKernelSum)
		}
	}
	return out
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

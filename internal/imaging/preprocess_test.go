package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestGrayscale_LuminanceWeights(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want float64
	}{
		{"white", color.RGBA{255, 255, 255, 255}, 255},
		{"black", color.RGBA{0, 0, 0, 255}, 0},
		{"pure red", color.RGBA{255, 0, 0, 255}, 76},   // round(0.299 * 255)
		{"pure green", color.RGBA{0, 255, 0, 255}, 150}, // round(0.587 * 255)
		{"pure blue", color.RGBA{0, 0, 255, 255}, 29},   // round(0.114 * 255)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Grayscale(createInMemoryImage(4, 4, tt.c))

			if g.Width != 4 || g.Height != 4 {
				t.Fatalf("dimensions: got %dx%d, want 4x4", g.Width, g.Height)
			}
			if g.Pix[2][2] != tt.want {
				t.Errorf("intensity: got %v, want %v", g.Pix[2][2], tt.want)
			}
		})
	}
}

func TestGrayscale_QuantizedLevels(t *testing.T) {
	g := Grayscale(createInMemoryImage(3, 3, color.RGBA{200, 100, 50, 255}))

	v := g.Pix[1][1]
	if v != float64(int(v)) {
		t.Errorf("intensity %v is not a whole level", v)
	}
	if v < 0 || v > 255 {
		t.Errorf("intensity %v outside [0, 255]", v)
	}
}

func TestGrayscale_NonZeroOrigin(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 7, 15, 17))
	for y := 7; y < 17; y++ {
		for x := 5; x < 15; x++ {
			img.Set(x, y, color.White)
		}
	}

	g := Grayscale(img)

	if g.Width != 10 || g.Height != 10 {
		t.Fatalf("dimensions: got %dx%d, want 10x10", g.Width, g.Height)
	}
	if g.Pix[0][0] != 255 {
		t.Errorf("intensity at origin: got %v, want 255", g.Pix[0][0])
	}
}

func TestBlur_UniformInvariant(t *testing.T) {
	g := NewGrayMap(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			g.Pix[y][x] = 77
		}
	}

	blurred := g.Blur()

	// Clamped borders mean a uniform image stays uniform everywhere,
	// including the edges.
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if blurred.Pix[y][x] != 77 {
				t.Errorf("blurred[%d][%d]: got %v, want 77", y, x, blurred.Pix[y][x])
			}
		}
	}
}

func TestBlur_SpreadsSpot(t *testing.T) {
	g := NewGrayMap(11, 11)
	g.Pix[5][5] = 255

	blurred := g.Blur()

	// Center keeps the kernel's center weight: round(255 * 41 / 273).
	if blurred.Pix[5][5] != 38 {
		t.Errorf("center: got %v, want 38", blurred.Pix[5][5])
	}
	// Direct neighbors get round(255 * 26 / 273).
	if blurred.Pix[5][4] != 24 || blurred.Pix[5][6] != 24 || blurred.Pix[4][5] != 24 || blurred.Pix[6][5] != 24 {
		t.Error("direct neighbors should receive brightness from blur")
	}
	// Beyond the 5x5 support nothing changes.
	if blurred.Pix[5][8] != 0 {
		t.Errorf("outside kernel support: got %v, want 0", blurred.Pix[5][8])
	}
}

func TestBlur_DoesNotMutateInput(t *testing.T) {
	g := NewGrayMap(7, 7)
	g.Pix[3][3] = 255

	_ = g.Blur()

	if g.Pix[3][3] != 255 || g.Pix[3][4] != 0 {
		t.Error("Blur must not modify the receiver")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},   // within range
		{-1, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tt := range tests {
		got := clamp(tt.val, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%d, %d, %d): got %d, want %d",
				tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}

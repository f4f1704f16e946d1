package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// prepare runs the grayscale and blur stages, the normal input to
// DetectEdges.
func prepare(img image.Image) *GrayMap {
	return Grayscale(img).Blur()
}

func TestDetectEdges_UniformImage(t *testing.T) {
	g := prepare(createInMemoryImage(50, 50, color.RGBA{128, 128, 128, 255}))

	em := DetectEdges(g, 50, 150)

	if !em.Empty() {
		t.Error("uniform image should produce no edges")
	}
	if em.Width != 50 || em.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", em.Width, em.Height)
	}
}

func TestDetectEdges_VerticalStep(t *testing.T) {
	// Black left half, white right half; the step sits between x=49 and
	// x=50.
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x < 50 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}

	em := DetectEdges(prepare(img), 50, 150)

	// An ideal step leaves a two-pixel plateau straddling the boundary.
	if !em.Edges[50][49] || !em.Edges[50][50] {
		t.Error("expected edge pixels at x=49 and x=50")
	}
	if em.Edges[50][47] || em.Edges[50][52] {
		t.Error("edge band should not extend beyond the gradient plateau")
	}
}

func TestDetectEdges_BorderNeverEdges(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if x < 20 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}

	em := DetectEdges(prepare(img), 50, 150)

	for x := 0; x < 40; x++ {
		if em.Edges[0][x] || em.Edges[39][x] {
			t.Fatalf("border row contains an edge at x=%d", x)
		}
	}
	for y := 0; y < 40; y++ {
		if em.Edges[y][0] || em.Edges[y][39] {
			t.Fatalf("border column contains an edge at y=%d", y)
		}
	}
}

func TestDetectEdges_HighThresholdSuppresses(t *testing.T) {
	// A mild step: contrast too weak for a high threshold.
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			if x < 30 {
				img.Set(x, y, color.RGBA{120, 120, 120, 255})
			} else {
				img.Set(x, y, color.RGBA{135, 135, 135, 255})
			}
		}
	}

	strict := DetectEdges(prepare(img), 200, 250)
	if !strict.Empty() {
		t.Error("weak step should be below a 200/250 threshold pair")
	}

	lenient := DetectEdges(prepare(img), 5, 15)
	if lenient.Empty() {
		t.Error("weak step should be detected with a 5/15 threshold pair")
	}
}

func TestEdgeMap_Image(t *testing.T) {
	em := NewEdgeMap(10, 10)
	em.Edges[3][4] = true

	img := em.Image()

	if img.GrayAt(4, 3).Y != 255 {
		t.Error("edge pixel should render white")
	}
	if img.GrayAt(5, 5).Y != 0 {
		t.Error("non-edge pixel should render black")
	}
}

func TestEdgeMap_EncodeBase64PNG(t *testing.T) {
	em := NewEdgeMap(20, 10)
	em.Edges[5][5] = true

	encoded, err := em.EncodeBase64PNG()
	if err != nil {
		t.Fatalf("EncodeBase64PNG failed: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("result is not valid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("result is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 10 {
		t.Errorf("decoded dimensions: got %dx%d, want 20x10",
			img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestEdgeMap_Empty(t *testing.T) {
	em := NewEdgeMap(5, 5)
	if !em.Empty() {
		t.Error("fresh map should be empty")
	}

	em.Edges[2][2] = true
	if em.Empty() {
		t.Error("map with one edge pixel should not be empty")
	}
}

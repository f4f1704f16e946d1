package detection

import (
	"testing"

	"github.com/dougdotcon/footsizer-backend/internal/imaging"
)

// edgeMapWithBand builds an edge map with a two-pixel-thick band around
// the region at the given inclusive bounds, the way the edge detector
// outlines a step region: the band covers the region's outermost pixels
// plus the background ring next to them.
func edgeMapWithBand(width, height int, region Bounds) *imaging.EdgeMap {
	em := imaging.NewEdgeMap(width, height)
	outer := Bounds{X1: region.X1 - 1, Y1: region.Y1 - 1, X2: region.X2 + 1, Y2: region.Y2 + 1}
	for y := outer.Y1; y <= outer.Y2; y++ {
		for x := outer.X1; x <= outer.X2; x++ {
			onBand := x <= region.X1 || x >= region.X2 || y <= region.Y1 || y >= region.Y2
			if onBand {
				em.Edges[y][x] = true
			}
		}
	}
	return em
}

func TestRegionBounds_TwoPixelBand(t *testing.T) {
	region := Bounds{X1: 10, Y1: 10, X2: 29, Y2: 19}
	em := edgeMapWithBand(50, 40, region)

	contours := FindContours(em)
	largest, ok := Largest(contours)
	if !ok {
		t.Fatal("expected a contour")
	}

	got, enclosed := RegionBounds(em, largest)
	if !enclosed {
		t.Fatal("band around a region must enclose an interior")
	}
	if got != region {
		t.Errorf("region bounds: got %+v, want %+v", got, region)
	}
}

func TestRegionBounds_IgnoresCornerSpill(t *testing.T) {
	// Corner pixels one step outside the band widen the contour's bounding
	// box but must not move the derived region bounds.
	region := Bounds{X1: 10, Y1: 10, X2: 29, Y2: 19}
	em := edgeMapWithBand(50, 40, region)
	em.Edges[8][8] = true
	em.Edges[8][31] = true
	em.Edges[21][8] = true
	em.Edges[21][31] = true

	contours := FindContours(em)
	largest, ok := Largest(contours)
	if !ok {
		t.Fatal("expected a contour")
	}
	if box := largest.BoundingBox(); box != (Bounds{X1: 8, Y1: 8, X2: 31, Y2: 21}) {
		t.Fatalf("contour box should include the spill pixels, got %+v", box)
	}

	got, enclosed := RegionBounds(em, largest)
	if !enclosed {
		t.Fatal("expected an enclosed interior")
	}
	if got != region {
		t.Errorf("region bounds: got %+v, want %+v", got, region)
	}
}

func TestRegionBounds_OnePixelRing(t *testing.T) {
	want := Bounds{X1: 10, Y1: 10, X2: 30, Y2: 20}
	em := edgeMapWithRing(50, 40, want)

	contours := FindContours(em)
	largest, ok := Largest(contours)
	if !ok {
		t.Fatal("expected a contour")
	}

	got, enclosed := RegionBounds(em, largest)
	if !enclosed {
		t.Fatal("a closed ring must enclose an interior")
	}
	if got != want {
		t.Errorf("region bounds: got %+v, want %+v", got, want)
	}
}

func TestRegionBounds_OpenShapesFallBack(t *testing.T) {
	em := imaging.NewEdgeMap(30, 30)
	// A thin line encloses nothing.
	for y := 5; y <= 15; y++ {
		em.Edges[y][12] = true
	}

	contours := FindContours(em)
	largest, ok := Largest(contours)
	if !ok {
		t.Fatal("expected a contour")
	}

	got, enclosed := RegionBounds(em, largest)
	if enclosed {
		t.Error("a line must not report an enclosed interior")
	}
	if got != largest.BoundingBox() {
		t.Errorf("fallback bounds: got %+v, want the contour box %+v", got, largest.BoundingBox())
	}
}

func TestRegionBounds_IsolatedPixel(t *testing.T) {
	em := imaging.NewEdgeMap(10, 10)
	em.Edges[4][4] = true

	contours := FindContours(em)
	got, enclosed := RegionBounds(em, contours[0])

	if enclosed {
		t.Error("a single pixel must not report an enclosed interior")
	}
	if got.Width() != 1 || got.Height() != 1 {
		t.Errorf("fallback bounds: got %+v, want 1x1", got)
	}
}

package detection

import (
	"github.com/dougdotcon/footsizer-backend/internal/imaging"
)

// RegionBounds derives the bounding box of the image region outlined by a
// contour.
//
// The edge band traced by FindContours straddles the underlying region's
// boundary: on a straight step the band covers the region's outermost
// pixel plus the background pixel next to it, and corners can keep pixels
// one step further out. The raw contour bounding box therefore overshoots
// the region, and by an amount that depends on the local shape. What does
// not depend on shape is the band's inner rim: it always sits on the
// region's outermost pixels, so the hole enclosed by the band is the
// region eroded by exactly one pixel per side.
//
// RegionBounds flood-fills the non-edge pixels reachable from the rim of
// the contour's bounding box (4-connected); the unreached non-edge pixels
// are the enclosed hole. Growing the hole's box by one pixel on each side
// recovers the region's true bounds.
//
// Contours that enclose nothing (thin lines, isolated pixels, open arcs)
// have no hole; for those the raw contour bounding box is returned and the
// second return value is false.
func RegionBounds(em *imaging.EdgeMap, c Contour) (Bounds, bool) {
	box := c.BoundingBox()
	w := box.Width()
	h := box.Height()

	reached := make([][]bool, h)
	for j := range reached {
		reached[j] = make([]bool, w)
	}

	// Seed the flood from every rim cell of the box.
	stack := make([]Point, 0, 2*(w+h))
	for i := 0; i < w; i++ {
		stack = append(stack, Point{X: i, Y: 0}, Point{X: i, Y: h - 1})
	}
	for j := 0; j < h; j++ {
		stack = append(stack, Point{X: 0, Y: j}, Point{X: w - 1, Y: j})
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		if reached[p.Y][p.X] || em.Edges[box.Y1+p.Y][box.X1+p.X] {
			continue
		}
		reached[p.Y][p.X] = true

		stack = append(stack,
			Point{X: p.X - 1, Y: p.Y},
			Point{X: p.X + 1, Y: p.Y},
			Point{X: p.X, Y: p.Y - 1},
			Point{X: p.X, Y: p.Y + 1},
		)
	}

	found := false
	var hole Bounds
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			if reached[j][i] || em.Edges[box.Y1+j][box.X1+i] {
				continue
			}
			x := box.X1 + i
			y := box.Y1 + j
			if !found {
				hole = Bounds{X1: x, Y1: y, X2: x, Y2: y}
				found = true
				continue
			}
			if x < hole.X1 {
				hole.X1 = x
			}
			if x > hole.X2 {
				hole.X2 = x
			}
			if y < hole.Y1 {
				hole.Y1 = y
			}
			if y > hole.Y2 {
				hole.Y2 = y
			}
		}
	}
	if !found {
		return box, false
	}

	return Bounds{X1: hole.X1 - 1, Y1: hole.Y1 - 1, X2: hole.X2 + 1, Y2: hole.Y2 + 1}, true
}

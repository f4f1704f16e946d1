package detection

import (
	"math"

	"github.com/dougdotcon/footsizer-backend/internal/imaging"
)

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Bounds represents a rectangular bounding box in pixel coordinates.
// All four edges are inclusive: a single-pixel contour has X1 == X2.
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (inclusive)
	Y2 int `json:"y2"` // Bottom edge (inclusive)
}

// Width is the horizontal pixel extent of the box (X2 - X1 + 1).
func (b Bounds) Width() int { return b.X2 - b.X1 + 1 }

// Height is the vertical pixel extent of the box (Y2 - Y1 + 1).
func (b Bounds) Height() int { return b.Y2 - b.Y1 + 1 }

// Contour is the ordered outer boundary of a connected edge region.
//
// Points form a closed curve (the last point connects back to the first)
// and are simplified: intermediate points on straight runs are dropped, so
// only the points needed to describe each segment remain. A contour never
// outlives the pipeline invocation that produced it.
type Contour struct {
	Points []Point
}

// Area returns the absolute area enclosed by the boundary polygon,
// computed with the shoelace formula. Degenerate contours (single pixels,
// straight lines) have zero area.
func (c Contour) Area() float64 {
	pts := c.Points
	if len(pts) < 3 {
		return 0
	}
	var sum float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += float64(p.X*q.Y - q.X*p.Y)
	}
	return math.Abs(sum) / 2
}

// BoundingBox returns the smallest axis-aligned rectangle enclosing the
// contour. Simplification preserves extreme points, so the box computed
// from the simplified chain equals the box of the full boundary.
func (c Contour) BoundingBox() Bounds {
	b := Bounds{X1: c.Points[0].X, Y1: c.Points[0].Y, X2: c.Points[0].X, Y2: c.Points[0].Y}
	for _, p := range c.Points[1:] {
		if p.X < b.X1 {
			b.X1 = p.X
		}
		if p.X > b.X2 {
			b.X2 = p.X
		}
		if p.Y < b.Y1 {
			b.Y1 = p.Y
		}
		if p.Y > b.Y2 {
			b.Y2 = p.Y
		}
	}
	return b
}

// mooreNeighbors lists the 8-neighborhood offsets in clockwise order
// starting from west. Boundary tracing walks this ring.
var mooreNeighbors = [8]Point{
	{-1, 0},  // W
	{-1, -1}, // NW
	{0, -1},  // N
	{1, -1},  // NE
	{1, 0},   // E
	{1, 1},   // SE
	{0, 1},   // S
	{-1, 1},  // SW
}

// FindContours extracts the outer boundary of every 8-connected edge
// region in an edge map.
//
// Returns contours in raster-scan order of each component's first edge
// pixel. An edge map with no edge pixels yields an empty slice, which is a
// valid result and not an error.
//
// # Algorithm
//
//  1. Scan the map in raster order for an unvisited edge pixel. Because of
//     the scan order this pixel lies on the component's outer boundary.
//  2. Trace the outer boundary clockwise with Moore-neighbor following,
//     stopping when the start pixel is re-entered from the original
//     direction (Jacob's stopping criterion).
//  3. Simplify the traced chain by dropping points that continue a
//     straight run.
//  4. Flood-fill the whole component as visited so nested inner boundaries
//     are consumed without being reported.
func FindContours(em *imaging.EdgeMap) []Contour {
	visited := make([][]bool, em.Height)
	for y := range visited {
		visited[y] = make([]bool, em.Width)
	}

	var contours []Contour
	for y := 0; y < em.Height; y++ {
		for x := 0; x < em.Width; x++ {
			if !em.Edges[y][x] || visited[y][x] {
				continue
			}
			boundary := traceBoundary(em, Point{X: x, Y: y})
			contours = append(contours, Contour{Points: simplify(boundary)})
			consumeComponent(em, visited, x, y)
		}
	}
	return contours
}

// traceBoundary walks the outer boundary of the component containing
// start, clockwise, and returns the ordered closed point sequence.
//
// start must be the component's first pixel in raster order, which
// guarantees its west neighbor is background and makes west a valid
// initial backtrack position.
func traceBoundary(em *imaging.EdgeMap, start Point) []Point {
	isEdge := func(p Point) bool {
		return p.X >= 0 && p.X < em.Width && p.Y >= 0 && p.Y < em.Height && em.Edges[p.Y][p.X]
	}

	boundary := []Point{start}

	// Direction index of the backtrack (background) neighbor relative to
	// the current pixel. Entering from the west means backtrack index 0.
	cur := start
	backtrack := 0

	// Stop when the walk is about to re-traverse the first boundary edge
	// (start -> boundary[1]); that means the loop is closed. Matching the
	// edge rather than just the start pixel keeps one-pixel-wide spurs
	// from terminating the walk early or never.
	maxSteps := 4*em.Width*em.Height + 8
	for step := 0; step < maxSteps; step++ {
		found := false
		var next Point
		nextBacktrack := backtrack
		for i := 1; i <= 8; i++ {
			dir := (backtrack + i) % 8
			cand := Point{X: cur.X + mooreNeighbors[dir].X, Y: cur.Y + mooreNeighbors[dir].Y}
			if isEdge(cand) {
				next = cand
				// New backtrack: the background neighbor examined just
				// before this one, expressed relative to next.
				prevDir := (backtrack + i - 1) % 8
				prev := Point{X: cur.X + mooreNeighbors[prevDir].X, Y: cur.Y + mooreNeighbors[prevDir].Y}
				nextBacktrack = directionOf(next, prev)
				found = true
				break
			}
		}
		if !found {
			// Isolated pixel
			return boundary
		}

		if cur == start && len(boundary) > 1 && next == boundary[1] {
			break
		}
		boundary = append(boundary, next)
		cur = next
		backtrack = nextBacktrack
	}

	// The closing step re-appends the start pixel; drop the duplicate so
	// the chain stays a clean closed curve.
	if len(boundary) > 1 && boundary[len(boundary)-1] == boundary[0] {
		boundary = boundary[:len(boundary)-1]
	}
	return boundary
}

// directionOf returns the mooreNeighbors index of neighbor relative to
// center. Falls back to west when the two pixels are not adjacent, which
// cannot happen for pixels produced by the tracing loop.
func directionOf(center, neighbor Point) int {
	dx := neighbor.X - center.X
	dy := neighbor.Y - center.Y
	for i, off := range mooreNeighbors {
		if off.X == dx && off.Y == dy {
			return i
		}
	}
	return 0
}

// simplify drops intermediate points on straight runs, keeping only the
// points needed to describe each segment. The first point (the raster-scan
// anchor) is always kept so discovery order stays observable.
func simplify(boundary []Point) []Point {
	if len(boundary) < 3 {
		return boundary
	}

	out := []Point{boundary[0]}
	for i := 1; i < len(boundary); i++ {
		prev := out[len(out)-1]
		cur := boundary[i]
		next := boundary[(i+1)%len(boundary)]

		// cur is redundant when it lies on the straight step run from
		// prev to next.
		d1x, d1y := sign(cur.X-prev.X), sign(cur.Y-prev.Y)
		d2x, d2y := sign(next.X-cur.X), sign(next.Y-cur.Y)
		if d1x == d2x && d1y == d2y {
			continue
		}
		out = append(out, cur)
	}
	return out
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// consumeComponent marks every edge pixel 8-connected to (startX, startY)
// as visited. Iterative stack-based flood fill, so large regions cannot
// overflow the call stack.
func consumeComponent(em *imaging.EdgeMap, visited [][]bool, startX, startY int) {
	stack := []Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= em.Width || p.Y < 0 || p.Y >= em.Height {
			continue
		}
		if visited[p.Y][p.X] || !em.Edges[p.Y][p.X] {
			continue
		}
		visited[p.Y][p.X] = true

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
}

// Largest selects the contour with the strictly maximum enclosed area.
//
// Ties are broken by discovery order: the contour whose first boundary
// pixel was encountered earliest in the raster scan wins. The second
// return value is false for an empty input slice.
func Largest(contours []Contour) (Contour, bool) {
	if len(contours) == 0 {
		return Contour{}, false
	}
	best := contours[0]
	bestArea := best.Area()
	for _, c := range contours[1:] {
		if a := c.Area(); a > bestArea {
			best = c
			bestArea = a
		}
	}
	return best, true
}

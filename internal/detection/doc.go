// Package detection provides contour extraction and region selection for
// the foot measurement pipeline.
//
// The package consumes binary edge maps produced by the imaging package and
// turns them into closed boundary curves (contours) with derived areas and
// bounding boxes.
//
// # Traversal Order
//
// Contours are discovered in raster-scan order of each connected
// component's first edge pixel (topmost row first, then leftmost column).
// This order is part of the package contract: when two contours enclose
// exactly the same area, Largest keeps the one discovered first, so
// selection is deterministic for identical inputs.
//
// # Outer Boundaries Only
//
// Each 8-connected component contributes exactly one contour: its outer
// boundary, traced clockwise with Moore-neighbor following. The rest of the
// component, including any inner (nested) boundaries, is consumed and never
// reported.
//
// # Coordinate System
//
// All coordinates use the standard image convention: origin (0, 0) at the
// top-left corner, X increasing rightward, Y increasing downward. Bounding
// boxes are inclusive on all four edges.
package detection

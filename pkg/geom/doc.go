// Package geom defines the placement and rectangle primitives shared by the
// floatplace pipeline and its middlewares.
//
// # Placements
//
// A [Placement] combines the [Side] of the reference element the floating
// element is anchored to with an optional [Alignment] along the cross axis:
//
//	geom.Top          // "top"
//	geom.RightEnd     // "right-end"
//	geom.BottomStart  // "bottom-start"
//
// The main axis is the axis along which the floating element is pushed away
// from its reference: vertical (y) for top/bottom placements, horizontal (x)
// for left/right placements. The cross axis is perpendicular to it.
//
// # Rectangles
//
// [Rect] is an axis-aligned rectangle. [ElementRects] pairs the reference and
// floating rectangles of a single pipeline pass, and [Coords] is a 2D delta or
// position.
package geom

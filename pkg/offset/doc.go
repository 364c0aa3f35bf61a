// Package offset displaces a floating element from its reference element.
//
// An offset is specified along two abstract axes: the main axis, which pushes
// the floating element away from (positive) or toward (negative) the
// reference side it is placed against, and the cross axis, perpendicular to
// it. For aligned placements (start/end), AlignmentOffset replaces CrossAxis
// and moves the floating element away from the aligned edge.
//
// # Specs
//
// A [Spec] is one of:
//
//	offset.Number(8)                                   // main axis only
//	offset.Record{MainAxis: 8, CrossAxis: 4}           // per-axis values
//	offset.Func(func(a offset.Args) offset.Value {...}) // evaluated every pass
//
// [Resolve] converts a spec into an absolute x/y delta for a placement.
// [New] wraps it as a pipeline middleware named "offset".
package offset

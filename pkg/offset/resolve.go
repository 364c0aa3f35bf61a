package offset

import "github.com/matzehuels/floatplace/pkg/geom"

// Resolve converts spec into an x/y delta for placement.
//
// The main axis value is negated for the top and left sides, where moving
// away from the reference decreases the coordinate. For aligned placements
// the cross axis value is AlignmentOffset, negated for end alignment. When
// rtl is set and the main axis is vertical, the cross axis is mirrored.
//
// Values are not range-checked: negative offsets pull the floating element
// toward the reference and NaN propagates into the result.
func Resolve(placement geom.Placement, rects geom.ElementRects, spec Spec, rtl bool) geom.Coords {
	side := placement.Side()
	alignment := placement.Alignment()
	vertical := placement.IsMainAxisVertical()

	mainSign := 1.0
	if side == geom.SideLeft || side == geom.SideTop {
		mainSign = -1
	}
	crossSign := 1.0
	if rtl && vertical {
		crossSign = -1
	}

	v := Normalize(spec, Args{
		Floating:  rects.Floating,
		Reference: rects.Reference,
		Placement: placement,
	})

	mainAxis, crossAxis := v.MainAxis, v.CrossAxis
	switch alignment {
	case geom.AlignStart:
		crossAxis = v.AlignmentOffset
	case geom.AlignEnd:
		crossAxis = -v.AlignmentOffset
	}

	if vertical {
		return geom.Coords{X: crossAxis * crossSign, Y: mainAxis * mainSign}
	}
	return geom.Coords{X: mainAxis * mainSign, Y: crossAxis * crossSign}
}

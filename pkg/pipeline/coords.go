package pipeline

import "github.com/matzehuels/floatplace/pkg/geom"

// InitialCoords returns the floating element position that places it against
// the placement's side of the reference, centered on the cross axis, then
// shifted so its start or end edge lines up with the reference's.
//
// Under right-to-left layout the start/end shift is mirrored for top and
// bottom placements, whose cross axis is horizontal.
func InitialCoords(rects geom.ElementRects, placement geom.Placement, rtl bool) geom.Coords {
	ref, fl := rects.Reference, rects.Floating
	centerX := ref.X + ref.Width/2 - fl.Width/2
	centerY := ref.Y + ref.Height/2 - fl.Height/2

	var coords geom.Coords
	switch placement.Side() {
	case geom.SideTop:
		coords = geom.Coords{X: centerX, Y: ref.Y - fl.Height}
	case geom.SideBottom:
		coords = geom.Coords{X: centerX, Y: ref.Bottom()}
	case geom.SideRight:
		coords = geom.Coords{X: ref.Right(), Y: centerY}
	case geom.SideLeft:
		coords = geom.Coords{X: ref.X - fl.Width, Y: centerY}
	default:
		coords = geom.Coords{X: ref.X, Y: ref.Y}
	}

	cross := placement.CrossAxis()
	commonAlign := ref.Length(cross)/2 - fl.Length(cross)/2
	if rtl && placement.IsMainAxisVertical() {
		commonAlign = -commonAlign
	}

	switch placement.Alignment() {
	case geom.AlignStart:
		coords = coords.Set(cross, coords.Get(cross)-commonAlign)
	case geom.AlignEnd:
		coords = coords.Set(cross, coords.Get(cross)+commonAlign)
	}
	return coords
}

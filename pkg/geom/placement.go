package geom

import (
	"fmt"
	"strings"
)

// Side is the edge of the reference element the floating element is placed against.
type Side string

// Sides.
const (
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

// Alignment positions the floating element along the cross axis.
// The zero value means centered.
type Alignment string

// Alignments.
const (
	AlignNone  Alignment = ""
	AlignStart Alignment = "start"
	AlignEnd   Alignment = "end"
)

// Axis names a geometric axis.
type Axis string

// Axes.
const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Placement is a side with an optional alignment, e.g. "top" or "left-end".
type Placement string

// Valid placements.
const (
	Top         Placement = "top"
	TopStart    Placement = "top-start"
	TopEnd      Placement = "top-end"
	Right       Placement = "right"
	RightStart  Placement = "right-start"
	RightEnd    Placement = "right-end"
	Bottom      Placement = "bottom"
	BottomStart Placement = "bottom-start"
	BottomEnd   Placement = "bottom-end"
	Left        Placement = "left"
	LeftStart   Placement = "left-start"
	LeftEnd     Placement = "left-end"
)

// Placements lists every valid placement in clockwise side order.
var Placements = []Placement{
	Top, TopStart, TopEnd,
	Right, RightStart, RightEnd,
	Bottom, BottomStart, BottomEnd,
	Left, LeftStart, LeftEnd,
}

var validPlacements = func() map[Placement]bool {
	m := make(map[Placement]bool, len(Placements))
	for _, p := range Placements {
		m[p] = true
	}
	return m
}()

// ParsePlacement validates s and returns it as a Placement.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParsePlacement(s string) (Placement, error) {
	p := Placement(strings.ToLower(strings.TrimSpace(s)))
	if !validPlacements[p] {
		return "", fmt.Errorf("invalid placement: %q", s)
	}
	return p, nil
}

// Valid reports whether p is one of the twelve known placements.
func (p Placement) Valid() bool { return validPlacements[p] }

// Side returns the side component of p.
func (p Placement) Side() Side {
	side, _, _ := strings.Cut(string(p), "-")
	return Side(side)
}

// Alignment returns the alignment component of p, or AlignNone.
func (p Placement) Alignment() Alignment {
	_, align, _ := strings.Cut(string(p), "-")
	return Alignment(align)
}

// MainAxis returns the axis the floating element is pushed along.
func (p Placement) MainAxis() Axis {
	switch p.Side() {
	case SideTop, SideBottom:
		return AxisY
	default:
		return AxisX
	}
}

// CrossAxis returns the axis perpendicular to the main axis.
func (p Placement) CrossAxis() Axis {
	if p.MainAxis() == AxisY {
		return AxisX
	}
	return AxisY
}

// IsMainAxisVertical reports whether the main axis is y (top/bottom placements).
func (p Placement) IsMainAxisVertical() bool { return p.MainAxis() == AxisY }

// WithAlignment returns the placement on the same side with the given alignment.
func (p Placement) WithAlignment(a Alignment) Placement {
	if a == AlignNone {
		return Placement(p.Side())
	}
	return Placement(string(p.Side()) + "-" + string(a))
}

// String implements fmt.Stringer.
func (p Placement) String() string { return string(p) }

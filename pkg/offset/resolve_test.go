package offset

import (
	"math"
	"testing"

	"github.com/matzehuels/floatplace/pkg/geom"
)

var testRects = geom.ElementRects{
	Reference: geom.Rect{X: 100, Y: 100, Width: 80, Height: 40},
	Floating:  geom.Rect{X: 0, Y: 0, Width: 120, Height: 60},
}

func TestResolveScenarios(t *testing.T) {
	tests := []struct {
		name      string
		placement geom.Placement
		spec      Spec
		rtl       bool
		want      geom.Coords
	}{
		{"top number", geom.Top, Number(10), false, geom.Coords{X: 0, Y: -10}},
		{"bottom number", geom.Bottom, Number(10), false, geom.Coords{X: 0, Y: 10}},
		{"right-end alignment", geom.RightEnd, Record{AlignmentOffset: 5}, false, geom.Coords{X: 0, Y: -5}},
		{"left-start alignment", geom.LeftStart, Record{AlignmentOffset: 5}, false, geom.Coords{X: 0, Y: 5}},
		{"top-end rtl", geom.TopEnd, Record{MainAxis: 4, AlignmentOffset: 3}, true, geom.Coords{X: 3, Y: -4}},
		{"left number", geom.Left, Number(7), false, geom.Coords{X: -7, Y: 0}},
		{"right number", geom.Right, Number(7), false, geom.Coords{X: 7, Y: 0}},
		{"bottom cross axis", geom.Bottom, Record{MainAxis: 2, CrossAxis: 6}, false, geom.Coords{X: 6, Y: 2}},
		{"right cross axis", geom.Right, Record{MainAxis: 2, CrossAxis: 6}, false, geom.Coords{X: 2, Y: 6}},
		{"negative passes through", geom.Bottom, Number(-12), false, geom.Coords{X: 0, Y: -12}},
		{"nil spec", geom.TopStart, nil, false, geom.Coords{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.placement, testRects, tt.spec, tt.rtl)
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveNumberIsMainAxisOnly(t *testing.T) {
	const n = 9.5
	for _, p := range geom.Placements {
		if p.Alignment() != geom.AlignNone {
			continue
		}
		t.Run(string(p), func(t *testing.T) {
			got := Resolve(p, testRects, Number(n), false)

			sign := 1.0
			if p.Side() == geom.SideLeft || p.Side() == geom.SideTop {
				sign = -1
			}
			main, cross := got.Get(p.MainAxis()), got.Get(p.CrossAxis())
			if main != n*sign {
				t.Errorf("main axis = %v, want %v", main, n*sign)
			}
			if cross != 0 {
				t.Errorf("cross axis = %v, want 0", cross)
			}
		})
	}
}

func TestResolveAlignmentOverridesCrossAxis(t *testing.T) {
	spec := Record{CrossAxis: 50, AlignmentOffset: 2}

	got := Resolve(geom.BottomStart, testRects, spec, false)
	if got.X != 2 {
		t.Errorf("aligned cross axis = %v, want alignment offset 2", got.X)
	}

	got = Resolve(geom.Bottom, testRects, spec, false)
	if got.X != 50 {
		t.Errorf("centered cross axis = %v, want cross axis 50", got.X)
	}
}

func TestResolveEndNegatesAlignmentOffset(t *testing.T) {
	for _, side := range []geom.Side{geom.SideTop, geom.SideRight, geom.SideBottom, geom.SideLeft} {
		p := geom.Placement(side)
		for _, k := range []float64{0, 3, -8.25} {
			end := Resolve(p.WithAlignment(geom.AlignEnd), testRects, Record{AlignmentOffset: k}, false)
			start := Resolve(p.WithAlignment(geom.AlignStart), testRects, Record{AlignmentOffset: -k}, false)
			if end != start {
				t.Errorf("%s k=%v: end %+v != start with -k %+v", side, k, end, start)
			}
		}
	}
}

func TestResolveRTL(t *testing.T) {
	spec := Record{MainAxis: 5, CrossAxis: 3, AlignmentOffset: 4}

	for _, p := range geom.Placements {
		t.Run(string(p), func(t *testing.T) {
			ltr := Resolve(p, testRects, spec, false)
			rtl := Resolve(p, testRects, spec, true)

			if p.IsMainAxisVertical() {
				if rtl.X != -ltr.X {
					t.Errorf("cross axis not mirrored: ltr %v, rtl %v", ltr.X, rtl.X)
				}
				if rtl.Y != ltr.Y {
					t.Errorf("main axis changed under rtl: ltr %v, rtl %v", ltr.Y, rtl.Y)
				}
				return
			}
			if rtl != ltr {
				t.Errorf("rtl should not affect %s: ltr %+v, rtl %+v", p, ltr, rtl)
			}
		})
	}
}

func TestResolveIsPure(t *testing.T) {
	spec := Record{MainAxis: 1, CrossAxis: 2, AlignmentOffset: 3}
	for _, p := range geom.Placements {
		first := Resolve(p, testRects, spec, true)
		second := Resolve(p, testRects, spec, true)
		if first != second {
			t.Errorf("%s: %+v != %+v", p, first, second)
		}
	}
}

func TestResolveFuncEvaluatedEveryCall(t *testing.T) {
	calls := 0
	spec := Func(func(a Args) Value {
		calls++
		return Number(float64(calls))
	})

	const n = 5
	for i := 1; i <= n; i++ {
		got := Resolve(geom.Bottom, testRects, spec, false)
		if got.Y != float64(i) {
			t.Errorf("call %d: y = %v, want %v", i, got.Y, i)
		}
	}
	if calls != n {
		t.Errorf("calls = %d, want %d", calls, n)
	}
}

func TestResolveFuncReceivesGeometry(t *testing.T) {
	var got Args
	spec := Func(func(a Args) Value {
		got = a
		return Record{MainAxis: a.Floating.Height / 2}
	})

	delta := Resolve(geom.TopStart, testRects, spec, false)

	if got.Placement != geom.TopStart {
		t.Errorf("Placement = %q, want top-start", got.Placement)
	}
	if got.Floating != testRects.Floating || got.Reference != testRects.Reference {
		t.Errorf("rects = %+v / %+v", got.Floating, got.Reference)
	}
	if delta.Y != -30 {
		t.Errorf("y = %v, want -30", delta.Y)
	}
}

func TestResolveFuncReturningNil(t *testing.T) {
	spec := Func(func(Args) Value { return nil })
	if got := Resolve(geom.Right, testRects, spec, false); got != (geom.Coords{}) {
		t.Errorf("Resolve() = %+v, want zero", got)
	}
}

func TestResolveNaNPropagates(t *testing.T) {
	got := Resolve(geom.Bottom, testRects, Number(math.NaN()), false)
	if !math.IsNaN(got.Y) {
		t.Errorf("y = %v, want NaN", got.Y)
	}
}

func TestNormalize(t *testing.T) {
	args := Args{Placement: geom.Top}
	if got := Normalize(Number(3), args); got != (Record{MainAxis: 3}) {
		t.Errorf("Normalize(Number) = %+v", got)
	}
	if got := Normalize(Record{CrossAxis: 2}, args); got != (Record{CrossAxis: 2}) {
		t.Errorf("Normalize(Record) = %+v", got)
	}
	if got := Normalize(nil, args); got != (Record{}) {
		t.Errorf("Normalize(nil) = %+v", got)
	}
	if got := Normalize(Func(nil), args); got != (Record{}) {
		t.Errorf("Normalize(nil Func) = %+v", got)
	}
}

func TestIsDynamic(t *testing.T) {
	if IsDynamic(Number(1)) || IsDynamic(Record{}) || IsDynamic(nil) {
		t.Error("static specs should not be dynamic")
	}
	if !IsDynamic(Func(func(Args) Value { return Number(0) })) {
		t.Error("Func should be dynamic")
	}
}

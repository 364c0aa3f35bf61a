package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/floatplace/pkg/geom"
)

var testRects = geom.ElementRects{
	Reference: geom.Rect{X: 100, Y: 100, Width: 80, Height: 40},
	Floating:  geom.Rect{Width: 40, Height: 20},
}

type staticPlatform struct {
	rtl   bool
	err   error
	calls int
}

func (p *staticPlatform) IsRTL(context.Context, Element) (bool, error) {
	p.calls++
	return p.rtl, p.err
}

func shift(name string, dx, dy float64) Middleware {
	return Middleware{
		Name:    name,
		Options: map[string]float64{"dx": dx, "dy": dy},
		Fn: func(_ context.Context, s State) (Return, error) {
			return Return{X: s.X + dx, Y: s.Y + dy, Data: geom.Coords{X: dx, Y: dy}}, nil
		},
	}
}

func TestComputeAccumulates(t *testing.T) {
	cfg := Config{
		Placement:  geom.Bottom,
		Rects:      testRects,
		Middleware: []Middleware{shift("a", 1, 2), shift("b", 10, 20)},
	}

	result, err := Compute(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	if result.Initial != (geom.Coords{X: 120, Y: 140}) {
		t.Errorf("Initial = %+v", result.Initial)
	}
	if result.X != 131 || result.Y != 162 {
		t.Errorf("final = (%v, %v), want (131, 162)", result.X, result.Y)
	}
	if len(result.Steps) != 2 || result.Steps[1].Delta != (geom.Coords{X: 10, Y: 20}) {
		t.Errorf("Steps = %+v", result.Steps)
	}
	if d, ok := DataAs[geom.Coords](result, "a"); !ok || d != (geom.Coords{X: 1, Y: 2}) {
		t.Errorf("DataAs(a) = %+v, %v", d, ok)
	}
	if _, ok := DataAs[string](result, "a"); ok {
		t.Error("DataAs with wrong type should fail")
	}
}

func TestComputeSeesEarlierData(t *testing.T) {
	var seen any
	reader := Middleware{
		Name: "reader",
		Fn: func(_ context.Context, s State) (Return, error) {
			seen = s.MiddlewareData["a"]
			return Return{X: s.X, Y: s.Y}, nil
		},
	}

	cfg := Config{Rects: testRects, Middleware: []Middleware{shift("a", 3, 4), reader}}
	if _, err := Compute(context.Background(), cfg); err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if seen != (geom.Coords{X: 3, Y: 4}) {
		t.Errorf("reader saw %#v", seen)
	}
}

func TestComputeDefaults(t *testing.T) {
	result, err := Compute(context.Background(), Config{Rects: testRects})
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if result.Placement != DefaultPlacement {
		t.Errorf("Placement = %q, want %q", result.Placement, DefaultPlacement)
	}
	if len(result.Steps) != 0 {
		t.Errorf("Steps = %+v, want none", result.Steps)
	}
}

func TestComputeMiddlewareError(t *testing.T) {
	boom := errors.New("boom")
	failing := Middleware{
		Name: "failing",
		Fn: func(context.Context, State) (Return, error) {
			return Return{}, boom
		},
	}

	_, err := Compute(context.Background(), Config{Rects: testRects, Middleware: []Middleware{failing}})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
	if !strings.Contains(err.Error(), "failing") {
		t.Errorf("err = %q, should name the middleware", err)
	}
}

func TestComputePlatformError(t *testing.T) {
	boom := errors.New("no layout")
	_, err := Compute(context.Background(), Config{Rects: testRects, Platform: &staticPlatform{err: boom}})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped platform error", err)
	}
}

func TestComputeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Compute(ctx, Config{Rects: testRects, Middleware: []Middleware{shift("a", 1, 1)}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Placement: geom.Top, Rects: testRects}, false},
		{"bad placement", Config{Placement: "diagonal", Rects: testRects}, true},
		{"negative reference", Config{Placement: geom.Top, Rects: geom.ElementRects{Reference: geom.Rect{Width: -1}}}, true},
		{"negative floating", Config{Placement: geom.Top, Rects: geom.ElementRects{Floating: geom.Rect{Height: -1}}}, true},
		{"unnamed middleware", Config{Placement: geom.Top, Middleware: []Middleware{{Fn: shift("x", 0, 0).Fn}}}, true},
		{"nil fn", Config{Placement: geom.Top, Middleware: []Middleware{{Name: "x"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStateRTL(t *testing.T) {
	rtl, err := State{}.RTL(context.Background())
	if err != nil || rtl {
		t.Errorf("nil platform: rtl = %v, err = %v", rtl, err)
	}

	p := &staticPlatform{rtl: true}
	rtl, err = State{Platform: p}.RTL(context.Background())
	if err != nil || !rtl {
		t.Errorf("rtl platform: rtl = %v, err = %v", rtl, err)
	}
	if p.calls != 1 {
		t.Errorf("calls = %d, want 1", p.calls)
	}
}

func TestMiddlewareString(t *testing.T) {
	if got := (Middleware{Name: "offset"}).String(); got != "offset" {
		t.Errorf("String() = %q", got)
	}
	if got := (Middleware{Name: "offset", Options: 8}).String(); got != "offset(8)" {
		t.Errorf("String() = %q", got)
	}
}

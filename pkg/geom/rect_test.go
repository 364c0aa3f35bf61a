package geom

import "testing"

func TestRectEdges(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}

	if r.Right() != 40 {
		t.Errorf("Right() = %v, want 40", r.Right())
	}
	if r.Bottom() != 60 {
		t.Errorf("Bottom() = %v, want 60", r.Bottom())
	}
	if c := r.Center(); c != (Coords{X: 25, Y: 40}) {
		t.Errorf("Center() = %+v", c)
	}
	if r.Length(AxisX) != 30 || r.Length(AxisY) != 40 {
		t.Errorf("Length() = %v, %v", r.Length(AxisX), r.Length(AxisY))
	}
}

func TestCoords(t *testing.T) {
	c := Coords{X: 1, Y: 2}.Add(Coords{X: 3, Y: -5})
	if c != (Coords{X: 4, Y: -3}) {
		t.Errorf("Add() = %+v", c)
	}
	if c.Get(AxisX) != 4 || c.Get(AxisY) != -3 {
		t.Errorf("Get() = %v, %v", c.Get(AxisX), c.Get(AxisY))
	}
	if got := c.Set(AxisY, 7); got != (Coords{X: 4, Y: 7}) {
		t.Errorf("Set() = %+v", got)
	}
	if c.Y != -3 {
		t.Error("Set must not mutate the receiver")
	}
}

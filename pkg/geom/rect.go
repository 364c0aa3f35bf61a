package geom

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x" toml:"x" yaml:"x"`
	Y      float64 `json:"y" toml:"y" yaml:"y"`
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point of r.
func (r Rect) Center() Coords {
	return Coords{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Length returns the extent of r along axis: width for x, height for y.
func (r Rect) Length(axis Axis) float64 {
	if axis == AxisX {
		return r.Width
	}
	return r.Height
}

// ElementRects holds the reference and floating rectangles of one pipeline pass.
type ElementRects struct {
	Reference Rect `json:"reference" toml:"reference" yaml:"reference"`
	Floating  Rect `json:"floating" toml:"floating" yaml:"floating"`
}

// Coords is a 2D position or delta.
type Coords struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the component-wise sum of c and d.
func (c Coords) Add(d Coords) Coords {
	return Coords{X: c.X + d.X, Y: c.Y + d.Y}
}

// Get returns the component of c along axis.
func (c Coords) Get(axis Axis) float64 {
	if axis == AxisX {
		return c.X
	}
	return c.Y
}

// Set returns a copy of c with the component along axis replaced by v.
func (c Coords) Set(axis Axis, v float64) Coords {
	if axis == AxisX {
		c.X = v
	} else {
		c.Y = v
	}
	return c
}

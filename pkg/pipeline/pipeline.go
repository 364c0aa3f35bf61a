// Package pipeline provides the placement pipeline that floatplace middlewares
// plug into.
//
// The pipeline starts from the coordinates that place the floating element
// flush against the chosen side of its reference element, then runs each
// [Middleware] in order. Every middleware receives the accumulated x/y and
// returns updated coordinates plus optional advisory data.
//
// # Architecture
//
//  1. Initial coordinates: [InitialCoords] centers the floating rect on the
//     reference side and applies start/end alignment.
//  2. Middlewares: each [Func] sees the current [State] and returns a [Return].
//  3. Result: final x/y plus the per-middleware data, keyed by name.
//
// # Usage
//
//	cfg := pipeline.Config{
//	    Placement:  geom.TopStart,
//	    Rects:      rects,
//	    Middleware: []pipeline.Middleware{offset.New(offset.Number(8))},
//	}
//	result, err := pipeline.Compute(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.X, result.Y)
//
// Middleware descriptors hold only immutable configuration, so the same
// descriptor may be shared by concurrent Compute calls.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/floatplace/pkg/geom"
)

// DefaultPlacement is used when Config.Placement is empty.
const DefaultPlacement = geom.Bottom

// =============================================================================
// Platform
// =============================================================================

// Element is an opaque reference to a platform element. The pipeline never
// inspects it; it is only handed back to the Platform.
type Element any

// Elements holds the underlying reference and floating element handles.
type Elements struct {
	Reference Element
	Floating  Element
}

// Platform answers environment queries the pipeline cannot derive from geometry.
type Platform interface {
	// IsRTL reports whether the floating element is laid out right-to-left.
	// It may block; implementations should honor ctx.
	IsRTL(ctx context.Context, floating Element) (bool, error)
}

// NoopPlatform is a Platform without direction support. It always reports
// left-to-right.
type NoopPlatform struct{}

// IsRTL always returns false.
func (NoopPlatform) IsRTL(context.Context, Element) (bool, error) { return false, nil }

// =============================================================================
// Middleware Contract
// =============================================================================

// State is the per-pass input handed to a middleware.
type State struct {
	X                float64
	Y                float64
	InitialPlacement geom.Placement
	Placement        geom.Placement
	Rects            geom.ElementRects
	Platform         Platform
	Elements         Elements

	// MiddlewareData holds the Data returned by earlier middlewares, keyed by
	// name. It is advisory and must not be treated as authoritative state.
	MiddlewareData map[string]any
}

// RTL queries the state's platform for the floating element's direction.
// A nil platform is treated as left-to-right.
func (s State) RTL(ctx context.Context) (bool, error) {
	if s.Platform == nil {
		return false, nil
	}
	return s.Platform.IsRTL(ctx, s.Elements.Floating)
}

// Return is the state fragment a middleware produces.
type Return struct {
	X    float64
	Y    float64
	Data any
}

// Func is the invocation function of a middleware.
type Func func(ctx context.Context, state State) (Return, error)

// Middleware is a named pipeline step. Options carries the step's
// configuration for debugging and serialization; Fn does the work.
type Middleware struct {
	Name    string `json:"name"`
	Options any    `json:"options,omitempty"`
	Fn      Func   `json:"-"`
}

// Dynamic is implemented by middleware options whose output may change
// between calls with identical inputs.
type Dynamic interface {
	IsDynamic() bool
}

// IsDynamic reports whether the middleware's options declare themselves dynamic.
func (m Middleware) IsDynamic() bool {
	d, ok := m.Options.(Dynamic)
	return ok && d.IsDynamic()
}

// String renders the middleware name and options for logs.
func (m Middleware) String() string {
	data, err := json.Marshal(m.Options)
	if err != nil || m.Options == nil {
		return m.Name
	}
	return fmt.Sprintf("%s(%s)", m.Name, data)
}

// =============================================================================
// Config - Pipeline Configuration
// =============================================================================

// Config contains everything a single Compute call needs.
type Config struct {
	Placement  geom.Placement
	Rects      geom.ElementRects
	Elements   Elements
	Platform   Platform
	Middleware []Middleware

	// Logger receives per-step debug output. Defaults to a discard logger.
	Logger *log.Logger
}

// SetDefaults fills in the placement, platform, and logger.
func (c *Config) SetDefaults() {
	if c.Placement == "" {
		c.Placement = DefaultPlacement
	}
	if c.Platform == nil {
		c.Platform = NoopPlatform{}
	}
	if c.Logger == nil {
		c.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the placement, rect dimensions, and middleware descriptors.
func (c *Config) Validate() error {
	if !c.Placement.Valid() {
		return fmt.Errorf("invalid placement: %q", c.Placement)
	}
	if err := ValidateRect("reference", c.Rects.Reference); err != nil {
		return err
	}
	if err := ValidateRect("floating", c.Rects.Floating); err != nil {
		return err
	}
	for i, m := range c.Middleware {
		if m.Name == "" {
			return fmt.Errorf("middleware %d: name is required", i)
		}
		if m.Fn == nil {
			return fmt.Errorf("middleware %s: fn is required", m.Name)
		}
	}
	return nil
}

// ValidateRect checks that a rect has non-negative dimensions.
func ValidateRect(name string, r geom.Rect) error {
	if r.Width < 0 || r.Height < 0 {
		return fmt.Errorf("%s rect has negative size: %gx%g", name, r.Width, r.Height)
	}
	return nil
}

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/observability"
)

// Result contains the outputs of a pipeline run.
type Result struct {
	// X and Y are the final floating element coordinates.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Placement is the placement the pipeline ran with.
	Placement geom.Placement `json:"placement"`

	// Initial holds the coordinates before any middleware ran.
	Initial geom.Coords `json:"initial"`

	// MiddlewareData holds each middleware's advisory data keyed by name.
	MiddlewareData map[string]any `json:"middleware_data,omitempty"`

	// Steps records what each middleware contributed, in run order.
	Steps []Step `json:"steps,omitempty"`
}

// Step describes one middleware invocation.
type Step struct {
	Name     string        `json:"name"`
	Delta    geom.Coords   `json:"delta"`
	Duration time.Duration `json:"duration"`
}

// Coords returns the final position as geom.Coords.
func (r *Result) Coords() geom.Coords {
	return geom.Coords{X: r.X, Y: r.Y}
}

// Compute runs the pipeline described by cfg.
//
// The platform is queried once for text direction to compute the initial
// coordinates; middlewares may query it again. Middleware errors are returned
// wrapped with the middleware name.
func Compute(ctx context.Context, cfg Config) (*Result, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger := cfg.Logger

	rtl, err := cfg.Platform.IsRTL(ctx, cfg.Elements.Floating)
	if err != nil {
		return nil, fmt.Errorf("query direction: %w", err)
	}

	initial := InitialCoords(cfg.Rects, cfg.Placement, rtl)
	result := &Result{
		X:              initial.X,
		Y:              initial.Y,
		Placement:      cfg.Placement,
		Initial:        initial,
		MiddlewareData: make(map[string]any),
	}

	logger.Debug("computed initial coords",
		"placement", cfg.Placement,
		"rtl", rtl,
		"x", initial.X,
		"y", initial.Y)

	hooks := observability.Pipeline()
	for _, m := range cfg.Middleware {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		state := State{
			X:                result.X,
			Y:                result.Y,
			InitialPlacement: cfg.Placement,
			Placement:        cfg.Placement,
			Rects:            cfg.Rects,
			Platform:         cfg.Platform,
			Elements:         cfg.Elements,
			MiddlewareData:   result.MiddlewareData,
		}

		hooks.OnMiddlewareStart(ctx, m.Name)
		start := time.Now()
		ret, err := m.Fn(ctx, state)
		duration := time.Since(start)
		hooks.OnMiddlewareComplete(ctx, m.Name, duration, err)
		if err != nil {
			return nil, fmt.Errorf("middleware %s: %w", m.Name, err)
		}

		delta := geom.Coords{X: ret.X - result.X, Y: ret.Y - result.Y}
		result.X, result.Y = ret.X, ret.Y
		if ret.Data != nil {
			result.MiddlewareData[m.Name] = ret.Data
		}
		result.Steps = append(result.Steps, Step{Name: m.Name, Delta: delta, Duration: duration})

		logger.Debug("ran middleware",
			"middleware", m.String(),
			"dx", delta.X,
			"dy", delta.Y,
			"duration", duration)
	}

	return result, nil
}

// DataAs returns the data a middleware stored in r, converted to T.
func DataAs[T any](r *Result, name string) (T, bool) {
	var zero T
	if r == nil {
		return zero, false
	}
	v, ok := r.MiddlewareData[name].(T)
	return v, ok
}

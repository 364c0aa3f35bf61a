// Package pkg holds the floatplace libraries.
//
// Floatplace computes where a floating element (tooltip, popover, menu) sits
// next to the reference element it is anchored to. The packages are layered:
//
//  1. [geom] - placements, axes, rectangles, coordinates
//  2. [offset] - the offset middleware and its resolver
//  3. [pipeline] - the middleware contract and the runner that chains steps
//  4. [platform] - text-direction adapters for the pipeline
//  5. [script] - offsets computed by JavaScript functions
//  6. [scenario] - complete computations loaded from TOML, YAML, or JSON
//  7. [cache], [service] - cached scenario resolution shared by CLI and API
//
// # Data flow
//
//	scenario file
//	     ↓
//	[scenario] (decode, validate, compile scripts)
//	     ↓
//	[pipeline] (initial coords → offset middleware → ...)
//	     ↓
//	x/y position + per-middleware data
//
// # Quick start
//
//	res, err := pipeline.Compute(ctx, pipeline.Config{
//	    Placement:  geom.TopStart,
//	    Rects:      geom.ElementRects{Reference: ref, Floating: fl},
//	    Middleware: []pipeline.Middleware{offset.New(offset.Record{MainAxis: 8})},
//	})
package pkg

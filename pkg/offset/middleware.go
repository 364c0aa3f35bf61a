package offset

import (
	"context"

	"github.com/matzehuels/floatplace/pkg/pipeline"
)

// Name is the middleware name used as the key in pipeline middleware data.
const Name = "offset"

// New returns the offset middleware for spec. A nil spec means no displacement.
//
// The returned middleware queries the platform for text direction on each
// pass; platform errors are returned unchanged.
func New(spec Spec) pipeline.Middleware {
	if spec == nil {
		spec = Number(0)
	}
	return pipeline.Middleware{
		Name:    Name,
		Options: spec,
		Fn: func(ctx context.Context, state pipeline.State) (pipeline.Return, error) {
			rtl, err := state.RTL(ctx)
			if err != nil {
				return pipeline.Return{}, err
			}
			delta := Resolve(state.Placement, state.Rects, spec, rtl)
			return pipeline.Return{
				X:    state.X + delta.X,
				Y:    state.Y + delta.Y,
				Data: delta,
			}, nil
		},
	}
}

package errors

import (
	"math"

	"github.com/matzehuels/floatplace/pkg/geom"
)

// ValidatePlacement parses s into a placement, reporting INVALID_PLACEMENT on failure.
func ValidatePlacement(s string) (geom.Placement, error) {
	p, err := geom.ParsePlacement(s)
	if err != nil {
		return "", Wrap(ErrCodeInvalidPlacement, err, "placement must be one of top, right, bottom, left with optional -start/-end")
	}
	return p, nil
}

// ValidateRect rejects rects with negative or non-finite fields.
func ValidateRect(name string, r geom.Rect) error {
	for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidRect, "%s rect must be finite", name)
		}
	}
	if r.Width < 0 || r.Height < 0 {
		return New(ErrCodeInvalidRect, "%s rect has negative size %gx%g", name, r.Width, r.Height)
	}
	return nil
}

// ValidateOffsetValue rejects non-finite offset values. The resolver accepts
// them; this is the stricter check applied at the pipeline edge.
func ValidateOffsetValue(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidOffset, "%s must be a finite number", field)
	}
	return nil
}

package offset

import (
	"github.com/matzehuels/floatplace/pkg/geom"
)

// Spec is an offset specification: a Number, a Record, or a Func.
type Spec interface {
	normalize(Args) Record
}

// Value is what a Func produces: a Number or a Record.
type Value interface {
	Spec
	value()
}

// Args is passed to a Func on every evaluation.
type Args struct {
	Floating  geom.Rect      `json:"floating"`
	Reference geom.Rect      `json:"reference"`
	Placement geom.Placement `json:"placement"`
}

// Number offsets along the main axis only.
type Number float64

func (n Number) normalize(Args) Record { return Record{MainAxis: float64(n)} }
func (Number) value()                  {}

// IsDynamic reports false.
func (Number) IsDynamic() bool { return false }

// Record offsets along each axis independently. Omitted fields are 0.
type Record struct {
	// MainAxis runs along the side of the floating element.
	MainAxis float64 `json:"mainAxis"`

	// CrossAxis runs along the alignment of the floating element. It is
	// ignored for aligned placements, where AlignmentOffset applies instead.
	CrossAxis float64 `json:"crossAxis"`

	// AlignmentOffset moves an aligned floating element toward the edge
	// opposite its alignment when positive.
	AlignmentOffset float64 `json:"alignmentOffset"`
}

func (r Record) normalize(Args) Record { return r }
func (Record) value()                  {}

// IsDynamic reports false.
func (Record) IsDynamic() bool { return false }

// Func computes an offset from the current geometry. It is called on every
// pipeline pass; results are never cached.
type Func func(Args) Value

func (f Func) normalize(args Args) Record {
	if f == nil {
		return Record{}
	}
	v := f(args)
	if v == nil {
		return Record{}
	}
	return v.normalize(args)
}

// IsDynamic reports true.
func (Func) IsDynamic() bool { return true }

// MarshalJSON renders a Func as the string "dynamic", since its value only
// exists per pass.
func (Func) MarshalJSON() ([]byte, error) { return []byte(`"dynamic"`), nil }

// Normalize evaluates spec against args and returns the record form.
// A nil spec yields the zero record.
func Normalize(spec Spec, args Args) Record {
	if spec == nil {
		return Record{}
	}
	return spec.normalize(args)
}

// IsDynamic reports whether spec must be re-evaluated on every pass.
func IsDynamic(spec Spec) bool {
	_, ok := spec.(Func)
	return ok
}

// Package script compiles JavaScript offset functions into offset.Func values.
//
// A script is a function expression that receives the pipeline geometry and
// returns either a number (main axis offset) or an object with mainAxis,
// crossAxis, and alignmentOffset fields:
//
//	({floating, reference, placement}) =>
//	    placement.startsWith("top") ? floating.height / 4 : {mainAxis: 8, crossAxis: -2}
//
// Scripts run in an embedded goja VM and are evaluated on every pipeline pass.
package script

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"

	"github.com/matzehuels/floatplace/pkg/errors"
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/offset"
)

// DefaultTimeout bounds a single script evaluation.
const DefaultTimeout = 100 * time.Millisecond

// Func is a compiled offset script. Evaluations are serialized because a goja
// runtime is not safe for concurrent use.
type Func struct {
	source  string
	timeout time.Duration
	logger  *log.Logger

	mu sync.Mutex
	vm *goja.Runtime
	fn goja.Callable
}

// Option configures a Func.
type Option func(*Func)

// WithTimeout sets the per-evaluation time limit. Non-positive values disable it.
func WithTimeout(d time.Duration) Option {
	return func(f *Func) { f.timeout = d }
}

// WithLogger sets the logger used to report evaluation failures swallowed by Offset.
func WithLogger(l *log.Logger) Option {
	return func(f *Func) {
		if l != nil {
			f.logger = l
		}
	}
}

// Compile parses source, which must evaluate to a function.
func Compile(source string, opts ...Option) (*Func, error) {
	prog, err := goja.Compile("offset.js", "("+source+")", false)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "compile offset script")
	}

	vm := goja.New()
	v, err := vm.RunProgram(prog)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "evaluate offset script")
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidScript, "offset script must be a function, got %s", v.ExportType())
	}

	f := &Func{
		source:  source,
		timeout: DefaultTimeout,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		vm:      vm,
		fn:      fn,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Source returns the script text.
func (f *Func) Source() string { return f.source }

// Evaluate runs the script once with args.
//
// Numbers become offset.Number; objects become offset.Record with non-numeric
// or missing fields read as 0. Any other result yields a nil Value.
func (f *Func) Evaluate(args offset.Args) (offset.Value, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.vm.ClearInterrupt()
	if f.timeout > 0 {
		// The callback may still be running after Stop returns false; the
		// done flag keeps it from interrupting once this evaluation ends.
		var (
			imu  sync.Mutex
			done bool
		)
		timer := time.AfterFunc(f.timeout, func() {
			imu.Lock()
			defer imu.Unlock()
			if !done {
				f.vm.Interrupt("timeout")
			}
		})
		defer func() {
			timer.Stop()
			imu.Lock()
			done = true
			imu.Unlock()
			f.vm.ClearInterrupt()
		}()
	}

	res, err := f.fn(goja.Undefined(), f.vm.ToValue(argsObject(args)))
	if err != nil {
		if _, ok := err.(*goja.InterruptedError); ok {
			return nil, errors.Wrap(errors.ErrCodeScriptTimeout, err, "offset script exceeded %s", f.timeout)
		}
		return nil, fmt.Errorf("run offset script: %w", err)
	}
	return toValue(res.Export()), nil
}

// Offset returns an offset.Func that evaluates the script on every call.
// Evaluation errors are logged and produce no displacement.
func (f *Func) Offset() offset.Func {
	return func(args offset.Args) offset.Value {
		v, err := f.Evaluate(args)
		if err != nil {
			f.logger.Warn("offset script failed", "placement", args.Placement, "err", err)
			return nil
		}
		return v
	}
}

func argsObject(args offset.Args) map[string]any {
	return map[string]any{
		"floating":  rectObject(args.Floating),
		"reference": rectObject(args.Reference),
		"placement": string(args.Placement),
	}
}

func rectObject(r geom.Rect) map[string]any {
	return map[string]any{
		"x":      r.X,
		"y":      r.Y,
		"width":  r.Width,
		"height": r.Height,
	}
}

func toValue(v any) offset.Value {
	switch v := v.(type) {
	case int64, float64:
		return offset.Number(toFloat(v))
	case map[string]any:
		return offset.Record{
			MainAxis:        toFloat(v["mainAxis"]),
			CrossAxis:       toFloat(v["crossAxis"]),
			AlignmentOffset: toFloat(v["alignmentOffset"]),
		}
	default:
		return nil
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

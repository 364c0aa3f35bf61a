// Package platform provides pipeline.Platform implementations for callers that
// know text direction up front or can look it up without a DOM.
package platform

import (
	"context"
	"sync"

	"github.com/matzehuels/floatplace/pkg/pipeline"
)

// Static reports the same direction for every element.
type Static struct {
	RTL bool
}

// IsRTL returns the configured direction.
func (s Static) IsRTL(context.Context, pipeline.Element) (bool, error) {
	return s.RTL, nil
}

// Func adapts a plain function to pipeline.Platform.
type Func func(ctx context.Context, floating pipeline.Element) (bool, error)

// IsRTL calls f.
func (f Func) IsRTL(ctx context.Context, floating pipeline.Element) (bool, error) {
	return f(ctx, floating)
}

// Lookup resolves direction per floating element ID. Elements that are not
// strings, or IDs that were never set, fall back to Default.
//
// Lookup is safe for concurrent use.
type Lookup struct {
	Default bool

	mu  sync.RWMutex
	dir map[string]bool
}

// NewLookup creates an empty lookup with the given fallback direction.
func NewLookup(defaultRTL bool) *Lookup {
	return &Lookup{Default: defaultRTL, dir: make(map[string]bool)}
}

// Set records the direction for an element ID.
func (l *Lookup) Set(id string, rtl bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.dir == nil {
		l.dir = make(map[string]bool)
	}
	l.dir[id] = rtl
}

// IsRTL returns the recorded direction for floating, or Default.
func (l *Lookup) IsRTL(ctx context.Context, floating pipeline.Element) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	id, ok := floating.(string)
	if !ok {
		return l.Default, nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if rtl, ok := l.dir[id]; ok {
		return rtl, nil
	}
	return l.Default, nil
}

var (
	_ pipeline.Platform = Static{}
	_ pipeline.Platform = Func(nil)
	_ pipeline.Platform = (*Lookup)(nil)
)

package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/floatplace/pkg/cache"
	ferrors "github.com/matzehuels/floatplace/pkg/errors"
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/offset"
	"github.com/matzehuels/floatplace/pkg/scenario"
)

// memCache is an in-memory cache.Cache that counts writes.
type memCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	sets   int
	getErr error
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.data[key] = data
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func testScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Name:      "tooltip",
		Placement: geom.Bottom,
		Reference: geom.Rect{X: 100, Y: 100, Width: 80, Height: 40},
		Floating:  geom.Rect{Width: 40, Height: 20},
		Offset:    scenario.NumberOffset(8),
	}
}

func TestResolve(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())

	res, err := r.Resolve(context.Background(), testScenario())
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.X != 120 || res.Y != 148 {
		t.Errorf("position = (%v, %v), want (120, 148)", res.X, res.Y)
	}
	if res.Offset != (geom.Coords{Y: 8}) {
		t.Errorf("Offset = %+v", res.Offset)
	}
	if res.CacheHit {
		t.Error("null cache should never hit")
	}
	if len(res.Hash) != 64 {
		t.Errorf("Hash = %q", res.Hash)
	}
}

func TestResolveCaches(t *testing.T) {
	mc := newMemCache()
	r := NewRunner(mc, nil, quietLogger())
	ctx := context.Background()

	first, err := r.Resolve(ctx, testScenario())
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	second, err := r.Resolve(ctx, testScenario())
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if first.CacheHit || !second.CacheHit {
		t.Errorf("CacheHit = %v, %v; want false, true", first.CacheHit, second.CacheHit)
	}
	if first.X != second.X || first.Y != second.Y || first.Offset != second.Offset {
		t.Errorf("cached result differs: %+v vs %+v", first, second)
	}
	if mc.sets != 1 {
		t.Errorf("sets = %d, want 1", mc.sets)
	}
}

func TestResolveScriptNeverCached(t *testing.T) {
	mc := newMemCache()
	r := NewRunner(mc, nil, quietLogger())

	s := testScenario()
	s.Offset = scenario.ScriptOffset(`({reference}) => reference.height / 4`)

	for i := 0; i < 3; i++ {
		res, err := r.Resolve(context.Background(), s)
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if res.CacheHit {
			t.Error("script scenario served from cache")
		}
		if res.Offset.Y != 10 {
			t.Errorf("Offset.Y = %v, want 10", res.Offset.Y)
		}
	}
	if mc.sets != 0 {
		t.Errorf("sets = %d, want 0", mc.sets)
	}
}

func TestResolveCacheErrorIgnored(t *testing.T) {
	mc := newMemCache()
	mc.getErr = errors.New("redis down")
	r := NewRunner(mc, nil, quietLogger())

	res, err := r.Resolve(context.Background(), testScenario())
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if res.CacheHit {
		t.Error("failed read should be a miss")
	}
}

func TestResolveInvalid(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())

	s := testScenario()
	s.Placement = "sideways"
	if _, err := r.Resolve(context.Background(), s); !ferrors.Is(err, ferrors.ErrCodeInvalidPlacement) {
		t.Errorf("err = %v, want INVALID_PLACEMENT", err)
	}

	s = testScenario()
	s.Offset = scenario.RecordOffset(offset.Record{MainAxis: 1})
	s.Floating.Width = -5
	if _, err := r.Resolve(context.Background(), s); !ferrors.Is(err, ferrors.ErrCodeInvalidRect) {
		t.Errorf("err = %v, want INVALID_RECT", err)
	}
}

func TestResolveConcurrent(t *testing.T) {
	r := NewRunner(newMemCache(), nil, quietLogger())

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := r.Resolve(context.Background(), testScenario())
			if err != nil {
				errs <- err
				return
			}
			if res.Y != 148 {
				errs <- errors.New("unexpected y")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

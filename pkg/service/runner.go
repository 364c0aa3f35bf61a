// Package service runs scenarios through the placement pipeline with caching.
//
// Both the CLI and the HTTP API use a [Runner] so cache handling and logging
// behave the same at every entry point.
//
//	runner := service.NewRunner(cache, nil, logger)
//	result, err := runner.Resolve(ctx, scn)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.X, result.Y, result.CacheHit)
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/floatplace/pkg/cache"
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/observability"
	"github.com/matzehuels/floatplace/pkg/offset"
	"github.com/matzehuels/floatplace/pkg/pipeline"
	"github.com/matzehuels/floatplace/pkg/scenario"
)

// cacheKeyType labels cache events emitted to observability hooks.
const cacheKeyType = "result"

// Result is a resolved scenario.
type Result struct {
	Name      string         `json:"name,omitempty"`
	Placement geom.Placement `json:"placement"`
	RTL       bool           `json:"rtl"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Initial   geom.Coords    `json:"initial"`
	Offset    geom.Coords    `json:"offset"`
	Hash      string         `json:"hash,omitempty"`
	CacheHit  bool           `json:"cache_hit"`
	Stats     Stats          `json:"stats"`
}

// Stats contains timing information.
type Stats struct {
	Duration time.Duration `json:"duration"`
}

// Runner resolves scenarios with caching.
//
// The Runner holds no per-call state; multiple goroutines can share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// cache.DefaultKeyer, and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Resolve validates s, runs it through the pipeline, and caches the result.
//
// Scenarios with scripted offsets are never cached or served from cache:
// their output depends on evaluating the script on every pass. Cache errors
// are logged and otherwise ignored.
func (r *Runner) Resolve(ctx context.Context, s *scenario.Scenario) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	canonical, err := s.MarshalCanonical()
	if err != nil {
		return nil, fmt.Errorf("serialize scenario: %w", err)
	}
	hash := cache.Hash(canonical)
	key := r.Keyer.ResultKey(hash)
	cacheable := !s.Dynamic()
	hooks := observability.Cache()

	if cacheable {
		if res, ok := r.lookup(ctx, key); ok {
			hooks.OnCacheHit(ctx, cacheKeyType)
			res.Name = s.Name
			res.CacheHit = true
			res.Stats.Duration = time.Since(start)
			r.Logger.Debug("cache hit", "scenario", s.Name, "hash", hash[:12])
			return res, nil
		}
		hooks.OnCacheMiss(ctx, cacheKeyType)
	}

	cfg, err := s.Config(r.Logger)
	if err != nil {
		return nil, err
	}
	out, err := pipeline.Compute(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("compute %s: %w", s.Placement, err)
	}

	delta, _ := pipeline.DataAs[geom.Coords](out, offset.Name)
	res := &Result{
		Name:      s.Name,
		Placement: out.Placement,
		RTL:       s.RTL,
		X:         out.X,
		Y:         out.Y,
		Initial:   out.Initial,
		Offset:    delta,
		Hash:      hash,
	}

	if cacheable {
		if data, err := json.Marshal(res); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLResult); err != nil {
				r.Logger.Warn("cache write failed", "err", err)
			} else {
				hooks.OnCacheSet(ctx, cacheKeyType, len(data))
			}
		}
	}

	res.Stats.Duration = time.Since(start)
	r.Logger.Info("resolved offset",
		"scenario", s.Name,
		"placement", res.Placement,
		"x", res.X,
		"y", res.Y,
		"duration", res.Stats.Duration)
	return res, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		// Undecodable entries are recomputed and overwritten.
		return nil, false
	}
	return &res, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

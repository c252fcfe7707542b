package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeviz/pkg/bst"
	"github.com/matzehuels/treeviz/pkg/cache"
	"github.com/matzehuels/treeviz/pkg/layout"
	"github.com/matzehuels/treeviz/pkg/observability"
	"github.com/matzehuels/treeviz/pkg/sample"
)

// cacheTTL is how long cached stage results are kept. Everything is
// recomputable, so expiry is about disk hygiene, not correctness.
const cacheTTL = 7 * 24 * time.Hour

// Runner encapsulates pipeline execution with caching.
// CLI, TUI and server all use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Close releases the cache backend.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the complete sample → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	logger := opts.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Sample
	sampleStart := time.Now()
	data, sampleHit, err := r.Sample(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}
	result.Data = data
	result.Stats.SampleTime = time.Since(sampleStart)
	result.CacheInfo.SampleHit = sampleHit

	// The sample hash keys the layout stage and is part of the result so
	// callers can track provenance.
	if encoded, err := json.Marshal(data); err == nil {
		result.DataHash = cache.Hash(encoded)
	}

	logger.Info("sampled values",
		"count", len(data),
		"seed", opts.Seed,
		"duration", result.Stats.SampleTime)

	// Stage 2: Tree + Layout
	layoutStart := time.Now()
	result.Tree = bst.FromList(data)
	l, layoutHit, err := r.ComputeLayout(ctx, result.Tree, result.DataHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(l.Nodes)
	result.Stats.ConflictCount = len(l.Conflicts)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layout",
		"strategy", l.Strategy,
		"nodes", len(l.Nodes),
		"conflicts", len(l.Conflicts),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, result.Tree, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Sample returns the integer sample for the run, from opts.Data when set,
// otherwise from cache or fresh generation. The second return reports a
// cache hit.
func (r *Runner) Sample(ctx context.Context, opts Options) ([]int, bool, error) {
	if err := opts.ValidateForSample(); err != nil {
		return nil, false, err
	}
	if len(opts.Data) > 0 {
		return opts.Data, false, nil
	}

	key := r.Keyer.SampleKey(opts.Count, opts.Seed)
	if !opts.Refresh {
		if data, ok := r.cacheGet(ctx, key, "sample"); ok {
			var xs []int
			if err := json.Unmarshal(data, &xs); err == nil {
				return xs, true, nil
			}
		}
	}

	observability.Pipeline().OnSampleStart(ctx, opts.Count)
	start := time.Now()
	xs := sample.Generate(opts.Count, opts.Seed)
	observability.Pipeline().OnSampleComplete(ctx, opts.Count, time.Since(start), nil)

	if encoded, err := json.Marshal(xs); err == nil {
		r.cacheSet(ctx, key, "sample", encoded)
	}
	return xs, false, nil
}

// ComputeLayout computes (or loads) the layout for a tree. Grid layouts
// carry their conflict cells; radial layouts are collision-free and carry
// none. The second return reports a cache hit.
func (r *Runner) ComputeLayout(ctx context.Context, t *bst.Tree, dataHash string, opts Options) (layout.Layout, bool, error) {
	opts.SetLayoutDefaults()
	if err := ValidateStrategy(opts.Strategy); err != nil {
		return layout.Layout{}, false, err
	}

	key := r.Keyer.LayoutKey(dataHash, opts.LayoutKeyOpts())
	if !opts.Refresh && dataHash != "" {
		if data, ok := r.cacheGet(ctx, key, "layout"); ok {
			if l, err := layout.UnmarshalLayout(data); err == nil {
				return l, true, nil
			}
		}
	}

	observability.Pipeline().OnLayoutStart(ctx, opts.Strategy, t.Size())
	start := time.Now()
	l, err := layout.Build(t, opts.Strategy)
	if err == nil && opts.IsGrid() {
		l.Conflicts = layout.Conflicts(l.Nodes)
	}
	observability.Pipeline().OnLayoutComplete(ctx, opts.Strategy, time.Since(start), err)
	if err != nil {
		return layout.Layout{}, false, err
	}

	if dataHash != "" {
		if encoded, merr := layout.MarshalLayout(l); merr == nil {
			r.cacheSet(ctx, key, "layout", encoded)
		}
	}
	return l, false, nil
}

// RenderWithCacheInfo renders all requested formats, serving individual
// artifacts from cache where possible. The second return reports whether
// every artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, t *bst.Tree, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	if err := ValidateStyle(opts.Style); err != nil {
		return nil, false, err
	}

	layoutHash := ""
	if encoded, err := layout.MarshalLayout(l); err == nil {
		layoutHash = cache.Hash(encoded)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	missing := make([]string, 0, len(opts.Formats))
	allHit := true

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh && layoutHash != "" {
			if data, ok := r.cacheGet(ctx, key, "artifact"); ok {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
		allHit = false
	}

	if len(missing) > 0 {
		observability.Pipeline().OnRenderStart(ctx, missing)
		start := time.Now()
		fresh, err := Render(l, t, missing, opts)
		observability.Pipeline().OnRenderComplete(ctx, missing, time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		for format, data := range fresh {
			artifacts[format] = data
			if layoutHash != "" {
				key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
				r.cacheSet(ctx, key, "artifact", data)
			}
		}
	}

	return artifacts, allHit, nil
}

func (r *Runner) cacheGet(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache get failed", "type", keyType, "err", err)
		return nil, false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	return nil, false
}

func (r *Runner) cacheSet(ctx context.Context, key, keyType string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, cacheTTL); err != nil {
		r.Logger.Debug("cache set failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

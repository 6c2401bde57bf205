package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stangrad/wayfind/pkg/cache"
	"github.com/stangrad/wayfind/pkg/graph"
	"github.com/stangrad/wayfind/pkg/layout"
	"github.com/stangrad/wayfind/pkg/nav"
	"github.com/stangrad/wayfind/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
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

// Execute runs the complete load → layout → session pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	source := opts.MapPath
	if source == "" {
		source = opts.MapName
	}
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, source)
	doc, err := r.Load(ctx, opts)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, source, 0, time.Since(loadStart), err)
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Document = doc
	result.Stats.LoadTime = time.Since(loadStart)

	data, err := graph.MarshalDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("hash document: %w", err)
	}
	result.DocHash = cache.Hash(data)

	model, err := graph.NewModel(doc)
	if err != nil {
		return nil, fmt.Errorf("build model: %w", err)
	}
	result.Model = model
	result.Stats.NodeCount = model.NodeCount()
	result.Stats.EdgeCount = len(model.Edges())
	observability.Pipeline().OnLoadComplete(ctx, source, result.Stats.NodeCount, result.Stats.LoadTime, nil)

	r.Logger.Info("loaded map",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, model.NodeCount())
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, model, result.DocHash, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Pipeline().OnLayoutComplete(ctx, layoutHit, result.Stats.LayoutTime, err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"positions", len(l.Positions),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Session
	result.Session = nav.NewSession(model, l)

	return result, nil
}

// Load reads the document from the configured source.
func (r *Runner) Load(ctx context.Context, opts Options) (*graph.Document, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.MapName != "" {
		return opts.Store.Load(ctx, opts.MapName)
	}
	return graph.ReadDocumentFile(opts.MapPath)
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info. The document hash keys the cache together with the layout
// options; a corrupt cached entry falls through to recomputation.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, m *graph.Model, docHash string, opts Options) (layout.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Layout{}, false, err
	}
	cacheKey := r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached layout.Layout
			if err := json.Unmarshal(data, &cached); err == nil && len(cached.Positions) == m.NodeCount() {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil // Cache hit
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	l := layout.Compute(m, opts.layoutOptions())

	if data, err := json.Marshal(l); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DefaultLayoutTTL)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return l, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, m *graph.Model, docHash string, opts Options) (layout.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, m, docHash, opts)
	return l, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

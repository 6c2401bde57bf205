// Package pipeline provides the core navigation pipeline for Wayfind.
//
// This package implements the complete load → layout → session pipeline that
// can be used by CLI, API, and TUI components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a walk-graph document from a file or a named store entry
//  2. Layout: Compute map positions with the anchored force-directed solver
//  3. Session: Build a navigation session over the model and layout
//
// Layout is the expensive stage and is cached keyed on the document hash and
// the layout options. Each stage can be run independently or as part of the
// complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{MapPath: "school.json"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	session := result.Session
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stangrad/wayfind/pkg/cache"
	"github.com/stangrad/wayfind/pkg/graph"
	"github.com/stangrad/wayfind/pkg/layout"
	"github.com/stangrad/wayfind/pkg/nav"
	"github.com/stangrad/wayfind/pkg/store"
)

// DefaultSeed is the default random seed for reproducible layouts. Two runs
// over the same document always produce the same map unless the seed is
// overridden.
const DefaultSeed = uint64(42)

// Options contains all configuration for the navigation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options: exactly one of MapPath or MapName must be set.
	MapPath string `json:"map_path,omitempty"` // local document file
	MapName string `json:"map_name,omitempty"` // named document in the store
	Refresh bool   `json:"refresh,omitempty"`  // bypass the layout cache

	// Layout options
	Seed       uint64 `json:"seed,omitempty"`
	Iterations int    `json:"iterations,omitempty"` // 0 = derived from node count

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	Store  store.Store `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.MapPath == "" && o.MapName == "" {
		return fmt.Errorf("map path or map name is required")
	}
	if o.MapPath != "" && o.MapName != "" {
		return fmt.Errorf("map path and map name are mutually exclusive")
	}
	if o.MapName != "" && o.Store == nil {
		return fmt.Errorf("map name requires a store")
	}
	if o.Iterations < 0 {
		return fmt.Errorf("iterations must be non-negative")
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Seed:       o.Seed,
		Iterations: o.Iterations,
	}
}

// layoutOptions converts pipeline options to solver options.
func (o *Options) layoutOptions() layout.Options {
	return layout.Options{
		Seed:       o.Seed,
		Iterations: o.Iterations,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the loaded walk-graph document.
	Document *graph.Document

	// DocHash is the content hash of the document's serialized form.
	DocHash string

	// Model is the validated graph model.
	Model *graph.Model

	// Layout contains the computed map positions.
	Layout layout.Layout

	// Session is a fresh navigation session over model and layout.
	Session *nav.Session

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
}

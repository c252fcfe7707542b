// Package pipeline provides the core visualization pipeline for treeviz.
//
// This package implements the complete sample → tree → layout → render
// pipeline shared by the CLI, the TUI and the HTTP server. Centralizing it
// keeps behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Sample: produce (or accept) the random integer sample
//  2. Layout: build the search tree and compute node/edge geometry
//  3. Render: generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage is cached independently; see [Runner].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Count:    25,
//	    Strategy: layout.StrategyGrid,
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeviz/pkg/bst"
	"github.com/matzehuels/treeviz/pkg/cache"
	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/layout"
	"github.com/matzehuels/treeviz/pkg/render"
	"github.com/matzehuels/treeviz/pkg/sample"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, TUI and Server
// =============================================================================

const (
	// DefaultCount is the default sample size. Large enough to produce
	// interesting shapes and the occasional grid collision, small enough
	// to stay readable.
	DefaultCount = 15

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// DefaultStrategy is the default placement strategy.
const DefaultStrategy = layout.StrategyGrid

// DefaultStyle is the default visual style.
const DefaultStyle = render.StyleLightName

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Sample options
	Count int    `json:"count"`
	Seed  uint64 `json:"seed,omitempty"`
	Data  []int  `json:"data,omitempty"` // explicit sample, bypasses generation

	// Layout options
	Strategy string `json:"strategy,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	NoConflicts bool     `json:"no_conflicts,omitempty"` // suppress conflict markers (grid)
	NoLabels    bool     `json:"no_labels,omitempty"`    // suppress value labels
	Nodelink    bool     `json:"nodelink,omitempty"`     // render via Graphviz node-link diagram
	Detailed    bool     `json:"detailed,omitempty"`     // depth annotations in DOT labels
	Scale       float64  `json:"scale,omitempty"`        // PNG scale factor
	Refresh     bool     `json:"refresh,omitempty"`      // bypass cached results

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Data is the sample the tree was built from, in insertion order.
	Data []int

	// DataHash is the content hash of the sample.
	DataHash string

	// Tree is the search tree built from Data.
	Tree *bst.Tree

	// Layout contains the computed geometry, including conflict cells for
	// grid layouts.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	ConflictCount int
	SampleTime    time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SampleHit bool // Whether the sample came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if err := render.ValidateStyle(style); err != nil {
		return errors.New(errors.ErrCodeInvalidStyle, "%s", err.Error())
	}
	return nil
}

// ValidateStrategy checks that a placement strategy is valid.
func ValidateStrategy(strategy string) error {
	if err := layout.ValidateStrategy(strategy); err != nil {
		return errors.New(errors.ErrCodeInvalidStrategy, "%s", err.Error())
	}
	return nil
}

// ValidateCount checks that a sample count is within the accepted range.
// Zero is allowed: it produces an empty sample, the documented fallback for
// unparsable user input.
func ValidateCount(count int) error {
	if count < 0 || count > sample.MaxCount {
		return errors.New(errors.ErrCodeInvalidCount,
			"invalid count: %d (must be between 0 and %d)", count, sample.MaxCount)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Count == 0 && len(o.Data) == 0 {
		o.Count = DefaultCount
	}
	if err := o.ValidateForSample(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := ValidateStrategy(o.Strategy); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSample checks required fields for sample generation.
func (o *Options) ValidateForSample() error {
	if len(o.Data) == 0 {
		if err := ValidateCount(o.Count); err != nil {
			return err
		}
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsGrid returns true if this run uses the naive grid strategy.
func (o *Options) IsGrid() bool {
	return o.Strategy == "" || o.Strategy == layout.StrategyGrid
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Strategy: o.Strategy}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Style:     o.Style,
		Conflicts: !o.NoConflicts,
		Labels:    !o.NoLabels,
		Nodelink:  o.Nodelink,
		Detailed:  o.Detailed,
		Scale:     o.Scale,
	}
}

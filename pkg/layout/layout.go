// Package layout provides the core grid pipeline for Isogrid.
//
// This package implements the complete tree → grid → render pipeline that
// can be used by CLI, API, and TUI components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Trees: Load the row and column axis trees and flatten them to metrics
//  2. Grid: Compute track templates and placements for every header and cell
//  3. Render: Generate output in various formats (JSON, DOT, SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := layout.NewRunner(cache, nil, logger)
//	opts := layout.Options{
//	    RowTreePath: "rows.json",
//	    ColTreePath: "cols.json",
//	    Formats:     []string{"json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	snapshot := result.Artifacts["json"]
package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/isogrid/isogrid/pkg/axistree"
	"github.com/isogrid/isogrid/pkg/cache"
	"github.com/isogrid/isogrid/pkg/pafv"
	"github.com/isogrid/isogrid/pkg/placement"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Axis selector constants for diagram rendering.
const (
	AxisRow = "row"
	AxisCol = "col"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the grid pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Tree options. Paths are read from disk; the direct tree fields take
	// precedence and are what API handlers and tests inject.
	RowTreePath string         `json:"row_tree_path,omitempty"`
	ColTreePath string         `json:"col_tree_path,omitempty"`
	RowTree     *axistree.Node `json:"-"`
	ColTree     *axistree.Node `json:"-"`

	// Mapping is the active axis assignment; it participates in the cache
	// key so different facet configurations cache separately.
	Mapping pafv.Mapping `json:"mapping,omitempty"`

	// Grid options
	Template placement.TemplateOptions `json:"template,omitempty"`
	Refresh  bool                      `json:"refresh,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	DiagramAxis string   `json:"diagram_axis,omitempty"` // row or col, for dot/svg
	Detailed    bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RowMetrics and ColMetrics are the flattened axis trees.
	RowMetrics axistree.Metrics
	ColMetrics axistree.Metrics

	// Grid holds the computed template and placements.
	Grid Grid

	// TreeHash is the combined content hash of both trees.
	TreeHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RowNodeCount int
	ColNodeCount int
	CellCount    int
	TreeTime     time.Duration
	GridTime     time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GridHit   bool // Whether the grid came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg)", format)
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

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForTrees(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForTrees checks required fields for tree loading.
func (o *Options) ValidateForTrees() error {
	if o.RowTree == nil && o.RowTreePath == "" {
		return fmt.Errorf("row tree is required")
	}
	if o.ColTree == nil && o.ColTreePath == "" {
		return fmt.Errorf("column tree is required")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.DiagramAxis == "" {
		o.DiagramAxis = AxisRow
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutKeyOpts returns cache key options for grid computation.
func (o *Options) LayoutKeyOpts(rowMetrics, colMetrics axistree.Metrics) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		ColHeaderDepth: colMetrics.Depth,
		RowHeaderDepth: rowMetrics.Depth,
		CellWidth:      o.Template.DataColWidth,
		CellHeight:     o.Template.DataRowHeight,
		HeaderWidth:    o.Template.HeaderColWidth,
		HeaderHeight:   o.Template.HeaderRowHeight,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	theme := o.DiagramAxis
	if o.Detailed {
		theme += ":detailed"
	}
	return cache.ArtifactKeyOpts{
		Format: format,
		Theme:  theme,
	}
}

// MappingHash returns a stable hash of the axis mapping for cache keys.
func (o *Options) MappingHash() string {
	data, _ := json.Marshal(o.Mapping)
	return cache.Hash(data)
}

package layout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/isogrid/isogrid/pkg/axistree"
	"github.com/isogrid/isogrid/pkg/cache"
	"github.com/isogrid/isogrid/pkg/observability"
	"github.com/isogrid/isogrid/pkg/render/axisdot"
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

// Execute runs the complete tree → grid → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Trees
	treeStart := time.Now()
	rowMetrics, colMetrics, err := r.LoadTrees(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("trees: %w", err)
	}
	result.RowMetrics = rowMetrics
	result.ColMetrics = colMetrics
	result.Stats.TreeTime = time.Since(treeStart)
	result.Stats.RowNodeCount = len(rowMetrics.FlatNodes)
	result.Stats.ColNodeCount = len(colMetrics.FlatNodes)
	result.TreeHash = treeHash(rowMetrics, colMetrics)

	r.Logger.Info("loaded axis trees",
		"row_nodes", result.Stats.RowNodeCount,
		"col_nodes", result.Stats.ColNodeCount,
		"duration", result.Stats.TreeTime)

	// Stage 2: Grid
	gridStart := time.Now()
	grid, gridHit, err := r.BuildGridWithCacheInfo(ctx, result.TreeHash, rowMetrics, colMetrics, opts)
	if err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}
	result.Grid = grid
	result.Stats.GridTime = time.Since(gridStart)
	result.Stats.CellCount = len(grid.Cells)
	result.CacheInfo.GridHit = gridHit

	r.Logger.Info("computed grid",
		"cells", result.Stats.CellCount,
		"duration", result.Stats.GridTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadTrees loads and flattens both axis trees.
func (r *Runner) LoadTrees(ctx context.Context, opts Options) (rowMetrics, colMetrics axistree.Metrics, err error) {
	if err := opts.ValidateForTrees(); err != nil {
		return axistree.Metrics{}, axistree.Metrics{}, err
	}

	rowTree, err := r.loadTree(ctx, opts.RowTree, opts.RowTreePath)
	if err != nil {
		return axistree.Metrics{}, axistree.Metrics{}, fmt.Errorf("row tree: %w", err)
	}
	colTree, err := r.loadTree(ctx, opts.ColTree, opts.ColTreePath)
	if err != nil {
		return axistree.Metrics{}, axistree.Metrics{}, fmt.Errorf("column tree: %w", err)
	}

	return axistree.ComputeMetrics(rowTree), axistree.ComputeMetrics(colTree), nil
}

func (r *Runner) loadTree(ctx context.Context, tree *axistree.Node, path string) (*axistree.Node, error) {
	if tree != nil {
		return tree, nil
	}

	start := time.Now()
	observability.Layout().OnTreeLoadStart(ctx, path)
	loaded, err := axistree.ReadTreeFile(path)
	nodeCount := 0
	if loaded != nil {
		nodeCount = countNodes(loaded)
	}
	observability.Layout().OnTreeLoadComplete(ctx, path, nodeCount, time.Since(start), err)
	return loaded, err
}

// BuildGridWithCacheInfo computes the grid with caching and returns cache hit info.
func (r *Runner) BuildGridWithCacheInfo(ctx context.Context, hash string, rowMetrics, colMetrics axistree.Metrics, opts Options) (Grid, bool, error) {
	cacheKey := r.Keyer.LayoutKey(hash, opts.MappingHash(), opts.LayoutKeyOpts(rowMetrics, colMetrics))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "layout")
			cached, err := UnmarshalGrid(data)
			if err == nil {
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		} else {
			observability.Cache().OnCacheMiss(ctx, "layout")
		}
	}

	start := time.Now()
	observability.Layout().OnLayoutStart(ctx, rowMetrics.LeafCount*colMetrics.LeafCount)
	grid := BuildGrid(rowMetrics, colMetrics, opts.Template)
	observability.Layout().OnLayoutComplete(ctx, rowMetrics.LeafCount*colMetrics.LeafCount, time.Since(start), nil)

	// Cache the result
	if data, err := MarshalGrid(grid); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return grid, false, nil // Cache miss
}

// BuildGrid is a convenience wrapper that discards the cache hit info.
func (r *Runner) BuildGrid(ctx context.Context, hash string, rowMetrics, colMetrics axistree.Metrics, opts Options) (Grid, error) {
	grid, _, err := r.BuildGridWithCacheInfo(ctx, hash, rowMetrics, colMetrics, opts)
	return grid, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	gridData, err := MarshalGrid(result.Grid)
	if err != nil {
		return nil, false, fmt.Errorf("serialize grid for cache key: %w", err)
	}
	gridHash := cache.Hash(gridData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(gridHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		start := time.Now()
		observability.Layout().OnRenderStart(ctx, format)
		data, err := r.renderFormat(format, result, opts)
		observability.Layout().OnRenderComplete(ctx, format, time.Since(start), err)
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		rendered[format] = data
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(gridHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

func (r *Runner) renderFormat(format string, result *Result, opts Options) ([]byte, error) {
	diagram := result.RowMetrics
	if opts.DiagramAxis == AxisCol {
		diagram = result.ColMetrics
	}

	switch format {
	case FormatJSON:
		return MarshalGrid(result.Grid)
	case FormatDOT:
		return []byte(axisdot.ToDOT(diagram, axisdot.Options{Detailed: opts.Detailed})), nil
	case FormatSVG:
		return axisdot.RenderSVG(axisdot.ToDOT(diagram, axisdot.Options{Detailed: opts.Detailed}))
	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
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

// treeHash derives the combined content hash of both flattened trees.
func treeHash(rowMetrics, colMetrics axistree.Metrics) string {
	row, _ := json.Marshal(rowMetrics)
	col, _ := json.Marshal(colMetrics)
	return cache.Hash(append(row, col...))
}

func countNodes(n *axistree.Node) int {
	count := 1
	for _, c := range n.Children {
		count += countNodes(c)
	}
	return count
}

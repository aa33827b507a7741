// Package pkg provides the core libraries for Isogrid faceted grid layout.
//
// # Overview
//
// Isogrid projects faceted, hierarchical data onto a two-dimensional grid:
// facets become axes, axis trees become nested headers, and leaf pairs
// become data cells. The pkg directory is organized into four main areas:
//
//  1. Domain logic - axis trees, placement math, the facet/axis model
//  2. Navigation - the cartographic pan/zoom controller
//  3. Infrastructure - caching, persistence, configuration
//  4. Pipeline - orchestration (trees → grid → artifacts)
//
// # Architecture
//
// The typical data flow through Isogrid:
//
//	Axis tree files (JSON)
//	         ↓
//	    [axistree] package (flatten into leaf spans)
//	         ↓
//	    [placement] package (1-based grid track placements)
//	         ↓
//	    [layout] package (grid document + rendering)
//	         ↓
//	    JSON/DOT/SVG output
//
// Interactive use adds:
//
//	    [pafv] package (facet-to-axis mapping, drag/drop, reflow)
//	    [carto] package (pan/zoom with elastic boundaries)
//
// # Quick Start
//
// Compute a grid from two axis trees:
//
//	import (
//	    "context"
//	    "github.com/isogrid/isogrid/pkg/layout"
//	)
//
//	runner := layout.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), layout.Options{
//	    RowTreePath: "rows.json",
//	    ColTreePath: "cols.json",
//	    Formats:     []string{layout.FormatJSON, layout.FormatSVG},
//	})
//
// # Main Packages
//
// ## Domain Logic
//
// [axistree] - Axis tree model and metrics. Flattens a hierarchy into
// depth-first pre-order with per-node leaf spans, the basis of all header
// placement.
//
// [placement] - Pure placement math: 1-based end-exclusive grid track
// coordinates for row headers, column headers and data cells, plus the
// grid template.
//
// [pafv] - The point/axis/facet/value model: the facet catalog, the
// slot mapping with validation, the axis service with persistence, and
// the drag/drop reposition engine with reflow animation.
//
// ## Navigation
//
// [carto] - Cartographic pan/zoom controller with zoom extent clamping,
// elastic boundary resistance and frame-clock driven animations.
//
// [coords] - Coordinate transforms between screen, content and cell space.
//
// ## Infrastructure
//
// [cache] - Layered cache (file, Redis, null) with content-addressed keys
// for trees, grids and rendered artifacts.
//
// [axisstore] - Facet and view-state persistence (memory, file, MongoDB).
//
// [config] - TOML configuration with compiled defaults.
//
// [errors] - Structured error codes and input validation.
//
// [observability] - Pluggable hooks for layout, navigation, cache and
// store events.
//
// ## Pipeline & Rendering
//
// [layout] - The grid pipeline: load trees, build the grid, render
// artifacts, all cache-aware.
//
// [render/axisdot] - Graphviz diagrams of axis trees.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/placement/...  # Specific package
//
// [axistree]: https://pkg.go.dev/github.com/isogrid/isogrid/pkg/axistree
// [placement]: https://pkg.go.dev/github.com/isogrid/isogrid/pkg/placement
// [pafv]: https://pkg.go.dev/github.com/isogrid/isogrid/pkg/pafv
// [carto]: https://pkg.go.dev/github.com/isogrid/isogrid/pkg/carto
// [coords]: https://pkg.go.dev/github.com/isogrid/isogrid/pkg/coords
// [cache]: https://pkg.go.dev/github.com/isogrid/isogrid/pkg/cache
// [axisstore]: https://pkg.go.dev/github.com/isogrid/isogrid/pkg/axisstore
// [config]: https://pkg.go.dev/github.com/isogrid/isogrid/pkg/config
// [errors]: https://pkg.go.dev/github.com/isogrid/isogrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/isogrid/isogrid/pkg/observability
// [layout]: https://pkg.go.dev/github.com/isogrid/isogrid/pkg/layout
// [render/axisdot]: https://pkg.go.dev/github.com/isogrid/isogrid/pkg/render/axisdot
package pkg

// Package render provides visualization rendering for axis trees.
//
// # Overview
//
// This package groups the rendering subpackages that turn flattened axis
// trees into visual outputs:
//
//   - Graphviz diagrams of axis hierarchies (in [axisdot] subpackage)
//
// # Axis Diagrams
//
// The [axisdot] subpackage renders an axis tree as a directed Graphviz
// diagram. Internal nodes appear as boxes connected top-down to their
// children; leaves are shaded. With the Detailed option each node is
// annotated with its depth and covered leaf span.
//
//	m := axistree.ComputeMetrics(root)
//	dot := axisdot.ToDOT(m, axisdot.Options{Detailed: true})
//	svg, err := axisdot.RenderSVG(ctx, dot)
//
// [axisdot]: github.com/isogrid/isogrid/pkg/render/axisdot
package render

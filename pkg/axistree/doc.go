// Package axistree computes spannable header metrics over hierarchical axis
// trees.
//
// An axis in the PAFV model (Point/Axis/Facet/Value) is backed by a tree of
// [Node] values: each level of the tree is one header level of the grid
// (e.g. Category → Folder → Item). The package flattens such a tree into
// ordered leaf spans that make CSS-grid style header spanning possible.
//
// # Core Types
//
//   - [Node]: caller-owned hierarchical input (immutable during computation)
//   - [FlatNode]: one emitted entry per non-root node, carrying depth, path
//     and the contiguous leaf span (LeafStart, LeafCount)
//   - [Metrics]: the flattened result with overall depth and leaf count
//
// # Leaf Ordering
//
// Leaves are numbered left to right in depth-first pre-order, starting at 0.
// This numbering is the canonical leaf order used by grid placement and by
// cell addressing everywhere else in the system. For every internal node the
// span (LeafStart, LeafCount) covers exactly its descendant leaves, with no
// gaps and no overlap between siblings.
//
// # Conventions
//
// The root passed to [ComputeMetrics] is virtual: it is never emitted as a
// FlatNode and does not count toward depth. A childless root therefore
// produces Metrics{Depth: 1, LeafCount: 0, FlatNodes: nil}: one (empty)
// header level, zero leaves.
//
// # Usage
//
//	root := &axistree.Node{ID: "root", Children: []*axistree.Node{
//	    {ID: "a", Label: "Alpha"},
//	    {ID: "b", Label: "Beta"},
//	}}
//	m := axistree.ComputeMetrics(root)
//	// m.Depth == 1, m.LeafCount == 2
//
// All functions are pure and safe for concurrent use.
package axistree

package axistree

// FlatNode is one entry of the flattened tree: the node itself plus the
// placement facts grid layout needs. Exactly one FlatNode is emitted per
// non-root node, in depth-first pre-order.
type FlatNode struct {
	Node      *Node    `json:"node"`
	Depth     int      `json:"depth"`     // 0-based from the first real level
	LeafStart int      `json:"leafStart"` // first covered leaf index
	LeafCount int      `json:"leafCount"` // number of covered leaves
	Path      []string `json:"path"`      // node IDs from below the virtual root, inclusive
	IsLeaf    bool     `json:"isLeaf"`
}

// LeafEnd returns the exclusive end of the node's leaf span.
func (f FlatNode) LeafEnd() int { return f.LeafStart + f.LeafCount }

// Metrics is the flattened form of an axis tree.
//
// Depth is 1 + the maximum FlatNode depth; a childless root yields Depth 1
// and LeafCount 0 (the virtual root counts for a single, empty header level).
type Metrics struct {
	Depth     int        `json:"depth"`
	LeafCount int        `json:"leafCount"`
	FlatNodes []FlatNode `json:"flatNodes"`
}

// ComputeMetrics flattens root into ordered leaf spans, depths and paths.
//
// The traversal is depth-first pre-order. Leaves are numbered left to right
// starting at 0; an internal node inherits LeafStart from its first
// descendant leaf and sums its children's LeafCount. The root itself is
// virtual and never emitted.
//
// A nil root is treated like a childless root.
func ComputeMetrics(root *Node) Metrics {
	m := Metrics{Depth: 1}
	if root == nil {
		return m
	}

	maxDepth := 0
	leafCounter := 0

	var walk func(n *Node, depth int, prefix []string) int
	walk = func(n *Node, depth int, prefix []string) int {
		if depth > maxDepth {
			maxDepth = depth
		}

		path := make([]string, len(prefix)+1)
		copy(path, prefix)
		path[len(prefix)] = n.ID

		// Reserve the slot now so pre-order position is preserved; the
		// span is only known after the subtree has been visited.
		idx := len(m.FlatNodes)
		m.FlatNodes = append(m.FlatNodes, FlatNode{
			Node:   n,
			Depth:  depth,
			Path:   path,
			IsLeaf: n.IsLeaf(),
		})

		if n.IsLeaf() {
			m.FlatNodes[idx].LeafStart = leafCounter
			m.FlatNodes[idx].LeafCount = 1
			leafCounter++
			return 1
		}

		start := leafCounter
		count := 0
		for _, child := range n.Children {
			count += walk(child, depth+1, path)
		}
		m.FlatNodes[idx].LeafStart = start
		m.FlatNodes[idx].LeafCount = count
		return count
	}

	for _, child := range root.Children {
		walk(child, 0, nil)
	}

	m.LeafCount = leafCounter
	if len(m.FlatNodes) > 0 {
		m.Depth = maxDepth + 1
	}
	return m
}

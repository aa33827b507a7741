package axistree

import "slices"

// LeafNodes returns the FlatNodes that are leaves, in canonical leaf order.
func LeafNodes(m Metrics) []FlatNode {
	var leaves []FlatNode
	for _, f := range m.FlatNodes {
		if f.IsLeaf {
			leaves = append(leaves, f)
		}
	}
	return leaves
}

// HeaderNodes returns all FlatNodes (the virtual root is never present) in
// traversal order. The result aliases the Metrics slice; callers must not
// mutate it.
func HeaderNodes(m Metrics) []FlatNode {
	return m.FlatNodes
}

// FindNodeByID returns the FlatNode with the given node ID, or nil if no
// such node exists. Lookup is linear; trees are small.
func FindNodeByID(m Metrics, id string) *FlatNode {
	for i := range m.FlatNodes {
		if m.FlatNodes[i].Node.ID == id {
			return &m.FlatNodes[i]
		}
	}
	return nil
}

// FindNodeByPath returns the FlatNode whose path matches exactly, or nil on
// a miss. The path excludes the virtual root and ends with the node's own ID.
func FindNodeByPath(m Metrics, path []string) *FlatNode {
	for i := range m.FlatNodes {
		if slices.Equal(m.FlatNodes[i].Path, path) {
			return &m.FlatNodes[i]
		}
	}
	return nil
}

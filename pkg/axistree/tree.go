package axistree

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Node is a labeled tree node describing one level of a hierarchical facet.
// Nodes are owned by the caller (typically derived from the axis metadata
// service) and treated as immutable by this package.
//
// A node with no children is a leaf. The zero value is usable but carries an
// empty ID; IDs should be unique within one tree for path lookups to behave.
type Node struct {
	ID       string  `json:"id"`
	Label    string  `json:"label,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// ReadTreeFile reads a JSON axis tree from a file.
func ReadTreeFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTree(f)
}

// ReadTree decodes a JSON axis tree from an io.Reader.
func ReadTree(r io.Reader) (*Node, error) {
	var root Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode axis tree: %w", err)
	}
	return &root, nil
}

// WriteTree writes an axis tree as indented JSON to an io.Writer.
func WriteTree(root *Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode axis tree: %w", err)
	}
	return nil
}

// WriteTreeFile writes an axis tree to a JSON file with 0644 permissions.
func WriteTreeFile(root *Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteTree(root, f)
}

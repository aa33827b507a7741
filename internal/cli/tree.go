package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/isogrid/isogrid/pkg/axistree"
)

// treeCommand creates the tree command for inspecting axis tree files.
func (c *CLI) treeCommand() *cobra.Command {
	var showLeaves bool

	cmd := &cobra.Command{
		Use:   "tree <tree.json>",
		Short: "Inspect an axis tree file",
		Long: `Inspect an axis tree file.

Reads the tree, flattens it and prints depth, leaf count and the
per-node leaf spans that drive header placement. Useful for checking a
tree before feeding it to 'layout'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(args[0], showLeaves)
		},
	}

	cmd.Flags().BoolVar(&showLeaves, "leaves", false, "list only leaf nodes")

	return cmd
}

func (c *CLI) runTree(path string, showLeaves bool) error {
	root, err := axistree.ReadTreeFile(path)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", path, err)
	}

	m := axistree.ComputeMetrics(root)

	printSuccess("Parsed %s", path)
	printKeyValue("depth", fmt.Sprintf("%d", m.Depth))
	printKeyValue("leaves", fmt.Sprintf("%d", m.LeafCount))
	printKeyValue("nodes", fmt.Sprintf("%d", len(m.FlatNodes)))
	printNewline()

	nodes := m.FlatNodes
	if showLeaves {
		nodes = axistree.LeafNodes(m)
	}
	for _, n := range nodes {
		indent := strings.Repeat("  ", n.Depth)
		span := fmt.Sprintf("[%d,%d)", n.LeafStart, n.LeafEnd())
		label := n.Node.DisplayLabel()
		printDetail("%s%s %s", indent, label, span)
	}

	return nil
}

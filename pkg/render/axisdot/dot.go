// Package axisdot renders axis trees as Graphviz diagrams.
//
// The DOT output shows the hierarchy one axis imposes on the grid: header
// nodes as boxes, leaves annotated with their position in the flattened
// leaf order. It is a debugging and documentation surface, not part of the
// interactive grid.
package axisdot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/isogrid/isogrid/pkg/axistree"
)

// Options configures axis-tree diagram rendering.
type Options struct {
	// Detailed includes depth and leaf-span annotations in node labels.
	// When false, only the display label is shown.
	Detailed bool
}

// ToDOT converts flattened axis-tree metrics to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Leaf nodes are filled to distinguish them from grouping headers.
func ToDOT(m axistree.Metrics, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph axis {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, f := range m.FlatNodes {
		label := fmtLabel(f, opts.Detailed)
		attrs := fmtAttrs(f, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeKey(f), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, f := range m.FlatNodes {
		if len(f.Path) < 2 {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", pathKey(f.Path[:len(f.Path)-1]), nodeKey(f))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeKey builds a DOT node identifier from the node's path, so labels can
// repeat across subtrees without colliding.
func nodeKey(f axistree.FlatNode) string {
	return pathKey(f.Path)
}

func pathKey(path []string) string {
	return strings.Join(path, "/")
}

func fmtLabel(f axistree.FlatNode, detailed bool) string {
	label := f.Node.DisplayLabel()
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("depth: %d", f.Depth)}
	if f.IsLeaf {
		parts = append(parts, fmt.Sprintf("leaf: %d", f.LeafStart))
	} else {
		parts = append(parts, fmt.Sprintf("leaves: [%d,%d)", f.LeafStart, f.LeafEnd()))
	}

	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(f axistree.FlatNode, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if f.IsLeaf {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

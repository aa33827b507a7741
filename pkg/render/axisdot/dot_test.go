package axisdot

import (
	"strings"
	"testing"

	"github.com/isogrid/isogrid/pkg/axistree"
)

func testMetrics() axistree.Metrics {
	root := &axistree.Node{
		Children: []*axistree.Node{
			{
				ID:    "g1",
				Label: "Group One",
				Children: []*axistree.Node{
					{ID: "a", Label: "Alpha"},
					{ID: "b", Label: "Beta"},
				},
			},
			{ID: "c", Label: "Gamma"},
		},
	}
	return axistree.ComputeMetrics(root)
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testMetrics(), Options{})

	if !strings.HasPrefix(dot, "digraph axis {") {
		t.Errorf("missing digraph header:\n%s", dot)
	}
	for _, label := range []string{"Group One", "Alpha", "Beta", "Gamma"} {
		if !strings.Contains(dot, label) {
			t.Errorf("missing node label %q:\n%s", label, dot)
		}
	}
	// Parent-child edges use ID path keys.
	if !strings.Contains(dot, `"g1" -> "g1/a"`) {
		t.Errorf("missing hierarchy edge:\n%s", dot)
	}
	// Top-level nodes have no incoming edge from the virtual root.
	if strings.Contains(dot, `-> "g1";`) || strings.Contains(dot, `-> "c";`) {
		t.Errorf("virtual root leaked into edges:\n%s", dot)
	}
	// Leaves are filled.
	if !strings.Contains(dot, "fillcolor=lightgrey") {
		t.Errorf("leaf fill missing:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testMetrics(), Options{Detailed: true})

	if !strings.Contains(dot, "depth: 0") {
		t.Errorf("missing depth annotation:\n%s", dot)
	}
	// Group One spans leaves [0,2).
	if !strings.Contains(dot, "leaves: [0,2)") {
		t.Errorf("missing span annotation:\n%s", dot)
	}
	// Gamma is leaf index 2.
	if !strings.Contains(dot, "leaf: 2") {
		t.Errorf("missing leaf index annotation:\n%s", dot)
	}
}

func TestToDOTEmptyTree(t *testing.T) {
	dot := ToDOT(axistree.ComputeMetrics(nil), Options{})
	if !strings.HasPrefix(dot, "digraph axis {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty tree should still produce a valid digraph:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?><svg width="8pt" height="6pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g></g></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("pixel size not applied: %s", out)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	in := []byte("<svg></svg>")
	if got := normalizeViewBox(in); string(got) != "<svg></svg>" {
		t.Errorf("untouched SVG changed: %s", got)
	}
}

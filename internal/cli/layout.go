package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/isogrid/isogrid/pkg/layout"
)

// layoutCommand creates the layout command for computing grid layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		formats string
	)
	opts := layout.Options{}

	cmd := &cobra.Command{
		Use:   "layout <row-tree.json> <col-tree.json>",
		Short: "Compute a grid layout from two axis trees",
		Long: `Compute a grid layout from two axis trees.

The layout command takes a row tree and a column tree (JSON axis-tree
files) and computes nested header placements, data cell placements and
the grid template. Output formats:

  json   grid document with template, headers and cells
  dot    Graphviz source for the selected axis tree
  svg    rendered diagram of the selected axis tree

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.RowTreePath = args[0]
			opts.ColTreePath = args[1]
			opts.Formats = parseFormats(formats)
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: alongside the row tree)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	// Render flags
	cmd.Flags().StringVarP(&formats, "formats", "f", layout.FormatJSON, "comma-separated output formats: json, dot, svg")
	cmd.Flags().StringVar(&opts.DiagramAxis, "diagram-axis", layout.AxisRow, "axis tree used for dot/svg diagrams: row or col")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "annotate diagrams with depth and leaf spans")

	// Template flags
	cmd.Flags().Float64Var(&opts.Template.DataColWidth, "cell-width", 0, "data column width (default from config)")
	cmd.Flags().Float64Var(&opts.Template.DataRowHeight, "cell-height", 0, "data row height (default from config)")
	cmd.Flags().Float64Var(&opts.Template.HeaderColWidth, "header-width", 0, "header column width")
	cmd.Flags().Float64Var(&opts.Template.HeaderRowHeight, "header-height", 0, "header row height")

	return cmd
}

// runLayout executes the pipeline and writes one output file per format.
func (c *CLI) runLayout(ctx context.Context, opts layout.Options, output string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.Template.DataColWidth == 0 {
		opts.Template.DataColWidth = cfg.Grid.CellWidth
	}
	if opts.Template.DataRowHeight == 0 {
		opts.Template.DataRowHeight = cfg.Grid.CellHeight
	}
	if opts.Template.HeaderColWidth == 0 {
		opts.Template.HeaderColWidth = cfg.Grid.HeaderWidth
	}
	if opts.Template.HeaderRowHeight == 0 {
		opts.Template.HeaderRowHeight = cfg.Grid.HeaderHeight
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing grid layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outDir := output
	if outDir == "" {
		outDir = filepath.Dir(opts.RowTreePath)
	}
	base := strings.TrimSuffix(filepath.Base(opts.RowTreePath), filepath.Ext(opts.RowTreePath))

	printSuccess("Layout complete")
	for _, format := range opts.Formats {
		body, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := filepath.Join(outDir, base+".grid."+format)
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.RowMetrics.LeafCount, result.ColMetrics.LeafCount, result.Stats.CellCount, result.CacheInfo.GridHit)
	printNewline()
	printNextStep("Explore", "isogrid explore "+opts.RowTreePath+" "+opts.ColTreePath)

	return nil
}

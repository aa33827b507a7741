package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/isogrid/isogrid/pkg/axistree"
	"github.com/isogrid/isogrid/pkg/carto"
	"github.com/isogrid/isogrid/pkg/layout"
	"github.com/isogrid/isogrid/pkg/pafv"
	"github.com/isogrid/isogrid/pkg/placement"
)

// exploreCommand creates the interactive grid explorer.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		canvasID string
		viewName string
	)

	cmd := &cobra.Command{
		Use:   "explore <row-tree.json> <col-tree.json>",
		Short: "Navigate a grid interactively",
		Long: `Navigate a grid interactively.

Opens a terminal UI over the grid built from the two axis trees. Arrow
keys pan one cell, +/- zoom, and facets from the configured store can
be assigned to slots without leaving the session. Axis changes persist
to the (canvas, view) pair and trigger a reflow animation.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), args[0], args[1], canvasID, viewName)
		},
	}

	cmd.Flags().StringVar(&canvasID, "canvas", "default", "canvas the view belongs to")
	cmd.Flags().StringVar(&viewName, "view", "grid", "view whose state to load and persist")

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, rowPath, colPath, canvasID, viewName string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	rowRoot, err := axistree.ReadTreeFile(rowPath)
	if err != nil {
		return fmt.Errorf("load row tree %s: %w", rowPath, err)
	}
	colRoot, err := axistree.ReadTreeFile(colPath)
	if err != nil {
		return fmt.Errorf("load column tree %s: %w", colPath, err)
	}

	rowM := axistree.ComputeMetrics(rowRoot)
	colM := axistree.ComputeMetrics(colRoot)
	grid := layout.BuildGrid(rowM, colM, placement.TemplateOptions{
		DataColWidth:    cfg.Grid.CellWidth,
		DataRowHeight:   cfg.Grid.CellHeight,
		HeaderColWidth:  cfg.Grid.HeaderWidth,
		HeaderRowHeight: cfg.Grid.HeaderHeight,
	})

	st, err := c.newStores(ctx)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	svc := pafv.NewService(ctx, st.Facets, st.Views, pafv.ServiceConfig{
		CanvasID: canvasID,
		ViewName: viewName,
	}, c.Logger)
	defer svc.Destroy()

	// One manual clock drives both the pan/zoom controller and the reflow
	// engine; the TUI advances it on its frame ticks.
	clock := carto.NewManualClock(time.Now())

	var model *ExploreModel

	ctrl := carto.New(clock, carto.Config{
		ViewportWidth:   800,
		ViewportHeight:  600,
		ContentWidth:    grid.Template.TotalWidth(),
		ContentHeight:   grid.Template.TotalHeight(),
		CellWidth:       cfg.Grid.CellWidth,
		CellHeight:      cfg.Grid.CellHeight,
		ZoomMin:         cfg.Navigation.ZoomMin,
		ZoomMax:         cfg.Navigation.ZoomMax,
		ZoomStep:        cfg.Navigation.ZoomStep,
		Resistance:      cfg.Navigation.Resistance,
		ResistanceZone:  cfg.Navigation.ResistanceZone,
		AnchorMode:      cfg.Navigation.Origin == "anchor",
		EnableSmoothing: true,
	}, carto.Callbacks{
		OnTransform: func(tr carto.Transform) {
			if model != nil {
				model.SetTransform(tr)
			}
		},
		OnBoundaryHit: func(b carto.BoundaryStatus) {
			if model != nil {
				model.SetBoundary(b)
			}
		},
	}, c.Logger)
	defer ctrl.Destroy()
	ctrl.UpdateHeaderState(carto.HeaderState{
		LeftOffset: grid.HeaderLeft,
		TopOffset:  grid.HeaderTop,
	})

	engine := pafv.NewEngine(svc, clock, pafv.EngineCallbacks{
		OnReflowStart: func() {
			if model != nil {
				model.SetReflow(true, 0)
			}
		},
		OnReflowComplete: func(pafv.ReflowStats) {
			if model != nil {
				model.SetReflow(false, 1)
			}
		},
		RenderStep: func(progress float64) error {
			if model != nil {
				model.SetReflow(true, progress)
			}
			return nil
		},
	}, c.Logger)
	defer engine.Destroy()

	model = NewExploreModel(rowM, colM, ctrl, engine, svc, clock)

	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run explorer: %w", err)
	}
	return nil
}

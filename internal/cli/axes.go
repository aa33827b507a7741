package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/isogrid/isogrid/pkg/pafv"
)

// axesCommand creates the axes command group for facet-to-slot management.
func (c *CLI) axesCommand() *cobra.Command {
	var (
		canvasID string
		viewName string
	)

	cmd := &cobra.Command{
		Use:   "axes",
		Short: "Manage facet-to-axis assignments",
		Long: `Manage facet-to-axis assignments.

Facets from the configured store can be assigned to the x, y and z grid
slots. Assignments are persisted per (canvas, view) pair.`,
	}

	cmd.PersistentFlags().StringVar(&canvasID, "canvas", "default", "canvas the view belongs to")
	cmd.PersistentFlags().StringVar(&viewName, "view", "grid", "view whose mapping to manage")

	cmd.AddCommand(c.axesListCommand(&canvasID, &viewName))
	cmd.AddCommand(c.axesAssignCommand(&canvasID, &viewName))
	cmd.AddCommand(c.axesSwapCommand(&canvasID, &viewName))
	cmd.AddCommand(c.axesClearCommand(&canvasID, &viewName))

	return cmd
}

// newAxisService opens the configured backends and builds a service for the
// named view. The caller must call the returned cleanup.
func (c *CLI) newAxisService(ctx context.Context, canvasID, viewName string) (*pafv.Service, func(), error) {
	st, err := c.newStores(ctx)
	if err != nil {
		return nil, nil, err
	}
	svc := pafv.NewService(ctx, st.Facets, st.Views, pafv.ServiceConfig{
		CanvasID: canvasID,
		ViewName: viewName,
	}, c.Logger)
	cleanup := func() {
		svc.Destroy()
		_ = st.Close(ctx)
	}
	return svc, cleanup, nil
}

func (c *CLI) axesListCommand(canvasID, viewName *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available axes and the current mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := c.newAxisService(cmd.Context(), *canvasID, *viewName)
			if err != nil {
				return err
			}
			defer cleanup()

			printAxesTable(svc.AvailableAxes(), svc.Mapping())
			return nil
		},
	}
}

func (c *CLI) axesAssignCommand(canvasID, viewName *string) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <slot> <axis-id>",
		Short: "Assign a facet to a grid slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, ok := parseSlotArg(args[0])
			if !ok {
				return fmt.Errorf("unknown slot %q (want x, y or z)", args[0])
			}
			svc, cleanup, err := c.newAxisService(cmd.Context(), *canvasID, *viewName)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.AssignAxis(slot, args[1]); err != nil {
				return err
			}
			printSuccess("Assigned %s to %s", args[1], slot)
			printAxesTable(svc.AvailableAxes(), svc.Mapping())
			return nil
		},
	}
}

func (c *CLI) axesSwapCommand(canvasID, viewName *string) *cobra.Command {
	return &cobra.Command{
		Use:   "swap <slot> <slot>",
		Short: "Exchange the facets of two grid slots",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slotA, okA := parseSlotArg(args[0])
			slotB, okB := parseSlotArg(args[1])
			if !okA || !okB {
				return fmt.Errorf("unknown slots %q, %q (want x, y or z)", args[0], args[1])
			}
			svc, cleanup, err := c.newAxisService(cmd.Context(), *canvasID, *viewName)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.SwapAxes(slotA, slotB); err != nil {
				return err
			}
			printSuccess("Swapped %s and %s", slotA, slotB)
			printAxesTable(svc.AvailableAxes(), svc.Mapping())
			return nil
		},
	}
}

func (c *CLI) axesClearCommand(canvasID, viewName *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <slot>",
		Short: "Remove the facet assigned to a grid slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, ok := parseSlotArg(args[0])
			if !ok {
				return fmt.Errorf("unknown slot %q (want x, y or z)", args[0])
			}
			svc, cleanup, err := c.newAxisService(cmd.Context(), *canvasID, *viewName)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.ClearAxis(slot); err != nil {
				return err
			}
			printSuccess("Cleared %s", slot)
			return nil
		},
	}
}

func parseSlotArg(s string) (pafv.Slot, bool) {
	switch pafv.Slot(s) {
	case pafv.SlotX, pafv.SlotY, pafv.SlotZ:
		return pafv.Slot(s), true
	}
	return "", false
}

// printAxesTable renders the axes and their slot assignments.
func printAxesTable(axes []pafv.Axis, m pafv.Mapping) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, a := range axes {
		slot := string(m.SlotOf(a.Facet))
		if slot == "" {
			slot = "—"
		}
		enabled := iconSuccess
		if !a.IsEnabled {
			enabled = "—"
		}
		rows = append(rows, []string{a.ID, a.Label, a.LatchDimension, slot, enabled})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Label", "LATCH", "Slot", "On").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			if col == 3 && rows[row][3] != "—" {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle()
		})

	fmt.Println(t.Render())
}

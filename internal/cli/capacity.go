package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/capacity"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/project"
)

// newCapacityCmd creates the capacity command. It prints the controller
// load, per-port pixel loads, and per-feed power loads for a layout.
// The command fails when anything is over its limit.
func newCapacityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capacity <layout.json>",
		Short: "Check controller, port and power feed loads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := project.LoadLayout(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			overloads := 0

			ctrl := capacity.Controller(l)
			ctrlStatus := okStyle.Render("ok")
			if ctrl.Over() {
				ctrlStatus = errorStyle.Render("OVER")
				overloads++
			}
			fmt.Fprintf(out, "%s %s: %d px (%d x %d) %s\n",
				headerStyle.Render("Controller"), ctrl.Model,
				ctrl.TotalPixels, ctrl.WidthPixels, ctrl.HeightPixels, ctrlStatus)

			routeLoads := capacity.RouteLoads(l)
			if len(routeLoads) > 0 {
				rows := make([][]string, 0, len(routeLoads))
				for _, load := range routeLoads {
					status := "ok"
					if load.Over {
						status = "OVER"
						overloads++
					}
					rows = append(rows, []string{
						fmt.Sprintf("%d", load.Port),
						load.RouteID,
						fmt.Sprintf("%d", load.Pixels),
						fmt.Sprintf("%d", model.MaxPortPixels),
						status,
					})
				}
				fmt.Fprintln(out, renderTable([]string{"Port", "Route", "Pixels", "Limit", "Status"}, rows))
			}

			feedLoads := capacity.FeedLoads(l)
			if len(feedLoads) > 0 {
				rows := make([][]string, 0, len(feedLoads))
				for _, load := range feedLoads {
					limit := "-"
					if load.SafeWatts > 0 {
						limit = fmt.Sprintf("%.0f", load.SafeWatts)
					}
					status := "ok"
					if load.Over {
						status = "OVER"
						overloads++
					}
					rows = append(rows, []string{
						load.Label,
						fmt.Sprintf("%d", load.Watts),
						limit,
						status,
					})
				}
				fmt.Fprintln(out, renderTable([]string{"Feed", "Load (W)", "Safe (W)", "Status"}, rows))
			}

			if overloads > 0 {
				return fmt.Errorf("%d capacity limit(s) exceeded", overloads)
			}
			return nil
		},
	}
}

// renderPlainTable draws a bordered table with no per-cell coloring.
func renderPlainTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(roundedTable).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// renderTable draws a bordered table with the shared palette. The last
// column is treated as a status column and colored per cell.
func renderTable(headers []string, rows [][]string) string {
	statusCol := len(headers) - 1
	t := table.New().
		Border(roundedTable).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == statusCol && row >= 0 && row < len(rows) {
				if rows[row][statusCol] == "OVER" {
					return errorStyle
				}
				return okStyle
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/address"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/project"
)

// newAddressCmd creates the address command. It prints the grid address
// and mapping number table for every cabinet, in chain order per route
// followed by unchained cabinets.
func newAddressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address <layout.json>",
		Short: "Print grid addresses and mapping numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := project.LoadLayout(args[0])
			if err != nil {
				return err
			}
			if len(l.Cabinets) == 0 {
				return fmt.Errorf("layout has no cabinets")
			}

			gridLabels := address.GridLabels(l)
			mapping := address.MappingNumbers(l)

			var rows [][]string
			seen := make(map[string]bool)

			routes := append([]model.DataRoute(nil), l.Routes...)
			sort.SliceStable(routes, func(i, j int) bool {
				if routes[i].Port != routes[j].Port {
					return routes[i].Port < routes[j].Port
				}
				return routes[i].ID < routes[j].ID
			})
			for _, r := range routes {
				labels := mapping.ByEndpoint[r.ID]
				for i, s := range r.Steps {
					cs, ok := s.(model.CabinetStep)
					if !ok {
						continue
					}
					c, found := l.CabinetByID(cs.CabinetID)
					if !found || seen[cs.CabinetID] {
						continue
					}
					seen[cs.CabinetID] = true
					label := ""
					if i < len(labels) {
						label = labels[i]
					}
					rows = append(rows, addressRow(c, gridLabels[cs.CabinetID], label, fmt.Sprintf("%d", r.Port)))
				}
			}
			for _, c := range l.Cabinets {
				if seen[c.ID] {
					continue
				}
				rows = append(rows, addressRow(c, gridLabels[c.ID], "", "-"))
			}

			fmt.Fprintln(cmd.OutOrStdout(),
				renderPlainTable([]string{"Address", "Cabinet", "Type", "Port", "Mapping"}, rows))
			return nil
		},
	}
}

func addressRow(c model.Cabinet, gridLabel, mappingNumber, port string) []string {
	m := mappingNumber
	if m == "" {
		m = "-"
	}
	return []string{gridLabel, c.ID, c.TypeID, port, m}
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/project"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/validate"
)

// newValidateCmd creates the validate command. It loads a layout file,
// runs all layout checks, and prints findings with severity coloring.
// The command fails when any error-severity finding is present so it
// can gate CI pipelines.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <layout.json>",
		Short: "Check a wall layout for overlaps, gaps and broken references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			l, err := project.LoadLayout(args[0])
			if err != nil {
				return err
			}
			logger.Debug("loaded layout", "cabinets", len(l.Cabinets), "routes", len(l.Routes))

			findings := validate.Layout(l)
			if len(findings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Layout is valid, no findings."))
				return nil
			}

			errorCount := 0
			for _, f := range findings {
				style := warnStyle
				if f.Severity == validate.SeverityError {
					style = errorStyle
					errorCount++
				}
				line := fmt.Sprintf("%s %s  %s", style.Render(strings.ToUpper(string(f.Severity))), f.Code, f.Message)
				if len(f.CabinetIDs) > 0 {
					line += mutedStyle.Render(fmt.Sprintf("  [%s]", strings.Join(f.CabinetIDs, ", ")))
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}

			if errorCount > 0 {
				return fmt.Errorf("layout has %d error(s)", errorCount)
			}
			return nil
		},
	}
}

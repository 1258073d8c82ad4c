package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/importer"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/project"
)

// newImportCmd creates the import command group.
func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a wall drawing into a layout file",
	}
	cmd.AddCommand(newImportDXFCmd())
	return cmd
}

// newImportDXFCmd creates the dxf subcommand. Closed rectangles in the
// drawing become cabinets; the result is saved as a layout file next to
// the input unless --output is given.
func newImportDXFCmd() *cobra.Command {
	var (
		output string
		mode   string
		pitch  float64
	)

	cmd := &cobra.Command{
		Use:   "dxf <drawing.dxf>",
		Short: "Convert DXF rectangles into a cabinet layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			result := importer.ImportDXF(args[0], mode, pitch)
			for _, w := range result.Warnings {
				logger.Warn(w)
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("import failed: %s", strings.Join(result.Errors, "; "))
			}

			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			l := model.NewLayout(base)
			applyUserDefaults(logger, &l)
			l.Mode = mode
			l.Settings.DefaultPitch = pitch
			l.Cabinets = result.Cabinets
			l.Types = result.Types

			path := output
			if path == "" {
				path = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".json"
			}
			if err := project.SaveLayout(path, l); err != nil {
				return err
			}

			recordRecentLayout(logger, path)
			logger.Info("import complete", "cabinets", len(l.Cabinets), "file", path)
			fmt.Fprintln(cmd.OutOrStdout(),
				okStyle.Render(fmt.Sprintf("Imported %d cabinets into %s", len(l.Cabinets), path)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output layout path")
	cmd.Flags().StringVar(&mode, "mode", model.ModeIndoor, "catalog mode (indoor or outdoor)")
	cmd.Flags().Float64Var(&pitch, "pitch", 2.6, "pixel pitch for unmatched rectangle sizes")
	return cmd
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/export"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/project"
)

// newExportCmd creates the export command group with one subcommand per
// document type: the installation plan PDF, QR cabinet labels, and the
// wiring schedule workbook.
func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate installation documents from a layout",
	}
	cmd.AddCommand(newExportDocCmd("plan", "Render the installation plan PDF", ".pdf", export.ExportPDF))
	cmd.AddCommand(newExportDocCmd("labels", "Render QR-coded cabinet labels", ".pdf", export.ExportLabels))
	cmd.AddCommand(newExportDocCmd("schedule", "Write the wiring schedule workbook", ".xlsx", export.ExportSchedule))
	return cmd
}

// newExportDocCmd builds one export subcommand. All three documents
// share the same shape: load the layout, derive an output path, run the
// exporter, log the elapsed time.
func newExportDocCmd(name, short, ext string, exportFn func(string, model.Layout) error) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <layout.json>", name),
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			l, err := project.LoadLayout(args[0])
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
				if err != nil {
					logger.Warn("could not read app config", "err", err)
					cfg = model.DefaultAppConfig()
				}
				path = project.ExportPath(cfg, args[0], name, ext)
			}

			start := time.Now()
			if err := exportFn(path, l); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			logger.Info("export complete", "file", path,
				"took", time.Since(start).Round(time.Millisecond))
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("Wrote %s", path)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/model"
	"github.com/XamB2836/v0-led-cabinet-layout-editor-sub000/internal/project"
)

// newTemplateCmd creates the template command group for managing wall
// templates and generating layouts from them.
func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage wall templates",
	}
	cmd.AddCommand(newTemplateListCmd())
	cmd.AddCommand(newTemplateAddCmd())
	cmd.AddCommand(newTemplateBuildCmd())
	return cmd
}

func templatePath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return project.DefaultTemplatePath()
}

func newTemplateListCmd() *cobra.Command {
	var store string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved wall templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := templatePath(store)
			if err != nil {
				return err
			}
			ts, err := project.LoadTemplates(path)
			if err != nil {
				return err
			}
			if len(ts.Templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No templates saved."))
				return nil
			}

			rows := make([][]string, 0, len(ts.Templates))
			for _, t := range ts.Templates {
				serp := "row by row"
				if t.Serpentine {
					serp = "serpentine"
				}
				rows = append(rows, []string{
					t.ID, t.Name, t.TypeID,
					fmt.Sprintf("%d x %d", t.Columns, t.Rows), serp,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				renderPlainTable([]string{"ID", "Name", "Type", "Grid", "Chain"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&store, "store", "", "template store path")
	return cmd
}

func newTemplateAddCmd() *cobra.Command {
	var (
		store       string
		typeID      string
		columns     int
		rows        int
		serpentine  bool
		description string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Save a new wall template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := model.CatalogType(typeID); !ok {
				return fmt.Errorf("unknown cabinet type %q", typeID)
			}
			if columns < 1 || rows < 1 {
				return fmt.Errorf("grid must be at least 1 x 1")
			}

			path, err := templatePath(store)
			if err != nil {
				return err
			}
			ts, err := project.LoadTemplates(path)
			if err != nil {
				return err
			}

			t := model.NewWallTemplate(args[0], typeID, columns, rows)
			t.Description = description
			t.Serpentine = serpentine
			ts.Add(t)

			if err := project.SaveTemplates(path, ts); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				okStyle.Render(fmt.Sprintf("Saved template %q (%s)", t.Name, t.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&store, "store", "", "template store path")
	cmd.Flags().StringVar(&typeID, "type", "IC-500x500-P2.6", "catalog cabinet type")
	cmd.Flags().IntVar(&columns, "columns", 4, "cabinets per row")
	cmd.Flags().IntVar(&rows, "rows", 3, "number of rows")
	cmd.Flags().BoolVar(&serpentine, "serpentine", false, "alternate chain direction per row")
	cmd.Flags().StringVar(&description, "description", "", "template description")
	return cmd
}

func newTemplateBuildCmd() *cobra.Command {
	var (
		store  string
		output string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "build <template-name-or-id>",
		Short: "Generate a layout file from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := templatePath(store)
			if err != nil {
				return err
			}
			ts, err := project.LoadTemplates(path)
			if err != nil {
				return err
			}

			t := ts.FindByID(args[0])
			if t == nil {
				t = ts.FindByName(args[0])
			}
			if t == nil {
				return fmt.Errorf("template %q not found", args[0])
			}

			layoutName := name
			if layoutName == "" {
				layoutName = t.Name
			}
			l := t.Build(layoutName)
			applyUserDefaults(loggerFromContext(cmd.Context()), &l)

			out := output
			if out == "" {
				out = fmt.Sprintf("%s.json", t.ID)
			}
			if err := project.SaveLayout(out, l); err != nil {
				return err
			}
			recordRecentLayout(loggerFromContext(cmd.Context()), out)
			fmt.Fprintln(cmd.OutOrStdout(),
				okStyle.Render(fmt.Sprintf("Built %d-cabinet layout %s", len(l.Cabinets), out)))
			return nil
		},
	}

	cmd.Flags().StringVar(&store, "store", "", "template store path")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output layout path")
	cmd.Flags().StringVar(&name, "name", "", "layout name")
	return cmd
}

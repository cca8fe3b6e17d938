package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the course catalog",
	}

	cmd.AddCommand(
		newCatalogImportCmd(app),
		newCatalogListCmd(app),
	)

	return cmd
}

func newCatalogImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import courses and progress from a YAML or JSON catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Catalog.Import(context.Background(), args[0])
			if err != nil {
				return err
			}
			return app.emit(cmd, res, func() string {
				return fmt.Sprintf("Imported %d courses (%d lessons) and %d progress records from %s\n",
					res.Courses, res.Lessons, res.Progress, args[0])
			})
		},
	}
}

func newCatalogListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List imported courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			courses, err := app.Catalog.List(context.Background())
			if err != nil {
				return err
			}
			return app.emit(cmd, courses, func() string { return formatter.FormatCourses(courses) })
		},
	}
}

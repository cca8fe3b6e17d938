package cli

import (
	"time"

	"github.com/alexanderramin/studyplanner/internal/cli/formatter"
	"github.com/alexanderramin/studyplanner/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands,
// plus the settings shared by every command.
type App struct {
	Planner   service.PlannerService
	Adherence service.AdherenceService
	Sessions  service.SessionService
	Catalog   service.CatalogService

	// OwnerID is the learner commands act for. --owner overrides it.
	OwnerID  string
	Location *time.Location
	Now      func() time.Time

	// JSON switches every command to machine-readable output.
	JSON bool

	// IsInteractive reports whether output goes to a terminal. Plain
	// output is used when it returns false.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) location() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

// NewRootCmd creates the top-level "studyplanner" command and registers all
// subcommands against the provided App. Global flags bind to a copy of base,
// so parsing them never changes the caller's App.
func NewRootCmd(base *App) *cobra.Command {
	app := *base
	root := &cobra.Command{
		Use:           "studyplanner",
		Short:         "Study plan generator and session tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			formatter.SetPlain(app.IsInteractive != nil && !app.IsInteractive())
		},
	}

	root.PersistentFlags().StringVar(&app.OwnerID, "owner", app.OwnerID, "Learner the command acts for")
	root.PersistentFlags().BoolVar(&app.JSON, "json", app.JSON, "Print JSON instead of tables")

	root.AddCommand(
		newPreviewCmd(&app),
		newValidateCmd(&app),
		newCreateCmd(&app),
		newPlansCmd(&app),
		newSessionCmd(&app),
		newAdherenceCmd(&app),
		newBreaksCmd(&app),
		newCatalogCmd(&app),
	)

	return root
}

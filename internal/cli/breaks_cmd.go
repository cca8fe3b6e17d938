package cli

import (
	"github.com/alexanderramin/studyplanner/internal/cli/formatter"
	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/scheduler"
	"github.com/spf13/cobra"
)

func newBreaksCmd(app *App) *cobra.Command {
	var minStudy, maxStudy, minRest int
	sessionType := sessionTypeFlag(domain.SessionMedium)

	cmd := &cobra.Command{
		Use:   "breaks",
		Short: "Show the rest schedule for a session length",
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxStudy <= 0 {
				maxStudy = domain.RangeFor(domain.SessionType(sessionType)).RecommendedMin
			}
			breaks := contract.NewBreakViews(scheduler.BreakPolicy(minStudy, maxStudy, minRest))
			return app.emit(cmd, breaks, func() string { return formatter.FormatBreaks(breaks) })
		},
	}

	cmd.Flags().IntVar(&minStudy, "min-study", scheduler.DefaultMinStudyMin, "Minimum focused minutes before a break")
	cmd.Flags().IntVar(&maxStudy, "max-study", 0, "Session length in minutes (defaults to the session type's recommendation)")
	cmd.Flags().IntVar(&minRest, "min-rest", scheduler.DefaultMinRestMin, "Minimum rest minutes")
	cmd.Flags().Var(&sessionType, "session-type", "short, medium or long")

	return cmd
}

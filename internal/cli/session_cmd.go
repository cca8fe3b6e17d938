package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/studyplanner/internal/cli/formatter"
	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/spf13/cobra"
)

// rescheduleLayout is the accepted --at format, read in the app's zone.
const rescheduleLayout = "2006-01-02 15:04"

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Track study sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionCompleteCmd(app),
		newSessionMissCmd(app),
		newSessionRescheduleCmd(app),
	)

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var planID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the sessions of a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.Sessions.ListByPlan(context.Background(), planID)
			if err != nil {
				return err
			}
			return app.emit(cmd, sessions, func() string {
				return formatter.RenderBox("Sessions", formatter.FormatPlanSessions(sessions, app.location()))
			})
		},
	}

	cmd.Flags().StringVar(&planID, "plan", "", "Plan ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newSessionCompleteCmd(app *App) *cobra.Command {
	var minutes, eval int
	var notes, at string

	cmd := &cobra.Command{
		Use:   "complete SESSION_ID",
		Short: "Mark a session as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := contract.SessionCompletion{
				SessionID:         args[0],
				ActualDurationMin: minutes,
				SelfEvaluation:    eval,
				Notes:             notes,
			}
			if at != "" {
				done, err := time.ParseInLocation(rescheduleLayout, at, app.location())
				if err != nil {
					return fmt.Errorf("invalid --at %q, expected YYYY-MM-DD HH:MM", at)
				}
				c.CompletedAt = &done
			}
			s, err := app.Sessions.Complete(context.Background(), app.OwnerID, c)
			if err != nil {
				return err
			}
			return app.emitSession(cmd, s)
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Actual minutes studied (defaults to the planned length)")
	cmd.Flags().IntVar(&eval, "eval", 0, "Self evaluation from 1 to 5")
	cmd.Flags().StringVar(&notes, "notes", "", "Session notes")
	cmd.Flags().StringVar(&at, "at", "", "When the session was finished, YYYY-MM-DD HH:MM (defaults to now)")

	return cmd
}

func newSessionMissCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "miss SESSION_ID",
		Short: "Mark a session as missed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Sessions.MarkMissed(context.Background(), app.OwnerID, args[0])
			if err != nil {
				return err
			}
			return app.emitSession(cmd, s)
		},
	}
}

func newSessionRescheduleCmd(app *App) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "reschedule SESSION_ID",
		Short: "Move a session to a new start time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.ParseInLocation(rescheduleLayout, at, app.location())
			if err != nil {
				return fmt.Errorf("invalid --at %q, expected YYYY-MM-DD HH:MM", at)
			}
			s, err := app.Sessions.Reschedule(context.Background(), app.OwnerID, args[0], start)
			if err != nil {
				return err
			}
			return app.emitSession(cmd, s)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "New start, YYYY-MM-DD HH:MM")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func (a *App) emitSession(cmd *cobra.Command, s *domain.PlanSession) error {
	return a.emit(cmd, s, func() string { return formatter.FormatSession(s, a.location()) })
}

package cli

import (
	"context"

	"github.com/alexanderramin/studyplanner/internal/cli/formatter"
	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/spf13/cobra"
)

func newAdherenceCmd(app *App) *cobra.Command {
	var planID string

	cmd := &cobra.Command{
		Use:   "adherence",
		Short: "Show how closely sessions were followed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var (
				resp *contract.AdherenceResponse
				err  error
			)
			if planID != "" {
				resp, err = app.Adherence.ForPlan(ctx, planID)
			} else {
				resp, err = app.Adherence.ForOwner(ctx, app.OwnerID)
			}
			if err != nil {
				return err
			}
			return app.emit(cmd, resp, func() string { return formatter.FormatAdherence(resp) })
		},
	}

	cmd.Flags().StringVar(&planID, "plan", "", "Limit to one plan")

	return cmd
}

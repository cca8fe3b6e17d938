package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/cli/formatter"
	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/spf13/cobra"
)

func newPreviewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview a study plan without saving it",
	}

	cmd.AddCommand(
		newPreviewAICmd(app),
		newPreviewManualCmd(app),
	)

	return cmd
}

func newPreviewAICmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Preview a generated plan from goals and availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req contract.GeneratePreviewRequest
			if err := readRequest(cmd, file, &req); err != nil {
				return err
			}
			if req.OwnerID == "" {
				req.OwnerID = app.OwnerID
			}

			resp := app.Planner.GenerateAIPreview(context.Background(), req)
			if err := app.emit(cmd, resp, func() string { return formatter.FormatPreview(resp) }); err != nil {
				return err
			}
			if !resp.Success {
				return failed("preview", resp.Errors)
			}
			return nil
		},
	}

	addRequestFileFlag(cmd.Flags(), &file)
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newPreviewManualCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "manual",
		Short: "Preview a plan from a weekly schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req contract.ManualPlanRequest
			if err := readRequest(cmd, file, &req); err != nil {
				return err
			}

			resp := app.Planner.GenerateManualPreview(context.Background(), req)
			if err := app.emit(cmd, resp, func() string { return formatter.FormatPreview(resp) }); err != nil {
				return err
			}
			if !resp.Success {
				return failed("preview", resp.Errors)
			}
			return nil
		},
	}

	addRequestFileFlag(cmd.Flags(), &file)
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newValidateCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a manual schedule against the selected lessons",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req contract.ValidateManualRequest
			if err := readRequest(cmd, file, &req); err != nil {
				return err
			}

			resp := app.Planner.ValidateManual(context.Background(), req)
			if err := app.emit(cmd, resp, func() string { return formatter.FormatValidation(resp) }); err != nil {
				return err
			}
			if !resp.IsValid {
				return failed("validation", resp.Errors)
			}
			return nil
		},
	}

	addRequestFileFlag(cmd.Flags(), &file)
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newCreateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create and save a study plan",
	}

	cmd.AddCommand(
		newCreateAICmd(app),
		newCreateManualCmd(app),
	)

	return cmd
}

func newCreateAICmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Generate and save a plan from goals and availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req contract.GeneratePreviewRequest
			if err := readRequest(cmd, file, &req); err != nil {
				return err
			}

			resp := app.Planner.CreateAIPlan(context.Background(), app.OwnerID, req)
			return app.emitCreate(cmd, resp)
		},
	}

	addRequestFileFlag(cmd.Flags(), &file)
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newCreateManualCmd(app *App) *cobra.Command {
	var file, name string

	cmd := &cobra.Command{
		Use:   "manual",
		Short: "Save a plan built from a weekly schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req contract.ManualPlanRequest
			if err := readRequest(cmd, file, &req); err != nil {
				return err
			}
			if name != "" {
				req.PlanName = name
			}

			resp := app.Planner.CreateManualPlan(context.Background(), app.OwnerID, req)
			return app.emitCreate(cmd, resp)
		},
	}

	addRequestFileFlag(cmd.Flags(), &file)
	cmd.Flags().StringVar(&name, "name", "", "Plan name (overrides the request file)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (a *App) emitCreate(cmd *cobra.Command, resp contract.CreatePlanResponse) error {
	if err := a.emit(cmd, resp, func() string { return formatter.FormatCreateResult(resp) }); err != nil {
		return err
	}
	if !resp.Success {
		return failed("create", resp.Errors)
	}
	return nil
}

func newPlansCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Inspect saved plans",
	}

	cmd.AddCommand(
		newPlansListCmd(app),
		newPlansShowCmd(app),
	)

	return cmd
}

func newPlansListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Planner.ListPlans(context.Background(), app.OwnerID)
			if err != nil {
				return err
			}
			return app.emit(cmd, plans, func() string {
				return formatter.FormatPlans(plans, app.now())
			})
		},
	}
}

func newPlansShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PLAN_ID",
		Short: "Show the sessions and adherence of a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sessions, err := app.Sessions.ListByPlan(ctx, args[0])
			if err != nil {
				return err
			}
			adh, err := app.Adherence.ForPlan(ctx, args[0])
			if err != nil {
				return err
			}

			out := struct {
				Sessions  any `json:"sessions"`
				Adherence any `json:"adherence"`
			}{sessions, adh}
			return app.emit(cmd, out, func() string {
				return formatter.FormatAdherence(adh) + "\n" +
					formatter.FormatPlanSessions(sessions, app.location()) +
					formatter.Dim(fmt.Sprintf("%d sessions", len(sessions))) + "\n"
			})
		},
	}
}

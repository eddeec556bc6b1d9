package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"console/internal/export"
	"console/internal/forms"
	"console/internal/present"
)

func newPlansCmd(env *cliEnv) *cobra.Command {
	cmd := &cobra.Command{Use: "plans", Short: "Manage price plans"}
	cmd.AddCommand(newPlansListCmd(env), newPlansToggleCmd(env), newPlansDeleteCmd(env))
	return cmd
}

func newPlansListCmd(env *cliEnv) *cobra.Command {
	var (
		activeOnly bool
		csv        bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List price plans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			plans, err := env.api.ListPlans(cmd.Context(), activeOnly)
			if err != nil {
				return err
			}
			if csv {
				return env.writeExport(cmd.Context(), cmd, "price-plans", func() ([]byte, error) { return export.Plans(plans) })
			}
			rows := make([][]string, 0, len(plans))
			for _, p := range plans {
				rows = append(rows, []string{
					strconv.FormatInt(p.ID, 10), present.Title(p.Name), p.MonthlyPrice, p.AnnualPrice,
					strconv.Itoa(p.IncludedSeats), present.StatusBadge(p.IsActive).Label, yesNo(p.IsBestValue),
				})
			}
			return table(cmd.OutOrStdout(), []string{"id", "name", "monthly", "annual", "seats", "status", "best value"}, rows)
		},
	}
	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active plans")
	cmd.Flags().BoolVar(&csv, "csv", false, "write a CSV export instead of printing")
	return cmd
}

func newPlansToggleCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a plan between active and inactive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			plan, err := env.api.PlanByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			updated, err := env.api.UpdatePlan(cmd.Context(), id, forms.ToggleActive(*plan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "plan %d is now %s\n", id, present.StatusBadge(updated.IsActive).Label)
			return nil
		},
	}
}

func newPlansDeleteCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a price plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := env.api.DeletePlan(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted plan %d\n", id)
			return nil
		},
	}
}

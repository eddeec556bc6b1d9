package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"console/internal/export"
	"console/internal/present"
)

func newBrandsCmd(env *cliEnv) *cobra.Command {
	cmd := &cobra.Command{Use: "brands", Short: "Manage white-label brands"}
	cmd.AddCommand(newBrandsListCmd(env), newBrandsDeleteCmd(env))
	return cmd
}

func newBrandsListCmd(env *cliEnv) *cobra.Command {
	var csv bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List brands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			brands, err := env.api.ListBrands(cmd.Context())
			if err != nil {
				return err
			}
			if csv {
				return env.writeExport(cmd.Context(), cmd, "brands", func() ([]byte, error) { return export.Brands(brands) })
			}
			rows := make([][]string, 0, len(brands))
			for _, b := range brands {
				rows = append(rows, []string{
					strconv.FormatInt(b.ID, 10), b.BrandName, b.Domain,
					present.StatusBadge(b.IsActive).Label, present.BrandPriceLabel(b),
				})
			}
			return table(cmd.OutOrStdout(), []string{"id", "brand", "domain", "status", "price"}, rows)
		},
	}
	cmd.Flags().BoolVar(&csv, "csv", false, "write a CSV export instead of printing")
	return cmd
}

func newBrandsDeleteCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a brand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := env.api.DeleteBrand(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted brand %d\n", id)
			return nil
		},
	}
}

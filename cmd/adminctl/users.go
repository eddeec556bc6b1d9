package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"console/internal/domain"
	"console/internal/export"
	"console/internal/forms"
	"console/internal/listing"
	"console/internal/present"
)

func newUsersCmd(env *cliEnv) *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Manage accounts"}
	cmd.AddCommand(newUsersListCmd(env), newUsersCreateCmd(env), newUsersDeleteCmd(env))
	return cmd
}

func newUsersListCmd(env *cliEnv) *cobra.Command {
	var (
		search string
		csv    bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := env.api.ListUsers(cmd.Context(), domain.UserQuery{Limit: ptr(listing.DefaultLimit)})
			if err != nil {
				return err
			}
			users = listing.Filter(users, search,
				func(u domain.UserWithSubscription) string { return u.FullName() },
				func(u domain.UserWithSubscription) string { return u.Email },
			)
			if csv {
				return env.writeExport(cmd.Context(), cmd, "users", func() ([]byte, error) { return export.Users(users) })
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{
					strconv.FormatInt(u.ID, 10), u.FullName(), u.Email,
					present.RoleBadge(u.Role).Label, present.RelativeTimestamp(u.CreatedAt, env.now()),
				})
			}
			return table(cmd.OutOrStdout(), []string{"id", "name", "email", "role", "created"}, rows)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "q", "", "filter by name or email")
	cmd.Flags().BoolVar(&csv, "csv", false, "write a CSV export instead of printing")
	return cmd
}

func newUsersCreateCmd(env *cliEnv) *cobra.Command {
	var form forms.UserCreateForm
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := form.Payload()
			if err != nil {
				return err
			}
			u, err := env.api.CreateUser(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s)\n", u.ID, u.Email)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.FirstName, "first-name", "", "first name")
	f.StringVar(&form.LastName, "last-name", "", "last name")
	f.StringVar(&form.Email, "email", "", "email address")
	f.StringVar(&form.Password, "password", "", "initial password (min 8 characters)")
	f.StringVar(&form.Role, "role", "user", "admin or user")
	return cmd
}

func newUsersDeleteCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			u, err := env.api.UserByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if u.IsAdmin() {
				return errors.New("admin accounts cannot be deleted")
			}
			if err := env.api.DeleteUser(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %d\n", id)
			return nil
		},
	}
}

// writeExport renders a CSV and stores it under the output directory.
func (e *cliEnv) writeExport(ctx context.Context, cmd *cobra.Command, kind string, render func() ([]byte, error)) error {
	data, err := render()
	if err != nil {
		return err
	}
	store, err := e.store()
	if err != nil {
		return err
	}
	path, err := store.Write(ctx, export.Filename(kind, e.now()), data)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "wrote "+path)
	return nil
}

func ptr[T any](v T) *T { return &v }

package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"console/internal/backend"
	"console/internal/forms"
	"console/internal/present"
	"console/internal/session"
)

func newLoginCmd(env *cliEnv) *cobra.Command {
	var form forms.LoginForm
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the bearer token",
		Long: `Sign in with an admin account. The password is read from --password,
then ADMINCTL_PASSWORD, then the first line of stdin.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if form.Password == "" {
				form.Password = envOr("ADMINCTL_PASSWORD", "")
			}
			if form.Password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("password is required")
				}
				form.Password = strings.TrimRight(line, "\r\n")
			}
			if err := form.Normalize(); err != nil {
				return err
			}
			res, err := env.api.Login(cmd.Context(), form.Email, form.Password)
			if err != nil {
				var apiErr *backend.APIError
				if errors.As(err, &apiErr) {
					return fmt.Errorf("login failed: %s", apiErr.Detail)
				}
				return err
			}
			if err := env.tokens.Save(res.AccessToken); err != nil {
				return err
			}
			msg := "signed in as " + form.Email
			if exp, ok := session.TokenExpiry(res.AccessToken); ok {
				msg += ", token expires " + exp.UTC().Format(time.RFC3339)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := env.tokens.Remove(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out, removed "+env.tokens.Path())
			return nil
		},
	}
}

func newWhoamiCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			me, err := env.api.Profile(cmd.Context())
			if err != nil {
				return err
			}
			return table(cmd.OutOrStdout(), []string{"id", "name", "email", "role"}, [][]string{{
				fmt.Sprint(me.ID), me.FullName(), me.Email, present.RoleBadge(me.Role).Label,
			}})
		},
	}
}

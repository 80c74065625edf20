package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func SignUpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an identity and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			email, _ := cmd.Flags().GetString("email")
			name, _ := cmd.Flags().GetString("name")

			pw, err := password(cmd)
			if err != nil {
				return err
			}

			user, err := env.App.AuthService.SignUp(cmd.Context(), env.Slot, email, pw, name)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed up as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("name", "", "display name")
	cmd.Flags().String("password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func SignInCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in with an email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			email, _ := cmd.Flags().GetString("email")

			pw, err := password(cmd)
			if err != nil {
				return err
			}

			user, err := env.App.AuthService.SignIn(cmd.Context(), env.Slot, email, pw)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func SignOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Forget the signed-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			err := env.App.AuthService.SignOut(cmd.Context(), env.Slot)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func WhoAmICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			user, err := env.App.AuthService.CurrentUser(cmd.Context(), env.Slot)
			if err != nil {
				return err
			}
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nid: %s\n", user.Name, user.Email, user.ID)
			return nil
		},
	}
}

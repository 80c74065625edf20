package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/service"
)

func MessagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "messages",
		Short: "Read the message wall, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			messages, err := env.App.WallService.Messages(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, m := range messages {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s\n  by %s", m.Text, m.Author)
				if m.Major != "" {
					fmt.Fprintf(out, " (%s)", m.Major)
				}
				fmt.Fprintf(out, ", %s\n", m.Date)
			}
			return nil
		},
	}
}

func PostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post <text>",
		Short: "Pin a note to the wall",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			typed, _ := cmd.Flags().GetString("author")
			anonymous, _ := cmd.Flags().GetBool("anonymous")

			user, err := env.App.AuthService.CurrentUser(cmd.Context(), env.Slot)
			if err != nil {
				return err
			}
			if typed == "" && user != nil {
				typed = user.Name
			}
			author, major := service.WallAuthor(typed, anonymous, user)

			message, err := env.App.WallService.Post(cmd.Context(), model.NewWallMessage{
				Text:   strings.Join(args, " "),
				Author: author,
				Major:  major,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pinned as %s on %s paper\n", message.Author, message.Style)
			return nil
		},
	}
	cmd.Flags().String("author", "", "name to sign with (defaults to yours when signed in)")
	cmd.Flags().Bool("anonymous", false, "post as Anonymous")
	return cmd
}

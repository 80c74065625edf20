package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/service"
)

func StudentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "students",
		Short: "List the yearbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			filter, _ := cmd.Flags().GetString("filter")
			search, _ := cmd.Flags().GetString("search")

			students, err := env.App.YearbookService.Students(cmd.Context())
			if err != nil {
				return err
			}
			students = service.FilterStudents(students, filter, search)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tMAJOR\tTAGS")
			for _, s := range students {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Major, strings.Join(s.Tags, ", "))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().String("filter", model.FilterAllMajors, "tag filter: "+strings.Join(model.MajorFilters, ", "))
	cmd.Flags().String("search", "", "match name or major")
	return cmd
}

func ProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <id>",
		Short: "Show one student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			s, err := env.App.YearbookService.Profile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if s == nil {
				return fmt.Errorf("no student with id %q", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s\n", s.Name, s.Major)
			if s.Quote != "" {
				fmt.Fprintf(out, "\n  %q\n\n", s.Quote)
			}
			if len(s.Tags) > 0 {
				fmt.Fprintf(out, "tags:      %s\n", strings.Join(s.Tags, ", "))
			}
			for _, social := range []struct{ label, url string }{
				{"linkedin", s.LinkedIn},
				{"instagram", s.Instagram},
				{"twitter", s.Twitter},
			} {
				if social.url != "" {
					fmt.Fprintf(out, "%-10s %s\n", social.label+":", social.url)
				}
			}
			return nil
		},
	}
}

func GuestbookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guestbook <id>",
		Short: "Read the guestbook of a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			signatures, err := env.App.YearbookService.Signatures(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(signatures) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No signatures yet")
				return nil
			}
			for _, sig := range signatures {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s: %s\n", sig.Date, sig.Author, sig.Text)
			}
			return nil
		},
	}
}

func SignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign <id> <text>",
		Short: "Sign a guestbook, as yourself when signed in",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)

			author := service.AnonymousAuthor
			user, err := env.App.AuthService.CurrentUser(cmd.Context(), env.Slot)
			if err != nil {
				return err
			}
			if user != nil {
				author = user.Name
			}

			sig, err := env.App.YearbookService.Sign(cmd.Context(), args[0], strings.Join(args[1:], " "), author)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed as %s\n", sig.Author)
			return nil
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func TimelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Walk through the class memories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			events, err := env.App.TimelineService.Events()
			if err != nil {
				return err
			}
			for _, e := range events {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", e.Year, e.Title)
				if e.Caption != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", e.Caption)
				}
			}
			return nil
		},
	}
}

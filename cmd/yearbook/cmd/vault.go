package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/batch26/keepsake/internal/model"
	"github.com/batch26/keepsake/internal/service"
)

func MediaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "List the vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			filter, _ := cmd.Flags().GetString("filter")

			items, err := env.App.VaultService.Media(cmd.Context())
			if err != nil {
				return err
			}
			items = service.FilterMedia(items, filter)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPE\tDATE\tCAPTION\tSOURCE")
			for _, item := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.Type, item.Date, item.Caption, item.Src)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().String("filter", model.FilterAllMemories, "tag filter: "+strings.Join(model.VaultFilters, ", "))
	return cmd
}

func UploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Add a photo or video to the vault (requires sign in)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			caption, _ := cmd.Flags().GetString("caption")

			user, err := env.App.AuthService.CurrentUser(cmd.Context(), env.Slot)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return err
			}

			item, err := env.App.VaultService.Upload(cmd.Context(), service.Upload{
				Filename:    filepath.Base(args[0]),
				ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(args[0]))),
				Size:        info.Size(),
				Body:        f,
				Caption:     caption,
			}, user)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s %s\n", item.Type, item.Src)
			return nil
		},
	}
	cmd.Flags().String("caption", "", "caption shown under the tile")
	return cmd
}

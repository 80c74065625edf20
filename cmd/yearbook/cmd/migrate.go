package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/batch26/keepsake/internal/db"
)

var errNoDatabase = errors.New("migrations need DATA_BACKEND=sql")

// MigrateCmd manages the sql schema. Migrations up to the latest run
// whenever the app starts, so only rollback needs a command.
func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the sql content schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			if env.App.DB == nil {
				return errNoDatabase
			}
			err := db.MigrateDown(cmd.Context(), env.App.DB.DB, env.App.Cfg.DBDriver)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Rolled back one migration")
			return nil
		},
	})

	return cmd
}

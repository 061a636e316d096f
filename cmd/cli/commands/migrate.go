package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// MigrateCmd creates the migrate command
func MigrateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := app.Database.RunMigrations(app.Ctx)
			if err != nil {
				return err
			}

			if count == 0 {
				fmt.Println("\nDatabase is up to date.")
			} else {
				fmt.Printf("\nApplied %d migrations.\n", count)
			}
			return nil
		},
	}
}

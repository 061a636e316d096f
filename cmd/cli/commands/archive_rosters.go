package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mld08/planning-app/pkg/core/services"
)

// ArchiveRostersCmd creates the archiveRosters command
func ArchiveRostersCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archiveRosters",
		Short: "Archive active rosters whose week ended long enough ago",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			olderThan, _ := cmd.Flags().GetInt("older-than")
			if olderThan == 0 {
				olderThan = app.Cfg.ArchiveAfterDays
			}

			count, err := services.ArchiveStale(app.Ctx, app.Database, app.Logger, olderThan)
			if err != nil {
				return err
			}

			fmt.Printf("\nArchived %d roster(s).\n\n", count)
			return nil
		},
	}

	cmd.Flags().Int("older-than", 0, "Archive rosters ended more than this many days ago (default from config)")

	return cmd
}

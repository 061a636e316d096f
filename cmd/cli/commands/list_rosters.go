package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListRostersCmd creates the listRosters command
func ListRostersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRosters",
		Short: "List all generated rosters, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rosters, err := app.Database.ListRosters(app.Ctx)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d rosters:\n\n", len(rosters))
			for _, r := range rosters {
				fmt.Printf("- %s - week %d/%d (%s to %s) - %s - created by %s\n",
					r.ID, r.Week, r.Year,
					r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"),
					r.Status, r.CreatedBy)
			}
			fmt.Println()

			return nil
		},
	}
}

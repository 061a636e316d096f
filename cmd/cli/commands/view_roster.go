package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mld08/planning-app/pkg/core/services"
)

// ViewRosterCmd creates the viewRoster command
func ViewRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewRoster [roster_id]",
		Short: "Display a roster day by day (defaults to the latest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rosterID string
			if len(args) > 0 {
				rosterID = args[0]
			}

			view, err := services.ViewRoster(app.Ctx, app.Database, app.Logger, rosterID)
			if err != nil {
				return err
			}

			fmt.Printf("\nRoster %s - week %d/%d (%s)\n",
				view.Roster.ID, view.Roster.Week, view.Roster.Year, view.Roster.Status)

			for _, day := range view.Days {
				fmt.Printf("\n%s\n", day.Date.Format("Monday 2006-01-02"))
				if len(day.Assignments) == 0 {
					fmt.Println("  (no assignments)")
					continue
				}
				for _, a := range day.Assignments {
					fmt.Printf("  %-5s %-13s %-20s %-10s %s\n",
						a.Shift, a.Clock, a.Activity, a.Role, a.AgentName)
				}
			}

			mods, err := app.Database.GetModifications(app.Ctx, view.Roster.ID)
			if err != nil {
				return err
			}
			if len(mods) > 0 {
				fmt.Println("\nManual overrides:")
				for _, m := range mods {
					fmt.Printf("  %s - %s by %s: %s\n",
						m.CreatedAt.Format("2006-01-02 15:04"), m.Action, m.UserID, m.Details)
				}
			}
			fmt.Println()

			return nil
		},
	}
}

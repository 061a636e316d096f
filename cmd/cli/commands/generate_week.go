package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mld08/planning-app/pkg/core/services"
)

// GenerateWeekCmd creates the generateWeek command
func GenerateWeekCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateWeek",
		Short: "Generate the duty roster for the coming week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startFlag, _ := cmd.Flags().GetString("start")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			var startDate *time.Time
			if startFlag != "" {
				parsed, err := time.ParseInLocation("2006-01-02", startFlag, time.UTC)
				if err != nil {
					return fmt.Errorf("start must be YYYY-MM-DD: %w", err)
				}
				startDate = &parsed
			}

			result, err := services.GenerateWeek(app.Ctx, app.Database, app.Notifier, app.Engine, app.Logger, startDate, "cli", dryRun)
			if err != nil {
				return err
			}

			if result.AlreadyExisted {
				fmt.Printf("\nA roster already exists for week %d/%d (id %s), nothing generated.\n",
					result.Roster.Week, result.Roster.Year, result.Roster.ID)
				return nil
			}

			header := "Roster generated"
			if result.DryRun {
				header = "Roster computed (dry run, not saved)"
			}
			fmt.Printf("\n%s\n\n", header)
			fmt.Printf("Roster ID:   %s\n", result.Roster.ID)
			fmt.Printf("Week:        %d/%d\n", result.Roster.Week, result.Roster.Year)
			fmt.Printf("Period:      %s - %s\n",
				result.Roster.StartDate.Format("2006-01-02"),
				result.Roster.EndDate.Format("2006-01-02"))
			fmt.Printf("Assignments: %d\n", len(result.Assignments))

			if len(result.Gaps) > 0 {
				fmt.Printf("\nUnfilled slots (%d):\n", len(result.Gaps))
				for _, gap := range result.Gaps {
					fmt.Printf("  - %s\n", gap)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("start", "", "Week start date (YYYY-MM-DD, must be a Monday; defaults to next Monday)")
	cmd.Flags().Bool("dry-run", false, "Compute the roster without saving or notifying")

	return cmd
}

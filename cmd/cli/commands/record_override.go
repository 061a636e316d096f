package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mld08/planning-app/pkg/core/services"
)

// RecordOverrideCmd creates the recordOverride command
func RecordOverrideCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recordOverride <assignment_id> <new_agent_id>",
		Short: "Manually reassign one slot to a different agent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")
			reason, _ := cmd.Flags().GetString("reason")

			entry, err := services.RecordOverride(app.Ctx, app.Database, app.Logger, services.OverrideParams{
				AssignmentID: args[0],
				NewAgentID:   args[1],
				UserID:       userID,
				Reason:       reason,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nOverride recorded on roster %s:\n  %s\n\n", entry.RosterID, entry.Details)
			return nil
		},
	}

	cmd.Flags().String("user", "", "ID of the user recording the override (required)")
	cmd.Flags().String("reason", "", "Why the slot is being reassigned")
	cmd.MarkFlagRequired("user")

	return cmd
}

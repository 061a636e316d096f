package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mld08/planning-app/pkg/core/model"
)

// ListAgentsCmd creates the listAgents command
func ListAgentsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listAgents",
		Short: "List all agents with their flags and workload counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			agents, err := app.Database.ListAgents(app.Ctx)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d agents:\n\n", len(agents))
			for _, a := range agents {
				status := "available"
				if !a.Available {
					status = "unavailable"
				}
				fmt.Printf("- %s (%s) - %s - day:%d night:%d%s\n",
					a.FullName(), a.ID, status, a.DayCount, a.NightCount, agentFlags(a))
			}
			fmt.Println()

			return nil
		},
	}
}

func agentFlags(a *model.Agent) string {
	var flags []string
	if a.IsTeamLead {
		flags = append(flags, "team-lead")
	}
	if a.IsOfficeChief {
		flags = append(flags, "office-chief")
	}
	if a.IsAirportCertInspector {
		flags = append(flags, "airport-inspector")
	}
	if a.IsBVPLead {
		flags = append(flags, "bvp-lead")
	}
	if a.IsFactoryLead {
		flags = append(flags, "factory-lead")
	}
	if a.IsDriver {
		flags = append(flags, "driver")
	}
	if a.IsCRSSOperator {
		flags = append(flags, "crss-operator")
	}
	if a.IsEmbarkedObserver {
		flags = append(flags, "embarked-observer")
	}
	if len(flags) == 0 {
		return ""
	}
	return " [" + strings.Join(flags, ", ") + "]"
}

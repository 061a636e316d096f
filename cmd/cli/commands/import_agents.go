package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mld08/planning-app/internal/config"
	"github.com/mld08/planning-app/pkg/core/services"
)

// ImportAgentsCmd creates the importAgents command
func ImportAgentsCmd(app *AppContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "importAgents --file agents.yaml",
		Short: "Create or update agents from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			agents, err := config.LoadAgentsFile(file)
			if err != nil {
				return err
			}

			count, err := services.ImportAgents(app.Ctx, app.Database, app.Logger, agents)
			if err != nil {
				return err
			}

			fmt.Printf("\nImported %d agents\n\n", count)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the agents YAML file")
	cmd.MarkFlagRequired("file")

	return cmd
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mld08/planning-app/cmd/cli/commands"
	"github.com/mld08/planning-app/internal/config"
	"github.com/mld08/planning-app/pkg/clients/gmailclient"
	"github.com/mld08/planning-app/pkg/core/model"
	"github.com/mld08/planning-app/pkg/core/roster"
	"github.com/mld08/planning-app/pkg/notify"
	"github.com/mld08/planning-app/pkg/postgres"
	"github.com/mld08/planning-app/pkg/utils"
	"github.com/mld08/planning-app/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Duty planning CLI - generate and manage weekly rosters",
		Long:  `A CLI tool for generating weekly duty rosters, archiving old ones, and recording manual overrides.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.Logger != nil {
					app.Logger.Sync()
				}
				if app.Database != nil {
					app.Database.Close()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.GenerateWeekCmd(appRef()))
	rootCmd.AddCommand(commands.ArchiveRostersCmd(appRef()))
	rootCmd.AddCommand(commands.ViewRosterCmd(appRef()))
	rootCmd.AddCommand(commands.ImportAgentsCmd(appRef()))
	rootCmd.AddCommand(commands.ListAgentsCmd(appRef()))
	rootCmd.AddCommand(commands.ListRostersCmd(appRef()))
	rootCmd.AddCommand(commands.RecordOverrideCmd(appRef()))
	rootCmd.AddCommand(commands.MigrateCmd(appRef()))
	rootCmd.AddCommand(commands.RunCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, created empty up front so command
// constructors can capture it before initApp fills it in.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{Ctx: context.Background()}
	}
	return app
}

// initApp sets up logger, config, database, engine and notifier
func initApp() error {
	var err error
	appRef()

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Info("Connecting to database")
	app.Database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Logger.Debug("Database connection established")

	catalog, err := buildCatalog(app.Cfg)
	if err != nil {
		return err
	}
	app.Engine = roster.NewEngine(catalog, app.Cfg.MinAvailableAgents, app.Logger)

	if app.Cfg.Gmail != nil {
		if err := initNotifier(); err != nil {
			return err
		}
	} else {
		app.Logger.Info("No gmail configuration, roster notifications disabled")
	}

	return nil
}

// buildCatalog applies configured overrides to the standing duty catalog
func buildCatalog(cfg *config.Config) (roster.Catalog, error) {
	overrides := make([]roster.Override, 0, len(cfg.CatalogOverrides))
	for _, o := range cfg.CatalogOverrides {
		overrides = append(overrides, roster.Override{
			Activity: model.ActivityID(o.Activity),
			Days:     o.RRule,
			Disabled: o.Disabled,
		})
	}

	catalog, err := roster.DefaultCatalog().ApplyOverrides(overrides)
	if err != nil {
		return roster.Catalog{}, fmt.Errorf("failed to apply catalog overrides: %w", err)
	}

	if err := catalog.Validate(); err != nil {
		return roster.Catalog{}, fmt.Errorf("invalid catalog: %w", err)
	}

	return catalog, nil
}

// initNotifier runs the OAuth flow and wires up the gmail-backed sender
func initNotifier() error {
	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return fmt.Errorf("failed to build oauth config: %w", err)
	}

	token, err := utils.GetTokenWithFlow(app.Ctx, oauthConfig)
	if err != nil {
		return fmt.Errorf("failed to obtain oauth token: %w", err)
	}

	app.Logger.Info("Initializing gmail client")
	gmailClient, err := gmailclient.NewClient(app.Ctx, oauthCfg, token, app.Cfg.Gmail.UserID)
	if err != nil {
		return fmt.Errorf("failed to create gmail client: %w", err)
	}

	app.Notifier = notify.NewSender(gmailClient, app.Cfg.Gmail.Recipients, app.Logger)
	app.Logger.Debug("Gmail notifier initialized successfully")

	return nil
}

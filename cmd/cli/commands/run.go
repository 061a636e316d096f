package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mld08/planning-app/pkg/core/services"
	"github.com/mld08/planning-app/pkg/schedule"
)

// RunCmd creates the run command, which blocks and generates rosters on the
// configured cron schedule
func RunCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the scheduler: generate each week's roster automatically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			location, err := time.LoadLocation(app.Cfg.Timezone)
			if err != nil {
				return fmt.Errorf("failed to load timezone %q: %w", app.Cfg.Timezone, err)
			}

			job := func() {
				_, err := services.GenerateWeek(app.Ctx, app.Database, app.Notifier, app.Engine, app.Logger, nil, "scheduler", false)
				if err != nil {
					app.Logger.Error("Scheduled generation failed", zap.Error(err))
				}

				if _, err := services.ArchiveStale(app.Ctx, app.Database, app.Logger, app.Cfg.ArchiveAfterDays); err != nil {
					app.Logger.Error("Scheduled archiving failed", zap.Error(err))
				}
			}

			scheduler, err := schedule.New(app.Cfg.GenerationCron, location, app.Logger, job)
			if err != nil {
				return err
			}

			scheduler.Start()
			fmt.Printf("\nScheduler running, next generation at %s. Ctrl-C to stop.\n",
				scheduler.NextRun().Format(time.RFC1123))

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop

			fmt.Println("\nStopping scheduler...")
			scheduler.Stop()

			return nil
		},
	}
}

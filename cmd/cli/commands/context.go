package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/mld08/planning-app/internal/config"
	"github.com/mld08/planning-app/pkg/core/roster"
	"github.com/mld08/planning-app/pkg/core/services"
	"github.com/mld08/planning-app/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database *postgres.DB
	Engine   *roster.Engine
	Notifier services.RosterNotifier
	Logger   *zap.Logger
	Ctx      context.Context
}

package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mld08/planning-app/pkg/core/model"
)

// ImportAgentsStore defines the database operations needed to import agents
type ImportAgentsStore interface {
	UpsertAgent(ctx context.Context, agent *model.Agent) error
}

// ImportAgents upserts a batch of agent records, typically loaded from an
// agents file. Existing agents keep their workload counters; only the
// profile fields are replaced. It returns how many agents were written.
func ImportAgents(ctx context.Context, store ImportAgentsStore, logger *zap.Logger, agents []*model.Agent) (int, error) {
	if len(agents) == 0 {
		return 0, fmt.Errorf("no agents to import")
	}

	logger.Debug("Importing agents", zap.Int("count", len(agents)))

	for _, agent := range agents {
		if err := store.UpsertAgent(ctx, agent); err != nil {
			return 0, fmt.Errorf("failed to import agent %s: %w", agent.FullName(), err)
		}
	}

	logger.Info("Imported agents", zap.Int("count", len(agents)))
	return len(agents), nil
}

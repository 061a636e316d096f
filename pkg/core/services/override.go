package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mld08/planning-app/pkg/core/model"
)

// OverrideStore defines the database operations needed for manual overrides
type OverrideStore interface {
	GetAssignment(ctx context.Context, assignmentID string) (*model.Assignment, error)
	GetAgent(ctx context.Context, agentID string) (*model.Agent, error)
	ReassignAssignment(ctx context.Context, assignmentID, newAgentID string, entry *model.ModificationEntry) error
}

// OverrideParams describes a manual reassignment of one slot
type OverrideParams struct {
	AssignmentID string
	NewAgentID   string
	UserID       string
	Reason       string
}

// RecordOverride reassigns a single assignment to a different agent and
// appends an audit entry to the roster's modification log. The override is
// deliberately unchecked against eligibility rules: a human moving a slot
// by hand outranks the generator.
func RecordOverride(ctx context.Context, store OverrideStore, logger *zap.Logger, params OverrideParams) (*model.ModificationEntry, error) {
	if params.UserID == "" {
		return nil, fmt.Errorf("override requires a user id")
	}

	assignment, err := store.GetAssignment(ctx, params.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment %s: %w", params.AssignmentID, err)
	}

	newAgent, err := store.GetAgent(ctx, params.NewAgentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agent %s: %w", params.NewAgentID, err)
	}

	if assignment.AgentID == newAgent.ID {
		return nil, fmt.Errorf("assignment %s is already held by agent %s", assignment.ID, newAgent.ID)
	}

	entry := &model.ModificationEntry{
		ID:       uuid.New().String(),
		RosterID: assignment.RosterID,
		UserID:   params.UserID,
		Action:   "reassign",
		Details: fmt.Sprintf("%s %s %s %s: agent %s -> %s (%s)",
			assignment.Day.Format("2006-01-02"), assignment.Shift, assignment.Activity, assignment.Role,
			assignment.AgentID, newAgent.ID, params.Reason),
	}

	logger.Info("Recording manual override",
		zap.String("assignment_id", assignment.ID),
		zap.String("from_agent", assignment.AgentID),
		zap.String("to_agent", newAgent.ID),
		zap.String("user_id", params.UserID))

	if err := store.ReassignAssignment(ctx, assignment.ID, newAgent.ID, entry); err != nil {
		return nil, fmt.Errorf("failed to reassign assignment %s: %w", assignment.ID, err)
	}

	return entry, nil
}

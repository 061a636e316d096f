package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mld08/planning-app/pkg/core/model"
	"github.com/mld08/planning-app/pkg/core/roster"
)

// GenerateWeekStore defines the database operations needed for week generation
type GenerateWeekStore interface {
	GetRosterByStartDate(ctx context.Context, start time.Time) (*model.Roster, error)
	GetAssignmentsByRoster(ctx context.Context, rosterID string) ([]model.Assignment, error)
	GetAvailableAgents(ctx context.Context) ([]*model.Agent, error)
	CommitWeek(ctx context.Context, ros *model.Roster, assignments []model.Assignment, agents []*model.Agent) error
}

// RosterNotifier sends the finished roster to the service. Notification
// failures never fail generation; the roster is already persisted by the
// time the notifier runs.
type RosterNotifier interface {
	NotifyRoster(ctx context.Context, ros *model.Roster, assignments []model.Assignment, agents []*model.Agent) error
}

// GenerateWeekResult contains the outcome of a generation run
type GenerateWeekResult struct {
	Roster      *model.Roster
	Assignments []model.Assignment
	Gaps        []roster.Gap

	// AlreadyExisted is true when a roster for the requested week was found
	// in the database; the existing roster is returned and nothing new is
	// generated or persisted.
	AlreadyExisted bool

	// DryRun is true when the result was computed but not persisted
	DryRun bool
}

// GenerateWeek plans and persists one week of duty assignments. When
// startDate is nil the next Monday strictly after today is used. Calling it
// twice for the same week is safe: the second call returns the roster the
// first one persisted.
func GenerateWeek(
	ctx context.Context,
	store GenerateWeekStore,
	notifier RosterNotifier,
	engine *roster.Engine,
	logger *zap.Logger,
	startDate *time.Time,
	createdBy string,
	dryRun bool,
) (*GenerateWeekResult, error) {
	var start time.Time
	if startDate != nil {
		start = dateOnly(*startDate)
	} else {
		start = NextMonday(time.Now())
	}
	if start.Weekday() != time.Monday {
		return nil, fmt.Errorf("start date must be a Monday, got %s", start.Weekday())
	}

	logger.Info("Generating weekly roster",
		zap.Time("start_date", start),
		zap.String("created_by", createdBy),
		zap.Bool("dry_run", dryRun))

	existing, err := store.GetRosterByStartDate(ctx, start)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up roster for %s: %w", start.Format("2006-01-02"), err)
	}
	if existing != nil {
		logger.Info("Roster already exists for requested week, returning it",
			zap.String("roster_id", existing.ID),
			zap.Int("week", existing.Week))
		return existingWeekResult(ctx, store, existing)
	}

	logger.Debug("Fetching available agents")
	agents, err := store.GetAvailableAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch available agents: %w", err)
	}
	logger.Debug("Found available agents", zap.Int("count", len(agents)))

	planned, err := engine.PlanWeek(start, agents, createdBy)
	if err != nil {
		return nil, fmt.Errorf("failed to plan week starting %s: %w", start.Format("2006-01-02"), err)
	}

	result := &GenerateWeekResult{
		Roster:      planned.Roster,
		Assignments: planned.Assignments,
		Gaps:        planned.Gaps,
	}

	if dryRun {
		result.DryRun = true
		return result, nil
	}

	err = store.CommitWeek(ctx, planned.Roster, planned.Assignments, planned.UpdatedAgents)
	if errors.Is(err, model.ErrDuplicateRoster) {
		// Lost a race with a concurrent run; the other roster wins.
		logger.Warn("Concurrent generation persisted this week first", zap.Time("start_date", start))
		existing, err = store.GetRosterByStartDate(ctx, start)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch concurrently created roster: %w", err)
		}
		return existingWeekResult(ctx, store, existing)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to persist roster %s: %w", planned.Roster.ID, err)
	}

	logger.Info("Roster persisted", zap.String("roster_id", planned.Roster.ID))

	if notifier != nil {
		if err := notifier.NotifyRoster(ctx, planned.Roster, planned.Assignments, agents); err != nil {
			logger.Error("Failed to send roster notification", zap.Error(err))
		}
	}

	return result, nil
}

func existingWeekResult(ctx context.Context, store GenerateWeekStore, existing *model.Roster) (*GenerateWeekResult, error) {
	assignments, err := store.GetAssignmentsByRoster(ctx, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments for roster %s: %w", existing.ID, err)
	}
	return &GenerateWeekResult{
		Roster:         existing,
		Assignments:    assignments,
		AlreadyExisted: true,
	}, nil
}

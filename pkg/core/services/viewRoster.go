package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mld08/planning-app/pkg/core/model"
)

// ViewRosterStore defines the database operations needed for roster display
type ViewRosterStore interface {
	GetRoster(ctx context.Context, rosterID string) (*model.Roster, error)
	GetLatestRoster(ctx context.Context) (*model.Roster, error)
	GetAssignmentsByRoster(ctx context.Context, rosterID string) ([]model.Assignment, error)
	GetAgentsByIDs(ctx context.Context, agentIDs []string) ([]*model.Agent, error)
}

// AssignmentView is one line of a rendered roster day
type AssignmentView struct {
	AgentID   string
	AgentName string
	Activity  model.ActivityID
	Role      string
	Shift     model.ShiftPeriod
	Clock     string
}

// DayView groups a day's assignments, day shift before night shift
type DayView struct {
	Date        time.Time
	Assignments []AssignmentView
}

// RosterView is a full week laid out for display, Monday first
type RosterView struct {
	Roster *model.Roster
	Days   [7]DayView
}

// ViewRoster loads a roster and lays it out day by day for display. An
// empty rosterID selects the most recently created roster.
func ViewRoster(ctx context.Context, store ViewRosterStore, logger *zap.Logger, rosterID string) (*RosterView, error) {
	var ros *model.Roster
	var err error
	if rosterID == "" {
		logger.Debug("No roster id given, loading latest")
		ros, err = store.GetLatestRoster(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch latest roster: %w", err)
		}
	} else {
		ros, err = store.GetRoster(ctx, rosterID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch roster %s: %w", rosterID, err)
		}
	}

	assignments, err := store.GetAssignmentsByRoster(ctx, ros.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments for roster %s: %w", ros.ID, err)
	}

	names, err := agentNames(ctx, store, assignments)
	if err != nil {
		return nil, err
	}

	view := &RosterView{Roster: ros}
	for i := range view.Days {
		view.Days[i].Date = ros.StartDate.AddDate(0, 0, i)
	}

	for _, a := range assignments {
		idx := dayIndex(ros.StartDate, a.Day)
		if idx < 0 || idx > 6 {
			logger.Warn("Assignment outside roster week, skipping",
				zap.String("assignment_id", a.ID),
				zap.Time("day", a.Day))
			continue
		}
		view.Days[idx].Assignments = append(view.Days[idx].Assignments, AssignmentView{
			AgentID:   a.AgentID,
			AgentName: names[a.AgentID],
			Activity:  a.Activity,
			Role:      a.Role,
			Shift:     a.Shift,
			Clock:     a.Shift.ClockRange(),
		})
	}

	for i := range view.Days {
		day := view.Days[i].Assignments
		sort.SliceStable(day, func(a, b int) bool {
			if day[a].Shift != day[b].Shift {
				return day[a].Shift == model.ShiftDay
			}
			return day[a].Activity < day[b].Activity
		})
	}

	return view, nil
}

func agentNames(ctx context.Context, store ViewRosterStore, assignments []model.Assignment) (map[string]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, a := range assignments {
		if !seen[a.AgentID] {
			seen[a.AgentID] = true
			ids = append(ids, a.AgentID)
		}
	}
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	agents, err := store.GetAgentsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agents for roster view: %w", err)
	}

	names := make(map[string]string, len(agents))
	for _, agent := range agents {
		names[agent.ID] = agent.FullName()
	}
	return names, nil
}

func dayIndex(weekStart, day time.Time) int {
	return int(day.Sub(weekStart).Hours() / 24)
}

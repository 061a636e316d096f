package roster

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mld08/planning-app/pkg/core/model"
)

// WeekLedger is the in-memory assignment index for one roster under
// generation. Every committed assignment goes through Record, which updates
// the agent's workload counters and the per-day indexes the eligibility
// rules consult. Building the index once per week keeps the selection loop
// free of repository round-trips.
type WeekLedger struct {
	rosterID    string
	assignments []*model.Assignment

	byAgentDay    map[string][]*model.Assignment
	nightByAgent  map[string]bool
	leadByAgent   map[string]map[model.ActivityID]int
	touchedAgents map[string]*model.Agent
}

// NewWeekLedger creates an empty ledger for the given roster
func NewWeekLedger(rosterID string) *WeekLedger {
	return &WeekLedger{
		rosterID:      rosterID,
		byAgentDay:    make(map[string][]*model.Assignment),
		nightByAgent:  make(map[string]bool),
		leadByAgent:   make(map[string]map[model.ActivityID]int),
		touchedAgents: make(map[string]*model.Agent),
	}
}

func agentDayKey(agentID string, day time.Time) string {
	return agentID + "|" + day.Format("2006-01-02")
}

// Record commits one assignment to the ledger. The assignment write and the
// counter update are a single step: both happen or neither does. Exact
// duplicates (same agent, day, shift, activity, role) are rejected.
func (l *WeekLedger) Record(agent *model.Agent, day time.Time, shift model.ShiftPeriod, activity model.ActivityID, role, notes string) (*model.Assignment, error) {
	key := agentDayKey(agent.ID, day)

	for _, existing := range l.byAgentDay[key] {
		if existing.Shift == shift && existing.Activity == activity && existing.Role == role {
			return nil, fmt.Errorf("duplicate assignment: agent %s already holds %s/%s (%s) on %s",
				agent.ID, activity, role, shift, day.Format("2006-01-02"))
		}
		if shift == model.ShiftNight && existing.Shift == model.ShiftNight {
			return nil, fmt.Errorf("night double-booking: agent %s already holds a night assignment on %s",
				agent.ID, day.Format("2006-01-02"))
		}
	}

	assignment := &model.Assignment{
		ID:       uuid.New().String(),
		RosterID: l.rosterID,
		AgentID:  agent.ID,
		Day:      day,
		Shift:    shift,
		Activity: activity,
		Role:     role,
		Notes:    notes,
	}

	l.assignments = append(l.assignments, assignment)
	l.byAgentDay[key] = append(l.byAgentDay[key], assignment)

	if shift == model.ShiftNight {
		l.nightByAgent[key] = true
	}
	if role == model.RoleTeamLead {
		if l.leadByAgent[agent.ID] == nil {
			l.leadByAgent[agent.ID] = make(map[model.ActivityID]int)
		}
		l.leadByAgent[agent.ID][activity]++
	}

	// Counters only ever increase; they carry fairness across weeks.
	if shift == model.ShiftDay {
		agent.DayCount++
	} else {
		agent.NightCount++
	}
	assignedDay := day
	agent.LastShift = shift
	agent.LastAssigned = &assignedDay
	l.touchedAgents[agent.ID] = agent

	return assignment, nil
}

// SeedHistory primes the night index from the agents' persisted last-shift
// history, so consecutive-night checks on the week's first day see a night
// worked at the end of the previous roster.
func (l *WeekLedger) SeedHistory(agents []*model.Agent) {
	for _, agent := range agents {
		if agent.LastShift == model.ShiftNight && agent.LastAssigned != nil {
			l.nightByAgent[agentDayKey(agent.ID, *agent.LastAssigned)] = true
		}
	}
}

// AssignmentsOn returns the agent's assignments for the given day
func (l *WeekLedger) AssignmentsOn(agentID string, day time.Time) []*model.Assignment {
	return l.byAgentDay[agentDayKey(agentID, day)]
}

// HasNight reports whether the agent already holds a night assignment on the day
func (l *WeekLedger) HasNight(agentID string, day time.Time) bool {
	return l.nightByAgent[agentDayKey(agentID, day)]
}

// LeadCount returns how many times the agent holds the team-lead role for
// the activity within this roster
func (l *WeekLedger) LeadCount(agentID string, activity model.ActivityID) int {
	return l.leadByAgent[agentID][activity]
}

// Assignments returns all assignments recorded so far, in commit order
func (l *WeekLedger) Assignments() []model.Assignment {
	out := make([]model.Assignment, len(l.assignments))
	for i, a := range l.assignments {
		out[i] = *a
	}
	return out
}

// TouchedAgents returns the agents whose counters were updated by this ledger
func (l *WeekLedger) TouchedAgents() []*model.Agent {
	agents := make([]*model.Agent, 0, len(l.touchedAgents))
	for _, agent := range l.touchedAgents {
		agents = append(agents, agent)
	}
	return agents
}

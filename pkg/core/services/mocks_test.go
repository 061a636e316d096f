package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mld08/planning-app/pkg/core/model"
)

// mockWeekStore backs the generation services in tests. Rosters are keyed
// by start date, assignments by roster ID.
type mockWeekStore struct {
	rosters     map[string]*model.Roster
	assignments map[string][]model.Assignment
	agents      []*model.Agent

	commitCalls int
	savedAgents []*model.Agent

	// raceRoster, when set, is inserted during CommitWeek and the commit
	// fails with ErrDuplicateRoster, simulating a concurrent run winning.
	raceRoster *model.Roster
	commitErr  error
}

func newMockWeekStore() *mockWeekStore {
	return &mockWeekStore{
		rosters:     make(map[string]*model.Roster),
		assignments: make(map[string][]model.Assignment),
	}
}

func startKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func (m *mockWeekStore) GetRosterByStartDate(_ context.Context, start time.Time) (*model.Roster, error) {
	ros, ok := m.rosters[startKey(start)]
	if !ok {
		return nil, model.ErrNotFound
	}
	return ros, nil
}

func (m *mockWeekStore) GetAssignmentsByRoster(_ context.Context, rosterID string) ([]model.Assignment, error) {
	return m.assignments[rosterID], nil
}

func (m *mockWeekStore) GetAvailableAgents(_ context.Context) ([]*model.Agent, error) {
	return m.agents, nil
}

func (m *mockWeekStore) CommitWeek(_ context.Context, ros *model.Roster, assignments []model.Assignment, agents []*model.Agent) error {
	if m.raceRoster != nil {
		m.rosters[startKey(m.raceRoster.StartDate)] = m.raceRoster
		return model.ErrDuplicateRoster
	}
	if m.commitErr != nil {
		return m.commitErr
	}
	if _, exists := m.rosters[startKey(ros.StartDate)]; exists {
		return model.ErrDuplicateRoster
	}
	m.commitCalls++
	m.rosters[startKey(ros.StartDate)] = ros
	m.assignments[ros.ID] = assignments
	m.savedAgents = agents
	return nil
}

type mockNotifier struct {
	calls int
	err   error
}

func (m *mockNotifier) NotifyRoster(_ context.Context, _ *model.Roster, _ []model.Assignment, _ []*model.Agent) error {
	m.calls++
	return m.err
}

// testAgents builds n plain available male agents with IDs a1..aN
func testAgents(n int) []*model.Agent {
	agents := make([]*model.Agent, 0, n)
	for i := 1; i <= n; i++ {
		agents = append(agents, &model.Agent{
			ID:        fmt.Sprintf("a%d", i),
			FirstName: fmt.Sprintf("Agent%d", i),
			LastName:  "Test",
			Gender:    model.GenderMale,
			Available: true,
		})
	}
	return agents
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mld08/planning-app/pkg/core/model"
	"github.com/mld08/planning-app/pkg/core/roster"
)

// Monday 2026-03-02
var testMonday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func testEngine() *roster.Engine {
	return roster.NewEngine(roster.DefaultCatalog(), roster.DefaultMinAvailableAgents, zap.NewNop())
}

func TestGenerateWeek_PersistsAndNotifies(t *testing.T) {
	ctx := context.Background()
	store := newMockWeekStore()
	store.agents = testAgents(10)
	notifier := &mockNotifier{}

	result, err := GenerateWeek(ctx, store, notifier, testEngine(), zap.NewNop(), &testMonday, "cron", false)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.False(t, result.AlreadyExisted)
	assert.False(t, result.DryRun)
	assert.Equal(t, testMonday, result.Roster.StartDate)
	assert.Equal(t, "cron", result.Roster.CreatedBy)
	assert.NotEmpty(t, result.Assignments)

	assert.Equal(t, 1, store.commitCalls)
	assert.Equal(t, 1, notifier.calls)
	assert.NotEmpty(t, store.savedAgents)
}

func TestGenerateWeek_IdempotentForExistingWeek(t *testing.T) {
	ctx := context.Background()
	store := newMockWeekStore()
	store.agents = testAgents(10)

	existing := &model.Roster{ID: "roster-1", StartDate: testMonday, Status: model.RosterActive}
	store.rosters[startKey(testMonday)] = existing
	store.assignments["roster-1"] = []model.Assignment{
		{ID: "assign-1", RosterID: "roster-1", AgentID: "a1", Day: testMonday},
	}

	result, err := GenerateWeek(ctx, store, nil, testEngine(), zap.NewNop(), &testMonday, "cli", false)
	require.NoError(t, err)

	assert.True(t, result.AlreadyExisted)
	assert.Equal(t, "roster-1", result.Roster.ID)
	assert.Len(t, result.Assignments, 1)
	assert.Equal(t, 0, store.commitCalls)
}

func TestGenerateWeek_DryRunDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	store := newMockWeekStore()
	store.agents = testAgents(10)
	notifier := &mockNotifier{}

	result, err := GenerateWeek(ctx, store, notifier, testEngine(), zap.NewNop(), &testMonday, "cli", true)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.NotEmpty(t, result.Assignments)
	assert.Equal(t, 0, store.commitCalls)
	assert.Equal(t, 0, notifier.calls)
}

func TestGenerateWeek_NotifierFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	store := newMockWeekStore()
	store.agents = testAgents(10)
	notifier := &mockNotifier{err: assert.AnError}

	result, err := GenerateWeek(ctx, store, notifier, testEngine(), zap.NewNop(), &testMonday, "cron", false)
	require.NoError(t, err)

	assert.Equal(t, 1, store.commitCalls)
	assert.Equal(t, 1, notifier.calls)
	assert.False(t, result.AlreadyExisted)
}

func TestGenerateWeek_InsufficientStaffAbortsWithoutPersisting(t *testing.T) {
	ctx := context.Background()
	store := newMockWeekStore()
	store.agents = testAgents(3)

	_, err := GenerateWeek(ctx, store, nil, testEngine(), zap.NewNop(), &testMonday, "cron", false)
	require.Error(t, err)

	var insufficient *roster.InsufficientStaffError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0, store.commitCalls)
}

func TestGenerateWeek_DuplicateRaceReturnsWinningRoster(t *testing.T) {
	ctx := context.Background()
	store := newMockWeekStore()
	store.agents = testAgents(10)
	store.raceRoster = &model.Roster{ID: "winner", StartDate: testMonday, Status: model.RosterActive}

	result, err := GenerateWeek(ctx, store, nil, testEngine(), zap.NewNop(), &testMonday, "cron", false)
	require.NoError(t, err)

	assert.True(t, result.AlreadyExisted)
	assert.Equal(t, "winner", result.Roster.ID)
}

func TestGenerateWeek_RejectsNonMondayStart(t *testing.T) {
	ctx := context.Background()
	store := newMockWeekStore()
	store.agents = testAgents(10)

	tuesday := testMonday.AddDate(0, 0, 1)
	_, err := GenerateWeek(ctx, store, nil, testEngine(), zap.NewNop(), &tuesday, "cli", false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Monday")
}

func TestGenerateWeek_DefaultsToNextMonday(t *testing.T) {
	ctx := context.Background()
	store := newMockWeekStore()
	store.agents = testAgents(10)

	result, err := GenerateWeek(ctx, store, nil, testEngine(), zap.NewNop(), nil, "cron", true)
	require.NoError(t, err)

	assert.Equal(t, NextMonday(time.Now()), result.Roster.StartDate)
}

package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mld08/planning-app/pkg/core/model"
)

func activeIDs(defs []ActivityDef) []model.ActivityID {
	ids := make([]model.ActivityID, len(defs))
	for i, def := range defs {
		ids[i] = def.ID
	}
	return ids
}

func TestDefaultCatalog_Validates(t *testing.T) {
	assert.NoError(t, DefaultCatalog().Validate())
}

func TestPlanWeek_DailyActivitiesOnAllSevenDays(t *testing.T) {
	plan, err := DefaultCatalog().PlanWeek(monday)
	require.NoError(t, err)

	for day := 0; day < 7; day++ {
		ids := activeIDs(plan[day])
		assert.Contains(t, ids, model.ActivityHarborWatch, "day %d", day)
		assert.Contains(t, ids, model.ActivityPortBrigade, "day %d", day)
	}
}

func TestPlanWeek_CoastalPatrolWednesdayAndFriday(t *testing.T) {
	plan, err := DefaultCatalog().PlanWeek(monday)
	require.NoError(t, err)

	for day := 0; day < 7; day++ {
		ids := activeIDs(plan[day])
		if day == 2 || day == 4 { // Wednesday, Friday
			assert.Contains(t, ids, model.ActivityCoastalPatrol, "day %d", day)
		} else {
			assert.NotContains(t, ids, model.ActivityCoastalPatrol, "day %d", day)
		}
	}
}

func TestPlanWeek_FactoryInspectionMonWedFri(t *testing.T) {
	plan, err := DefaultCatalog().PlanWeek(monday)
	require.NoError(t, err)

	active := map[int]bool{0: true, 2: true, 4: true}
	for day := 0; day < 7; day++ {
		ids := activeIDs(plan[day])
		if active[day] {
			assert.Contains(t, ids, model.ActivityFactoryInspection, "day %d", day)
		} else {
			assert.NotContains(t, ids, model.ActivityFactoryInspection, "day %d", day)
		}
	}
}

func TestPlanWeek_OfficeDutiesWeekdaysOnly(t *testing.T) {
	plan, err := DefaultCatalog().PlanWeek(monday)
	require.NoError(t, err)

	for day := 0; day < 7; day++ {
		ids := activeIDs(plan[day])
		if day < 5 {
			assert.Contains(t, ids, model.ActivityCourier, "day %d", day)
			assert.Contains(t, ids, model.ActivityDriverPool, "day %d", day)
		} else {
			assert.NotContains(t, ids, model.ActivityCourier, "day %d", day)
			assert.NotContains(t, ids, model.ActivityDriverPool, "day %d", day)
		}
	}
}

func TestPlanWeek_PreservesCatalogOrderWithinDay(t *testing.T) {
	plan, err := DefaultCatalog().PlanWeek(monday)
	require.NoError(t, err)

	// Wednesday carries every activity; harbor watch must come first and
	// port brigade second, matching catalog order.
	ids := activeIDs(plan[2])
	require.GreaterOrEqual(t, len(ids), 2)
	assert.Equal(t, model.ActivityHarborWatch, ids[0])
	assert.Equal(t, model.ActivityPortBrigade, ids[1])
}

func TestApplyOverrides_ChangesRecurrence(t *testing.T) {
	catalog, err := DefaultCatalog().ApplyOverrides([]Override{
		{Activity: model.ActivityCoastalPatrol, Days: "FREQ=WEEKLY;BYDAY=MO"},
	})
	require.NoError(t, err)

	plan, err := catalog.PlanWeek(monday)
	require.NoError(t, err)

	assert.Contains(t, activeIDs(plan[0]), model.ActivityCoastalPatrol)
	assert.NotContains(t, activeIDs(plan[2]), model.ActivityCoastalPatrol)
}

func TestApplyOverrides_DisablesActivity(t *testing.T) {
	catalog, err := DefaultCatalog().ApplyOverrides([]Override{
		{Activity: model.ActivityCourier, Disabled: true},
	})
	require.NoError(t, err)

	plan, err := catalog.PlanWeek(monday)
	require.NoError(t, err)

	for day := 0; day < 7; day++ {
		assert.NotContains(t, activeIDs(plan[day]), model.ActivityCourier)
	}
}

func TestApplyOverrides_UnknownActivityRejected(t *testing.T) {
	_, err := DefaultCatalog().ApplyOverrides([]Override{
		{Activity: "submarine-patrol", Disabled: true},
	})
	assert.Error(t, err)
}

func TestValidate_RejectsBadRecurrence(t *testing.T) {
	catalog := Catalog{Activities: []ActivityDef{
		{
			ID:   model.ActivityCoastalPatrol,
			Days: "EVERY WEDNESDAY",
			Slots: []SlotSpec{
				{Role: model.RoleAgent, Shift: model.ShiftDay, Count: 1},
			},
		},
	}}
	assert.Error(t, catalog.Validate())
}

func TestValidate_RejectsEmptySlots(t *testing.T) {
	catalog := Catalog{Activities: []ActivityDef{
		{ID: model.ActivityCoastalPatrol, Days: everyDay},
	}}
	assert.Error(t, catalog.Validate())
}

func TestValidate_RejectsBadSlotSpec(t *testing.T) {
	catalog := Catalog{Activities: []ActivityDef{
		{
			ID:   model.ActivityCoastalPatrol,
			Days: everyDay,
			Slots: []SlotSpec{
				{Role: model.RoleAgent, Shift: "afternoon", Count: 1},
			},
		},
	}}
	assert.Error(t, catalog.Validate())

	catalog.Activities[0].Slots = []SlotSpec{
		{Role: model.RoleAgent, Shift: model.ShiftDay, Count: 0},
	}
	assert.Error(t, catalog.Validate())
}

func TestPlanWeek_BVPSlotBreakdown(t *testing.T) {
	plan, err := DefaultCatalog().PlanWeek(monday)
	require.NoError(t, err)

	var brigade *ActivityDef
	for i := range plan[0] {
		if plan[0][i].ID == model.ActivityPortBrigade {
			brigade = &plan[0][i]
			break
		}
	}
	require.NotNil(t, brigade)

	require.Len(t, brigade.Slots, 4)
	assert.Equal(t, model.RoleTeamLead, brigade.Slots[0].Role)
	assert.Equal(t, model.ShiftDay, brigade.Slots[0].Shift)
	assert.Equal(t, 2, brigade.Slots[2].Count)
	assert.Equal(t, model.ShiftNight, brigade.Slots[3].Shift)
	assert.Equal(t, LeadPoolBVP, brigade.LeadPool)
	assert.Equal(t, 1, brigade.LeadCapPerWeek)
}

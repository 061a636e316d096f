package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mld08/planning-app/pkg/core/model"
)

func TestIsEligible_PlainAgentDayShift(t *testing.T) {
	ledger := NewWeekLedger("roster-1")
	agent := makeAgent("a1")

	ok, reason := IsEligible(agent, daySlot(model.ActivityPortBrigade, model.RoleAgent, monday), ledger)
	assert.True(t, ok)
	assert.Empty(t, reason)
}

func TestIsEligible_EmbarkedObserverExcludedFromEverything(t *testing.T) {
	ledger := NewWeekLedger("roster-1")

	embarkStart := monday.AddDate(0, 0, -10)
	embarkEnd := monday.AddDate(0, 0, 10)
	agent := makeAgent("a1")
	agent.IsEmbarkedObserver = true
	agent.EmbarkStart = &embarkStart
	agent.EmbarkEnd = &embarkEnd

	ok, reason := IsEligible(agent, daySlot(model.ActivityPortBrigade, model.RoleAgent, monday), ledger)
	assert.False(t, ok)
	assert.Equal(t, ReasonEmbarked, reason)
}

func TestIsEligible_EmbarkationExpired(t *testing.T) {
	ledger := NewWeekLedger("roster-1")

	embarkEnd := monday.AddDate(0, 0, -1)
	agent := makeAgent("a1")
	agent.IsEmbarkedObserver = true
	agent.EmbarkEnd = &embarkEnd

	ok, _ := IsEligible(agent, daySlot(model.ActivityPortBrigade, model.RoleAgent, monday), ledger)
	assert.True(t, ok)
}

func TestIsEligible_EmbarkationChecksFirst(t *testing.T) {
	// An embarked female agent at night fails on the embarkation rule, not
	// the gender rule: rule order is fixed and short-circuits.
	ledger := NewWeekLedger("roster-1")

	embarkEnd := monday.AddDate(0, 0, 10)
	agent := makeAgent("a1")
	agent.Gender = model.GenderFemale
	agent.IsEmbarkedObserver = true
	agent.EmbarkEnd = &embarkEnd

	ok, reason := IsEligible(agent, nightSlot(model.ActivityHarborWatch, model.RoleAgent, monday), ledger)
	assert.False(t, ok)
	assert.Equal(t, ReasonEmbarked, reason)
}

func TestIsEligible_NightGenderExclusion(t *testing.T) {
	ledger := NewWeekLedger("roster-1")
	agent := makeAgent("a1")
	agent.Gender = model.GenderFemale

	ok, reason := IsEligible(agent, nightSlot(model.ActivityPortBrigade, model.RoleAgent, monday), ledger)
	assert.False(t, ok)
	assert.Equal(t, ReasonNightGender, reason)

	// Day shifts are unaffected
	ok, _ = IsEligible(agent, daySlot(model.ActivityPortBrigade, model.RoleAgent, monday), ledger)
	assert.True(t, ok)
}

func TestIsEligible_NightLeadershipExclusion(t *testing.T) {
	ledger := NewWeekLedger("roster-1")

	chief := makeAgent("chief")
	chief.IsOfficeChief = true

	lead := makeAgent("lead")
	lead.IsTeamLead = true

	slot := nightSlot(model.ActivityPortBrigade, model.RoleAgent, monday)

	ok, reason := IsEligible(chief, slot, ledger)
	assert.False(t, ok)
	assert.Equal(t, ReasonNightLeadership, reason)

	ok, reason = IsEligible(lead, slot, ledger)
	assert.False(t, ok)
	assert.Equal(t, ReasonNightLeadership, reason)
}

func TestIsEligible_AirportInspectorExcludedFromHarborWatch(t *testing.T) {
	ledger := NewWeekLedger("roster-1")
	agent := makeAgent("a1")
	agent.IsAirportCertInspector = true

	ok, reason := IsEligible(agent, daySlot(model.ActivityHarborWatch, model.RoleAgent, monday), ledger)
	assert.False(t, ok)
	assert.Equal(t, ReasonAirportInspector, reason)

	// Other activities stay open to them
	ok, _ = IsEligible(agent, daySlot(model.ActivityPortBrigade, model.RoleAgent, monday), ledger)
	assert.True(t, ok)
}

func TestIsEligible_NoConsecutiveNights(t *testing.T) {
	ledger := NewWeekLedger("roster-1")
	agent := makeAgent("a1")

	_, err := ledger.Record(agent, monday, model.ShiftNight, model.ActivityHarborWatch, model.RoleAgent, "")
	require.NoError(t, err)

	tuesday := monday.AddDate(0, 0, 1)
	ok, reason := IsEligible(agent, nightSlot(model.ActivityHarborWatch, model.RoleAgent, tuesday), ledger)
	assert.False(t, ok)
	assert.Equal(t, ReasonConsecutiveNight, reason)

	// Two days later the rule no longer applies
	wednesday := monday.AddDate(0, 0, 2)
	ok, _ = IsEligible(agent, nightSlot(model.ActivityHarborWatch, model.RoleAgent, wednesday), ledger)
	assert.True(t, ok)
}

func TestIsEligible_ConsecutiveNightSeenAcrossRosterBoundary(t *testing.T) {
	// The agent worked the night before this week started, recorded only in
	// their persisted history fields.
	lastSunday := monday.AddDate(0, 0, -1)
	agent := makeAgent("a1")
	agent.LastShift = model.ShiftNight
	agent.LastAssigned = &lastSunday

	ledger := NewWeekLedger("roster-1")
	ledger.SeedHistory([]*model.Agent{agent})

	ok, reason := IsEligible(agent, nightSlot(model.ActivityHarborWatch, model.RoleAgent, monday), ledger)
	assert.False(t, ok)
	assert.Equal(t, ReasonConsecutiveNight, reason)
}

func TestIsEligible_SameDayDoubleBooking(t *testing.T) {
	ledger := NewWeekLedger("roster-1")
	agent := makeAgent("a1")

	_, err := ledger.Record(agent, monday, model.ShiftDay, model.ActivityHarborWatch, model.RoleAgent, "")
	require.NoError(t, err)

	ok, reason := IsEligible(agent, daySlot(model.ActivityPortBrigade, model.RoleAgent, monday), ledger)
	assert.False(t, ok)
	assert.Equal(t, ReasonAlreadyAssigned, reason)

	// The next day is fine
	tuesday := monday.AddDate(0, 0, 1)
	ok, _ = IsEligible(agent, daySlot(model.ActivityPortBrigade, model.RoleAgent, tuesday), ledger)
	assert.True(t, ok)
}

func TestIsEligible_CourierDriverPoolException(t *testing.T) {
	ledger := NewWeekLedger("roster-1")
	agent := makeAgent("a1")
	agent.IsDriver = true
	agent.Activities = map[model.ActivityID]bool{model.ActivityCourier: true}

	_, err := ledger.Record(agent, monday, model.ShiftDay, model.ActivityCourier, model.RoleCourier, "")
	require.NoError(t, err)

	// The driver pool slot the same day stays open: the one permitted pair
	driverSlot := Slot{
		Day:      monday,
		Shift:    model.ShiftDay,
		Activity: model.ActivityDriverPool,
		Role:     model.RoleDriver,
		Spec:     SlotSpec{Role: model.RoleDriver, Shift: model.ShiftDay, Count: 1, Capability: CapabilityDriver},
	}
	ok, reason := IsEligible(agent, driverSlot, ledger)
	assert.True(t, ok, reason)

	// Any third activity that day is still blocked
	ok, reason = IsEligible(agent, daySlot(model.ActivityPortBrigade, model.RoleAgent, monday), ledger)
	assert.False(t, ok)
	assert.Equal(t, ReasonAlreadyAssigned, reason)
}

func TestIsEligible_DriverCapability(t *testing.T) {
	ledger := NewWeekLedger("roster-1")
	agent := makeAgent("a1")

	slot := Slot{
		Day:      monday,
		Shift:    model.ShiftDay,
		Activity: model.ActivityDriverPool,
		Role:     model.RoleDriver,
		Spec:     SlotSpec{Role: model.RoleDriver, Shift: model.ShiftDay, Count: 1, Capability: CapabilityDriver},
	}

	ok, reason := IsEligible(agent, slot, ledger)
	assert.False(t, ok)
	assert.Equal(t, ReasonNotDriver, reason)

	agent.IsDriver = true
	ok, _ = IsEligible(agent, slot, ledger)
	assert.True(t, ok)
}

func TestIsEligible_ActivityTagCapability(t *testing.T) {
	ledger := NewWeekLedger("roster-1")
	agent := makeAgent("a1")

	slot := Slot{
		Day:      monday,
		Shift:    model.ShiftDay,
		Activity: model.ActivityCoastalPatrol,
		Role:     model.RoleAgent,
		Spec:     SlotSpec{Role: model.RoleAgent, Shift: model.ShiftDay, Count: 1, Capability: CapabilityActivityTag},
	}

	ok, reason := IsEligible(agent, slot, ledger)
	assert.False(t, ok)
	assert.Equal(t, ReasonMissingTag, reason)

	agent.Activities = map[model.ActivityID]bool{model.ActivityCoastalPatrol: true}
	ok, _ = IsEligible(agent, slot, ledger)
	assert.True(t, ok)
}

func TestIsEligible_SecondNightSameDay(t *testing.T) {
	ledger := NewWeekLedger("roster-1")
	agent := makeAgent("a1")
	agent.IsDriver = true
	agent.Activities = map[model.ActivityID]bool{model.ActivityCourier: true}

	// Put the agent on the courier run, then a hypothetical night slot in
	// the paired activity: the night-twice rule fires before the same-day
	// check can allow the pairing.
	_, err := ledger.Record(agent, monday, model.ShiftNight, model.ActivityCourier, model.RoleCourier, "")
	require.NoError(t, err)

	slot := Slot{
		Day:      monday,
		Shift:    model.ShiftNight,
		Activity: model.ActivityDriverPool,
		Role:     model.RoleDriver,
		Spec:     SlotSpec{Role: model.RoleDriver, Shift: model.ShiftNight, Count: 1, Capability: CapabilityDriver},
	}
	ok, reason := IsEligible(agent, slot, ledger)
	assert.False(t, ok)
	assert.Equal(t, ReasonNightTwice, reason)
}

func TestSameDayCompatible(t *testing.T) {
	assert.True(t, sameDayCompatible(model.ActivityCourier, model.ActivityDriverPool))
	assert.True(t, sameDayCompatible(model.ActivityDriverPool, model.ActivityCourier))
	assert.False(t, sameDayCompatible(model.ActivityCourier, model.ActivityCourier))
	assert.False(t, sameDayCompatible(model.ActivityCourier, model.ActivityPortBrigade))
	assert.False(t, sameDayCompatible(model.ActivityHarborWatch, model.ActivityPortBrigade))
}

func TestIsEligible_UsesSlotDayNotWallClock(t *testing.T) {
	// Embarkation windows compare against the slot's day, so a window ending
	// mid-week frees the agent for the back half of the week.
	embarkEnd := monday.AddDate(0, 0, 2) // through Wednesday
	agent := makeAgent("a1")
	agent.IsEmbarkedObserver = true
	agent.EmbarkEnd = &embarkEnd

	ledger := NewWeekLedger("roster-1")

	for offset := 0; offset < 7; offset++ {
		day := monday.AddDate(0, 0, offset)
		ok, _ := IsEligible(agent, daySlot(model.ActivityPortBrigade, model.RoleAgent, day), ledger)
		if offset <= 2 {
			assert.False(t, ok, "day offset %d should be excluded", offset)
		} else {
			assert.True(t, ok, "day offset %d should be eligible", offset)
		}
	}
}

package roster

import (
	"time"

	"github.com/mld08/planning-app/pkg/core/model"
)

// Slot identifies one concrete position to fill: an activity slot on a
// given day and shift.
type Slot struct {
	Day      time.Time
	Shift    model.ShiftPeriod
	Activity model.ActivityID
	Role     string
	Spec     SlotSpec
}

// Exclusion reasons returned by IsEligible. The first failing rule wins.
const (
	ReasonEmbarked         = "embarked observer until disembarkation"
	ReasonNightGender      = "excluded from night shifts by gender rule"
	ReasonNightLeadership  = "office chiefs and team leads excluded from night watches"
	ReasonAirportInspector = "airport certification inspectors reserved from harbor watch"
	ReasonConsecutiveNight = "worked night shift the preceding day"
	ReasonNightTwice       = "already assigned a night shift this day"
	ReasonAlreadyAssigned  = "already assigned this day"
	ReasonNotDriver        = "slot requires the driver flag"
	ReasonMissingTag       = "agent not qualified for this activity"
)

// sameDayCompatible is the one permitted same-day pairing: a single agent
// may cover the office courier run and the driver pool standby together.
func sameDayCompatible(a, b model.ActivityID) bool {
	pair := map[model.ActivityID]bool{
		model.ActivityCourier:    true,
		model.ActivityDriverPool: true,
	}
	return pair[a] && pair[b] && a != b
}

// IsEligible applies the hard-constraint rule set for one candidate and one
// slot. Rules short-circuit in a fixed order; the returned reason names the
// first rule that failed.
func IsEligible(agent *model.Agent, slot Slot, ledger *WeekLedger) (bool, string) {
	// Rule 1: embarkation exclusion, covers everything
	if agent.EmbarkedOn(slot.Day) {
		return false, ReasonEmbarked
	}

	// Rule 2: night-gender exclusion
	if slot.Shift == model.ShiftNight && agent.Gender == model.GenderFemale {
		return false, ReasonNightGender
	}

	// Rule 3: night-leadership exclusion (strict variant: both office
	// chiefs and team leads)
	if slot.Shift == model.ShiftNight && (agent.IsOfficeChief || agent.IsTeamLead) {
		return false, ReasonNightLeadership
	}

	// Rule 4: airport certification inspectors are reserved exclusively for
	// certification duty, never the 24-hour harbor watch
	if slot.Activity == model.ActivityHarborWatch && agent.IsAirportCertInspector {
		return false, ReasonAirportInspector
	}

	// Rule 5: no consecutive nights, and no second night the same day. The
	// ledger's night index is seeded from persisted history, so the check
	// also sees a night worked on the last day of the previous roster.
	if slot.Shift == model.ShiftNight {
		if ledger.HasNight(agent.ID, slot.Day.AddDate(0, 0, -1)) {
			return false, ReasonConsecutiveNight
		}
		if ledger.HasNight(agent.ID, slot.Day) {
			return false, ReasonNightTwice
		}
	}

	// Rule 6: same-day double booking, with the courier/driver-pool exception
	for _, existing := range ledger.AssignmentsOn(agent.ID, slot.Day) {
		if !sameDayCompatible(existing.Activity, slot.Activity) {
			return false, ReasonAlreadyAssigned
		}
	}

	// Rule 7: activity-specific capability
	switch slot.Spec.Capability {
	case CapabilityDriver:
		if !agent.IsDriver {
			return false, ReasonNotDriver
		}
	case CapabilityActivityTag:
		if !agent.QualifiedFor(slot.Activity) {
			return false, ReasonMissingTag
		}
	}

	return true, ""
}

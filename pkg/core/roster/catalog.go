package roster

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/mld08/planning-app/pkg/core/model"
)

// Capability gates a slot on an agent attribute beyond the generic
// eligibility rules.
type Capability int

const (
	// CapabilityNone accepts any eligible agent
	CapabilityNone Capability = iota

	// CapabilityDriver requires the driver flag
	CapabilityDriver

	// CapabilityActivityTag requires the agent's activity set to contain
	// the slot's activity
	CapabilityActivityTag
)

// LeadPool restricts a team-lead slot to a named pool of eligible leads.
type LeadPool int

const (
	LeadPoolNone LeadPool = iota
	LeadPoolBVP
	LeadPoolFactory
)

// SlotSpec declares one required position within an activity.
type SlotSpec struct {
	Role       string
	Shift      model.ShiftPeriod
	Count      int
	Capability Capability
}

// ActivityDef declares a duty category: on which days of the week it runs
// and which slots it requires. Active days are expressed as a weekly RRULE
// so the recurrence stays declarative and testable.
type ActivityDef struct {
	ID   model.ActivityID
	Name string

	// Days is an RFC 5545 weekly recurrence, e.g. "FREQ=WEEKLY;BYDAY=WE,FR"
	Days string

	Slots []SlotSpec

	// LeadPool and LeadCapPerWeek apply to this activity's team-lead slots:
	// pool members holding the lead role LeadCapPerWeek times in the same
	// roster are excluded from holding it again that week.
	LeadPool       LeadPool
	LeadCapPerWeek int
}

// Catalog is the ordered list of activities requiring coverage.
type Catalog struct {
	Activities []ActivityDef
}

const everyDay = "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR,SA,SU"

// DefaultCatalog returns the service's standing duty catalog.
func DefaultCatalog() Catalog {
	return Catalog{Activities: []ActivityDef{
		{
			ID:   model.ActivityHarborWatch,
			Name: "Harbor watch (CRSS)",
			Days: everyDay,
			Slots: []SlotSpec{
				{Role: model.RoleAgent, Shift: model.ShiftDay, Count: 1},
				{Role: model.RoleAgent, Shift: model.ShiftNight, Count: 1},
			},
		},
		{
			ID:   model.ActivityPortBrigade,
			Name: "Port brigade (BVP)",
			Days: everyDay,
			Slots: []SlotSpec{
				{Role: model.RoleTeamLead, Shift: model.ShiftDay, Count: 1},
				{Role: model.RoleInspector, Shift: model.ShiftDay, Count: 1},
				{Role: model.RoleAgent, Shift: model.ShiftDay, Count: 2},
				{Role: model.RoleAgent, Shift: model.ShiftNight, Count: 1},
			},
			LeadPool:       LeadPoolBVP,
			LeadCapPerWeek: 1,
		},
		{
			ID:   model.ActivityCoastalPatrol,
			Name: "Coastal patrol",
			Days: "FREQ=WEEKLY;BYDAY=WE,FR",
			Slots: []SlotSpec{
				{Role: model.RoleAgent, Shift: model.ShiftDay, Count: 1, Capability: CapabilityActivityTag},
			},
		},
		{
			ID:   model.ActivityFactoryInspection,
			Name: "Factory inspection",
			Days: "FREQ=WEEKLY;BYDAY=MO,WE,FR",
			Slots: []SlotSpec{
				{Role: model.RoleTeamLead, Shift: model.ShiftDay, Count: 1},
				{Role: model.RoleInspector, Shift: model.ShiftDay, Count: 1},
				{Role: model.RoleDriver, Shift: model.ShiftDay, Count: 1, Capability: CapabilityDriver},
			},
			LeadPool:       LeadPoolFactory,
			LeadCapPerWeek: 1,
		},
		{
			ID:   model.ActivityCourier,
			Name: "Office courier",
			Days: "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR",
			Slots: []SlotSpec{
				{Role: model.RoleCourier, Shift: model.ShiftDay, Count: 1, Capability: CapabilityActivityTag},
			},
		},
		{
			ID:   model.ActivityDriverPool,
			Name: "Office driver pool",
			Days: "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR",
			Slots: []SlotSpec{
				{Role: model.RoleDriver, Shift: model.ShiftDay, Count: 1, Capability: CapabilityDriver},
			},
		},
	}}
}

// Override adjusts a single activity's recurrence, or disables it entirely.
type Override struct {
	Activity model.ActivityID
	Days     string
	Disabled bool
}

// ApplyOverrides returns a copy of the catalog with the given overrides
// applied. Overrides naming an unknown activity are rejected.
func (c Catalog) ApplyOverrides(overrides []Override) (Catalog, error) {
	out := Catalog{Activities: make([]ActivityDef, 0, len(c.Activities))}

	for _, def := range c.Activities {
		override, found := findOverride(overrides, def.ID)
		if found && override.Disabled {
			continue
		}
		if found && override.Days != "" {
			def.Days = override.Days
		}
		out.Activities = append(out.Activities, def)
	}

	for _, o := range overrides {
		if _, known := c.activity(o.Activity); !known {
			return Catalog{}, fmt.Errorf("catalog override references unknown activity %q", o.Activity)
		}
	}

	return out, nil
}

// Validate checks every activity's recurrence parses and every slot spec is
// well formed.
func (c Catalog) Validate() error {
	for _, def := range c.Activities {
		if _, err := rrule.StrToRRule(def.Days); err != nil {
			return fmt.Errorf("invalid recurrence for activity %q: %w", def.ID, err)
		}
		if len(def.Slots) == 0 {
			return fmt.Errorf("activity %q declares no slots", def.ID)
		}
		for _, slot := range def.Slots {
			if !slot.Shift.IsValid() {
				return fmt.Errorf("activity %q slot %q has invalid shift %q", def.ID, slot.Role, slot.Shift)
			}
			if slot.Count < 1 {
				return fmt.Errorf("activity %q slot %q has non-positive count", def.ID, slot.Role)
			}
		}
	}
	return nil
}

// PlanWeek resolves which activities are active on each of the seven days
// starting at weekStart. The engine consults this exactly once per week.
func (c Catalog) PlanWeek(weekStart time.Time) ([7][]ActivityDef, error) {
	var plan [7][]ActivityDef

	weekEnd := weekStart.AddDate(0, 0, 7)

	for _, def := range c.Activities {
		rule, err := rrule.StrToRRule(def.Days)
		if err != nil {
			return plan, fmt.Errorf("invalid recurrence for activity %q: %w", def.ID, err)
		}
		rule.DTStart(weekStart)

		for _, occurrence := range rule.Between(weekStart.Add(-time.Second), weekEnd.Add(-time.Second), true) {
			dayIndex := int(occurrence.Sub(weekStart).Hours() / 24)
			if dayIndex < 0 || dayIndex > 6 {
				continue
			}
			plan[dayIndex] = append(plan[dayIndex], def)
		}
	}

	return plan, nil
}

func (c Catalog) activity(id model.ActivityID) (ActivityDef, bool) {
	for _, def := range c.Activities {
		if def.ID == id {
			return def, true
		}
	}
	return ActivityDef{}, false
}

func findOverride(overrides []Override, id model.ActivityID) (Override, bool) {
	for _, o := range overrides {
		if o.Activity == id {
			return o, true
		}
	}
	return Override{}, false
}

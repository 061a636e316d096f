package model

import (
	"strings"
	"time"
)

// ShiftPeriod identifies the clock range a duty covers.
type ShiftPeriod string

const (
	ShiftDay   ShiftPeriod = "day"   // 08:00-17:00
	ShiftNight ShiftPeriod = "night" // 17:00-08:00, crosses midnight
)

func (s ShiftPeriod) IsValid() bool {
	return s == ShiftDay || s == ShiftNight
}

// ClockRange returns the fixed hours for the shift period
func (s ShiftPeriod) ClockRange() string {
	if s == ShiftDay {
		return "08:00-17:00"
	}
	return "17:00-08:00"
}

// ActivityID identifies a duty category
type ActivityID string

const (
	// ActivityHarborWatch is the CRSS 24-hour surveillance watch
	ActivityHarborWatch ActivityID = "harbor-watch"

	// ActivityPortBrigade is the BVP port brigade
	ActivityPortBrigade ActivityID = "port-brigade"

	// ActivityCoastalPatrol is the at-sea patrol
	ActivityCoastalPatrol ActivityID = "coastal-patrol"

	// ActivityFactoryInspection is the shore factory inspection round
	ActivityFactoryInspection ActivityID = "factory-inspection"

	// ActivityCourier is the office courier run
	ActivityCourier ActivityID = "courier"

	// ActivityDriverPool is the office driver pool standby
	ActivityDriverPool ActivityID = "driver-pool"
)

// Slot roles within an activity
const (
	RoleAgent     = "agent"
	RoleTeamLead  = "team-lead"
	RoleInspector = "inspector"
	RoleDriver    = "driver"
	RoleCourier   = "courier"
)

// Gender categories used by the night-shift exclusion rule
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// RosterStatus is the roster lifecycle state. The transition is one-way:
// active rosters can be archived, archived rosters stay archived.
type RosterStatus string

const (
	RosterActive   RosterStatus = "active"
	RosterArchived RosterStatus = "archived"
)

// Agent is a staff member eligible for duty assignment.
type Agent struct {
	ID        string
	FirstName string
	LastName  string
	Email     string

	// Function is the free-text job title, used as a textual fallback when
	// ranking candidates for specialty slots
	Function string

	Gender Gender

	// Available is false while the agent is on leave or detached mission;
	// unavailable agents never enter the candidate pool
	Available bool

	// Leadership and specialty flags
	IsTeamLead             bool
	IsOfficeChief          bool
	IsAirportCertInspector bool
	IsBVPLead              bool
	IsFactoryLead          bool
	IsDriver               bool
	IsCRSSOperator         bool

	// Embarkation window for embarked observers. While the window covers a
	// day the agent is excluded from every land-based assignment.
	IsEmbarkedObserver bool
	EmbarkStart        *time.Time
	EmbarkEnd          *time.Time

	// Activities the agent qualifies for. Slots gated on an activity tag
	// only accept agents whose set contains that activity.
	Activities map[ActivityID]bool

	// Cumulative workload counters. These only ever increase and are the
	// persistent fairness signal across weeks.
	DayCount   int
	NightCount int

	LastShift    ShiftPeriod
	LastAssigned *time.Time
}

// FullName returns the display name
func (a *Agent) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// EmbarkedOn reports whether the agent's embarkation window covers the day
func (a *Agent) EmbarkedOn(day time.Time) bool {
	if !a.IsEmbarkedObserver || a.EmbarkEnd == nil {
		return false
	}
	if a.EmbarkStart != nil && day.Before(*a.EmbarkStart) {
		return false
	}
	return !day.After(*a.EmbarkEnd)
}

// QualifiedFor reports whether the agent carries the given activity tag
func (a *Agent) QualifiedFor(activity ActivityID) bool {
	return a.Activities[activity]
}

// TotalCount returns the combined day and night workload
func (a *Agent) TotalCount() int {
	return a.DayCount + a.NightCount
}

// Roster is one calendar week's assignment plan.
type Roster struct {
	ID        string
	Week      int // ISO week number
	Year      int
	StartDate time.Time // always a Monday
	EndDate   time.Time // StartDate + 6 days
	Status    RosterStatus
	CreatedAt time.Time
	CreatedBy string
}

// Assignment binds one agent to one duty slot on one day within a roster.
type Assignment struct {
	ID        string
	RosterID  string
	AgentID   string
	Day       time.Time
	Shift     ShiftPeriod
	Activity  ActivityID
	Role      string
	Notes     string
	CreatedAt time.Time
}

// ModificationEntry records a manual override to a generated roster.
// Entries are append-only: never mutated or deleted once written.
type ModificationEntry struct {
	ID        string
	RosterID  string
	UserID    string
	Action    string
	Details   string
	CreatedAt time.Time
}

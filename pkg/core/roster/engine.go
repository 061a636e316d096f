package roster

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mld08/planning-app/pkg/core/model"
)

// DefaultMinAvailableAgents is the smallest pool the engine will plan a
// week for. Below it the whole generation aborts and nothing is persisted.
const DefaultMinAvailableAgents = 6

// Engine plans one week of duty assignments. It is pure: it consumes a
// snapshot of the agent pool, mutates only its own copy of the week state,
// and returns everything the caller needs to persist in one transaction.
type Engine struct {
	catalog   Catalog
	minAgents int
	logger    *zap.Logger
}

// NewEngine creates an engine over the given catalog
func NewEngine(catalog Catalog, minAgents int, logger *zap.Logger) *Engine {
	if minAgents <= 0 {
		minAgents = DefaultMinAvailableAgents
	}
	return &Engine{
		catalog:   catalog,
		minAgents: minAgents,
		logger:    logger,
	}
}

// Result is the outcome of planning one week.
type Result struct {
	Roster      *model.Roster
	Assignments []model.Assignment

	// Gaps lists required slots that had zero eligible candidates. They are
	// reported, not fatal.
	Gaps []Gap

	// UpdatedAgents are the agents whose counters changed; the caller
	// persists them together with the assignments.
	UpdatedAgents []*model.Agent
}

// PlanWeek generates the full seven-day roster starting at weekStart, which
// must be a Monday. Selection is greedy and per-slot: no backtracking. A
// slot with no eligible candidate is recorded as a gap and generation
// continues; an agent pool below the configured minimum aborts the week.
func (e *Engine) PlanWeek(weekStart time.Time, agents []*model.Agent, createdBy string) (*Result, error) {
	weekStart = midnightUTC(weekStart)
	if weekStart.Weekday() != time.Monday {
		return nil, fmt.Errorf("week must start on a Monday, got %s", weekStart.Weekday())
	}

	year, week := weekStart.ISOWeek()
	rosterRecord := &model.Roster{
		ID:        uuid.New().String(),
		Week:      week,
		Year:      year,
		StartDate: weekStart,
		EndDate:   weekStart.AddDate(0, 0, 6),
		Status:    model.RosterActive,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}

	plan, err := e.catalog.PlanWeek(weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to plan week from catalog: %w", err)
	}

	ledger := NewWeekLedger(rosterRecord.ID)
	ledger.SeedHistory(agents)

	result := &Result{Roster: rosterRecord}

	for dayIndex := 0; dayIndex < 7; dayIndex++ {
		day := weekStart.AddDate(0, 0, dayIndex)

		if len(agents) < e.minAgents {
			return nil, &InsufficientStaffError{
				Day:       day,
				Available: len(agents),
				Required:  e.minAgents,
			}
		}

		for _, activity := range plan[dayIndex] {
			e.fillActivity(day, activity, agents, ledger, result)
		}
	}

	result.Assignments = ledger.Assignments()
	result.UpdatedAgents = ledger.TouchedAgents()

	e.logger.Info("Week planned",
		zap.String("roster_id", rosterRecord.ID),
		zap.Int("week", week),
		zap.Int("year", year),
		zap.Int("assignments", len(result.Assignments)),
		zap.Int("gaps", len(result.Gaps)))

	return result, nil
}

// fillActivity fills every slot the activity requires on the given day.
// Per-slot failures become gaps; they never abort the week.
func (e *Engine) fillActivity(day time.Time, activity ActivityDef, agents []*model.Agent, ledger *WeekLedger, result *Result) {
	for _, spec := range activity.Slots {
		slot := Slot{
			Day:      day,
			Shift:    spec.Shift,
			Activity: activity.ID,
			Role:     spec.Role,
			Spec:     spec,
		}

		for n := 0; n < spec.Count; n++ {
			picked := e.pickCandidate(slot, activity, agents, ledger)
			if picked == nil {
				result.Gaps = append(result.Gaps, Gap{
					Day:      day,
					Activity: activity.ID,
					Role:     spec.Role,
					Shift:    spec.Shift,
					Reason:   "no eligible candidate",
				})
				e.logger.Warn("Slot unfillable",
					zap.String("day", day.Format("2006-01-02")),
					zap.String("activity", string(activity.ID)),
					zap.String("role", spec.Role),
					zap.String("shift", string(spec.Shift)))
				continue
			}

			if _, err := ledger.Record(picked, day, spec.Shift, activity.ID, spec.Role, ""); err != nil {
				// The eligibility rules prevent this; treat a ledger refusal
				// as a gap rather than failing the week.
				result.Gaps = append(result.Gaps, Gap{
					Day:      day,
					Activity: activity.ID,
					Role:     spec.Role,
					Shift:    spec.Shift,
					Reason:   err.Error(),
				})
			}
		}
	}
}

// pickCandidate selects the best eligible agent for the slot. Team-lead
// slots with a restricted pool first try pool members under the weekly lead
// cap, then fall back to ordinary selection when the pool is exhausted.
func (e *Engine) pickCandidate(slot Slot, activity ActivityDef, agents []*model.Agent, ledger *WeekLedger) *model.Agent {
	if slot.Role == model.RoleTeamLead && activity.LeadPool != LeadPoolNone {
		if lead := e.pickFromLeadPool(slot, activity, agents, ledger); lead != nil {
			return lead
		}
		// No pool member left this week: fall through to an ordinary agent
		// holding the lead role for the day.
	}

	eligible := make([]*model.Agent, 0, len(agents))
	for _, agent := range agents {
		// Pool members at their weekly lead cap stay excluded even in the
		// fallback path.
		if slot.Role == model.RoleTeamLead && activity.LeadPool != LeadPoolNone &&
			inLeadPool(agent, activity.LeadPool) &&
			ledger.LeadCount(agent.ID, activity.ID) >= activity.LeadCapPerWeek {
			continue
		}
		if ok, _ := IsEligible(agent, slot, ledger); ok {
			eligible = append(eligible, agent)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	return Rank(eligible, slot)[0]
}

func (e *Engine) pickFromLeadPool(slot Slot, activity ActivityDef, agents []*model.Agent, ledger *WeekLedger) *model.Agent {
	eligible := make([]*model.Agent, 0, len(agents))
	for _, agent := range agents {
		if !inLeadPool(agent, activity.LeadPool) {
			continue
		}
		// The weekly cap is a hard rule checked before ranking, not a
		// score penalty.
		if ledger.LeadCount(agent.ID, activity.ID) >= activity.LeadCapPerWeek {
			continue
		}
		if ok, _ := IsEligible(agent, slot, ledger); ok {
			eligible = append(eligible, agent)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	return Rank(eligible, slot)[0]
}

func inLeadPool(agent *model.Agent, pool LeadPool) bool {
	switch pool {
	case LeadPoolBVP:
		return agent.IsBVPLead
	case LeadPoolFactory:
		return agent.IsFactoryLead
	default:
		return false
	}
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

package roster

import (
	"sort"
	"strings"

	"github.com/mld08/planning-app/pkg/core/model"
)

// Rotation score weights. Lower total score wins; ties keep input order.
const (
	// scorePerAssignment spreads load: every past assignment pushes the
	// agent down the ranking
	scorePerAssignment = 100

	// Recency penalties discourage back-to-back duty even where the
	// consecutive-night rule does not apply
	penaltyWithinTwoDays  = 1000
	penaltyWithinFourDays = 500

	// Specialty bonuses pull designated operators toward their slots
	bonusSpecialtyMatch  = -1000
	bonusFunctionalMatch = -500
)

// RotationScore computes the soft-constraint fairness score for one
// candidate and one slot, relative to the slot's day.
func RotationScore(agent *model.Agent, slot Slot) int {
	score := agent.TotalCount() * scorePerAssignment

	if agent.LastAssigned != nil {
		daysSince := int(slot.Day.Sub(*agent.LastAssigned).Hours() / 24)
		if daysSince < 2 {
			score += penaltyWithinTwoDays
		} else if daysSince < 4 {
			score += penaltyWithinFourDays
		}
	}

	if slot.Activity == model.ActivityHarborWatch && agent.IsCRSSOperator {
		score += bonusSpecialtyMatch
	}
	if slot.Role == model.RoleDriver && agent.IsDriver {
		score += bonusSpecialtyMatch
	}
	if (slot.Role == model.RoleDriver || slot.Role == model.RoleCourier) &&
		strings.Contains(strings.ToLower(agent.Function), "driver") {
		score += bonusFunctionalMatch
	}

	return score
}

// Rank orders candidates by ascending rotation score. The sort is stable:
// equal scores keep the callers' input order.
func Rank(candidates []*model.Agent, slot Slot) []*model.Agent {
	ranked := make([]*model.Agent, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return RotationScore(ranked[i], slot) < RotationScore(ranked[j], slot)
	})

	return ranked
}

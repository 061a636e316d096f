package notify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mld08/planning-app/pkg/core/model"
)

var weekdayNames = [7]string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche"}

var activityNames = map[model.ActivityID]string{
	model.ActivityHarborWatch:       "Vigie CRSS",
	model.ActivityPortBrigade:       "Brigade du port (BVP)",
	model.ActivityCoastalPatrol:     "Sortie en mer",
	model.ActivityFactoryInspection: "Inspection des usines",
	model.ActivityCourier:           "Courrier",
	model.ActivityDriverPool:        "Pool conducteurs",
}

var roleNames = map[string]string{
	model.RoleAgent:     "Agent",
	model.RoleTeamLead:  "Chef d'equipe",
	model.RoleInspector: "Inspecteur",
	model.RoleDriver:    "Conducteur",
	model.RoleCourier:   "Agent de liaison",
}

func activityName(id model.ActivityID) string {
	if name, ok := activityNames[id]; ok {
		return name
	}
	return string(id)
}

func roleName(role string) string {
	if name, ok := roleNames[role]; ok {
		return name
	}
	return role
}

// BuildRosterEmail renders the weekly roster as a plain-text email. Each day
// lists its day shift then its night shift, and agents without any
// assignment that week are listed as resting.
func BuildRosterEmail(ros *model.Roster, assignments []model.Assignment, agents []*model.Agent) (subject, body string) {
	subject = fmt.Sprintf("Planning hebdomadaire - Semaine %d (%s au %s)",
		ros.Week, ros.StartDate.Format("02/01/2006"), ros.EndDate.Format("02/01/2006"))

	names := make(map[string]string, len(agents))
	assigned := make(map[string]bool)
	for _, agent := range agents {
		names[agent.ID] = agent.FullName()
	}

	byDay := make([][]model.Assignment, 7)
	for _, a := range assignments {
		idx := int(a.Day.Sub(ros.StartDate).Hours() / 24)
		if idx < 0 || idx > 6 {
			continue
		}
		byDay[idx] = append(byDay[idx], a)
		assigned[a.AgentID] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Planning de service - Semaine %d\n", ros.Week)
	fmt.Fprintf(&b, "Du %s au %s\n", ros.StartDate.Format("02/01/2006"), ros.EndDate.Format("02/01/2006"))

	for i, day := range byDay {
		date := ros.StartDate.AddDate(0, 0, i)
		fmt.Fprintf(&b, "\n%s %s\n", weekdayNames[i], date.Format("02/01/2006"))

		if len(day) == 0 {
			b.WriteString("  Aucune affectation\n")
			continue
		}

		sort.SliceStable(day, func(a, c int) bool {
			if day[a].Shift != day[c].Shift {
				return day[a].Shift == model.ShiftDay
			}
			return day[a].Activity < day[c].Activity
		})

		var currentShift model.ShiftPeriod
		for _, a := range day {
			if a.Shift != currentShift {
				currentShift = a.Shift
				label := "Jour"
				if a.Shift == model.ShiftNight {
					label = "Nuit"
				}
				fmt.Fprintf(&b, "  %s (%s)\n", label, a.Shift.ClockRange())
			}
			name := names[a.AgentID]
			if name == "" {
				name = a.AgentID
			}
			fmt.Fprintf(&b, "    - %s : %s, %s\n", name, activityName(a.Activity), roleName(a.Role))
		}
	}

	var resting []string
	for _, agent := range agents {
		if agent.Available && !assigned[agent.ID] {
			resting = append(resting, agent.FullName())
		}
	}
	if len(resting) > 0 {
		sort.Strings(resting)
		b.WriteString("\nAu repos cette semaine :\n")
		for _, name := range resting {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
	}

	b.WriteString(signature)

	return subject, b.String()
}

const signature = "\n--\nService de la Surveillance des Peches\nPlanning genere automatiquement\n"

// BuildAgentEmail renders one agent's personal schedule for the week: their
// assignments day by day, with days off listed as rest days.
func BuildAgentEmail(agent *model.Agent, ros *model.Roster, assignments []model.Assignment) (subject, body string) {
	subject = fmt.Sprintf("Votre service - Semaine %d (%s au %s)",
		ros.Week, ros.StartDate.Format("02/01/2006"), ros.EndDate.Format("02/01/2006"))

	byDay := make([][]model.Assignment, 7)
	for _, a := range assignments {
		if a.AgentID != agent.ID {
			continue
		}
		idx := int(a.Day.Sub(ros.StartDate).Hours() / 24)
		if idx < 0 || idx > 6 {
			continue
		}
		byDay[idx] = append(byDay[idx], a)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Bonjour %s,\n\nVotre service pour la semaine %d :\n", agent.FullName(), ros.Week)

	for i, day := range byDay {
		date := ros.StartDate.AddDate(0, 0, i)
		if len(day) == 0 {
			fmt.Fprintf(&b, "\n%s %s : repos\n", weekdayNames[i], date.Format("02/01/2006"))
			continue
		}
		fmt.Fprintf(&b, "\n%s %s :\n", weekdayNames[i], date.Format("02/01/2006"))
		sort.SliceStable(day, func(a, c int) bool {
			return day[a].Shift == model.ShiftDay && day[c].Shift == model.ShiftNight
		})
		for _, a := range day {
			fmt.Fprintf(&b, "  %s : %s, %s\n", a.Shift.ClockRange(), activityName(a.Activity), roleName(a.Role))
		}
	}

	b.WriteString(signature)

	return subject, b.String()
}

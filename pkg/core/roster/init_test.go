package roster

import (
	"fmt"
	"time"

	"github.com/mld08/planning-app/pkg/core/model"
)

// monday is a fixed Monday used as the week start across the package tests
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

// makeAgent builds a plain male general-duty agent
func makeAgent(id string) *model.Agent {
	return &model.Agent{
		ID:        id,
		FirstName: "Agent",
		LastName:  id,
		Gender:    model.GenderMale,
		Available: true,
	}
}

// makeAgents builds n plain agents with IDs a1..aN
func makeAgents(n int) []*model.Agent {
	agents := make([]*model.Agent, n)
	for i := range agents {
		agents[i] = makeAgent(fmt.Sprintf("a%d", i+1))
	}
	return agents
}

// daySlot builds a generic day-shift slot for the given activity
func daySlot(activity model.ActivityID, role string, day time.Time) Slot {
	return Slot{
		Day:      day,
		Shift:    model.ShiftDay,
		Activity: activity,
		Role:     role,
		Spec:     SlotSpec{Role: role, Shift: model.ShiftDay, Count: 1},
	}
}

// nightSlot builds a generic night-shift slot for the given activity
func nightSlot(activity model.ActivityID, role string, day time.Time) Slot {
	return Slot{
		Day:      day,
		Shift:    model.ShiftNight,
		Activity: activity,
		Role:     role,
		Spec:     SlotSpec{Role: role, Shift: model.ShiftNight, Count: 1},
	}
}

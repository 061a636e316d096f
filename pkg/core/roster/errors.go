package roster

import (
	"fmt"
	"time"

	"github.com/mld08/planning-app/pkg/core/model"
)

// InsufficientStaffError aborts a whole week generation: the available pool
// is below the configured minimum. Nothing is persisted when it is raised.
type InsufficientStaffError struct {
	Day       time.Time
	Available int
	Required  int
}

func (e *InsufficientStaffError) Error() string {
	return fmt.Sprintf("insufficient staff on %s: %d available, %d required",
		e.Day.Format("2006-01-02"), e.Available, e.Required)
}

// Gap records a slot that had zero eligible candidates after filtering.
// Gaps are collected per roster and do not abort generation.
type Gap struct {
	Day      time.Time
	Activity model.ActivityID
	Role     string
	Shift    model.ShiftPeriod
	Reason   string
}

func (g Gap) String() string {
	return fmt.Sprintf("%s %s/%s %s shift: %s",
		g.Day.Format("2006-01-02"), g.Activity, g.Role, g.Shift, g.Reason)
}

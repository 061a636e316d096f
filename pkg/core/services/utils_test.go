package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextMonday_MidWeek(t *testing.T) {
	// Wednesday 2026-03-04
	wednesday := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

	next := NextMonday(wednesday)

	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), next)
	assert.Equal(t, time.Monday, next.Weekday())
}

func TestNextMonday_OnMondayAdvancesFullWeek(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	next := NextMonday(monday)

	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), next)
}

func TestNextMonday_OnSunday(t *testing.T) {
	// Sunday 2026-03-08 at 20:00, the scheduled trigger time
	sunday := time.Date(2026, 3, 8, 20, 0, 0, 0, time.UTC)

	next := NextMonday(sunday)

	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), next)
}

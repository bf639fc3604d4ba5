package adapters

import (
	"time"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// SystemClock returns the wall clock time in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Calendar derives today's date from a clock in a fixed timezone.
type Calendar struct {
	clock    adapter.Clock
	location *time.Location
}

// NewCalendar creates a Calendar. A nil location means UTC.
func NewCalendar(clock adapter.Clock, location *time.Location) *Calendar {
	if location == nil {
		location = time.UTC
	}
	return &Calendar{clock: clock, location: location}
}

// Today returns the current date in the calendar's timezone as midnight UTC.
func (c *Calendar) Today() time.Time {
	return entity.DateOf(c.clock.Now(), c.location)
}

package adapter

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// Calendar provides the current calendar date in the application timezone,
// as midnight UTC.
type Calendar interface {
	Today() time.Time
}

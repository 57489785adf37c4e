package extract

import "time"

// Clock supplies the reference date for all date arithmetic. Injecting it
// keeps gather passes deterministic under test; production code uses
// SystemClock.
type Clock interface {
	Today() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Today returns the current local time. DateProperty zeroes the time of
// day, so callers need not truncate.
func (SystemClock) Today() time.Time {
	return time.Now()
}

// FixedClock always reports the same date. Test helper.
type FixedClock struct {
	Date time.Time
}

// Today returns the pinned date.
func (c FixedClock) Today() time.Time {
	return c.Date
}

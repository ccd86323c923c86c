package clock

import "time"

// The campus runs on Eastern Time, but the offset is pinned to UTC-4
// year-round: a 5am winter trigger is a better default than a 7am summer one.
var zone = time.FixedZone("UTC-4", -4*60*60)

// The daily notification pass fires at 06:05.
const (
	runHour   = 6
	runMinute = 5
)

// Clock computes wall-clock time and the duration until the next scheduled
// daily run. The now function is injectable for tests.
type Clock struct {
	now func() time.Time
}

// New creates a clock backed by the system time
func New() *Clock {
	return &Clock{now: time.Now}
}

// NewWithNow creates a clock with a custom time source
func NewWithNow(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current time in the bot's fixed UTC-4 zone
func (c *Clock) Now() time.Time {
	return c.now().In(zone)
}

// Weekday returns the day of week of t in the bot's zone
func Weekday(t time.Time) time.Weekday {
	return t.In(zone).Weekday()
}

// Date returns t's calendar date in the bot's zone, rendered as YYYY-MM-DD.
// Used as the menu cache's freshness key.
func Date(t time.Time) string {
	return t.In(zone).Format("2006-01-02")
}

// UntilNextRun returns the duration from now until the next 06:05 trigger.
// If now is strictly before 06:05 the trigger is today; at or after 06:05 it
// is tomorrow. The result is therefore always strictly positive.
func (c *Clock) UntilNextRun(now time.Time) time.Duration {
	now = now.In(zone)
	target := time.Date(now.Year(), now.Month(), now.Day(), runHour, runMinute, 0, 0, zone)
	if !now.Before(target) {
		target = target.AddDate(0, 0, 1)
	}
	return target.Sub(now)
}

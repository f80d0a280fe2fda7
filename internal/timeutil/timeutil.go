package timeutil

import (
	"math"
	"time"
	_ "time/tzdata"
)

// Location is the business time zone used to interpret calendar dates.
// Defaults to Indian Standard Time (UTC+5:30).
var Location *time.Location

func init() {
	Location = loadOrFixed("Asia/Kolkata", "IST", 5*60*60+30*60)
}

func loadOrFixed(name, abbrev string, offset int) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// Fallback: create fixed zone if the tz database is not available
		return time.FixedZone(abbrev, offset)
	}
	return loc
}

// SetLocation switches the business time zone. An unknown name keeps the
// current location and returns the lookup error.
func SetLocation(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	Location = loc
	return nil
}

// Now returns the current time in the business time zone
func Now() time.Time {
	return time.Now().In(Location)
}

// Clock supplies "now" to code that must stay deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the business time zone.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// ParseDate parses a YYYY-MM-DD calendar date as midnight in the business time zone
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, Location)
}

// StartOfDay returns the start of day (00:00:00) in the business time zone for the given time
func StartOfDay(t time.Time) time.Time {
	local := t.In(Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Location)
}

// CeilDays returns the number of days between from and to, counting any
// positive fraction of a day as a whole day. Negative spans round toward zero.
// Both sides are read as wall-clock times in the business time zone, so two
// calendar dates differ by whole days even across a daylight-saving change.
func CeilDays(from, to time.Time) int {
	f := from.In(Location)
	t := to.In(Location)

	span := calendarDate(t).Sub(calendarDate(f)) + sinceMidnight(t) - sinceMidnight(f)
	return int(math.Ceil(span.Hours() / 24))
}

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006"
)

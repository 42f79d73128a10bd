package timeutil

import (
	"time"
)

// Gaza is the local time zone for all timestamps shown to admins (UTC+2,
// UTC+3 in summer).
var Gaza *time.Location

func init() {
	var err error
	Gaza, err = time.LoadLocation("Asia/Gaza")
	if err != nil {
		// Fallback: fixed zone if the tz database entry is unavailable
		Gaza = time.FixedZone("EET", 2*60*60)
	}
}

// Now returns the current time in Gaza local time
func Now() time.Time {
	return time.Now().In(Gaza)
}

// ToLocal converts any time to Gaza local time
func ToLocal(t time.Time) time.Time {
	return t.In(Gaza)
}

// StartOfDay returns the start of day (00:00:00) in Gaza local time
func StartOfDay(t time.Time) time.Time {
	lt := t.In(Gaza)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, Gaza)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

package utils

import "time"

// jakartaLocation is the display timezone for all user-facing timestamps.
// time.LoadLocation depends on the host tzdata, so fall back to a fixed
// UTC+7 zone when Asia/Jakarta is unavailable.
var jakartaLocation = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}()

// FormatDateWIB renders a date in western Indonesian time, e.g. "28/08/2026".
func FormatDateWIB(t time.Time) string {
	return t.In(jakartaLocation).Format("02/01/2006")
}

// FormatDateTimeWIB renders a timestamp in western Indonesian time,
// e.g. "28/08/2026 14:05 WIB".
func FormatDateTimeWIB(t time.Time) string {
	return t.In(jakartaLocation).Format("02/01/2006 15:04") + " WIB"
}

// StartOfDayWIB returns midnight of t's calendar day in western Indonesian
// time. Daily statistics bucket payments by this boundary.
func StartOfDayWIB(t time.Time) time.Time {
	local := t.In(jakartaLocation)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, jakartaLocation)
}

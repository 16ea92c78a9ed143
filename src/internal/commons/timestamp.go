package commons

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the wire timestamp format: ISO-8601 local time at
// second resolution, no zone offset.
const TimestampLayout = "2006-01-02T15:04:05"

func ParseTimestamp(value string) (time.Time, error) {
	ts, err := time.Parse(TimestampLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, expected YYYY-MM-DDTHH:MM:SS", value)
	}
	return ts, nil
}

func FormatTimestamp(ts time.Time) string {
	return ts.Format(TimestampLayout)
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Package present turns backend records into the labels and badges shown by the console.
package present

import (
	"fmt"
	"time"
)

// RelativeTime renders how long ago then was, relative to now.
func RelativeTime(then, now time.Time) string {
	secs := int64(now.Sub(then) / time.Second)
	switch {
	case secs < 60:
		return "just now"
	case secs < 3600:
		return plural(secs/60, "minute")
	case secs < 86400:
		return plural(secs/3600, "hour")
	}
	return plural(secs/86400, "day")
}

// RelativeTimestamp parses a backend timestamp and renders it with RelativeTime.
// Unparseable values are returned as-is.
func RelativeTimestamp(ts string, now time.Time) string {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return ts
	}
	return RelativeTime(t, now)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp accepts RFC 3339 and the zone-less ISO forms the backend emits.
// Zone-less values are read as UTC.
func ParseTimestamp(ts string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var clockPattern = regexp.MustCompile(`(?i)(\d+):(\d+)\s*(AM|PM)?`)

// MinutesSinceMidnight parses "H:MM" or "H:MM AM/PM". Unparseable input is 0.
func MinutesSinceMidnight(s string) int {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	switch strings.ToUpper(m[3]) {
	case "PM":
		if hours < 12 {
			hours += 12
		}
	case "AM":
		if hours == 12 {
			hours = 0
		}
	}
	return hours*60 + minutes
}

// IsOpen reports whether now falls within [opens, closes] on the wall clock.
// Ranges crossing midnight are not supported: closes < opens is always closed.
func IsOpen(opens, closes string, now time.Time) bool {
	current := now.Hour()*60 + now.Minute()
	return MinutesSinceMidnight(opens) <= current && current <= MinutesSinceMidnight(closes)
}

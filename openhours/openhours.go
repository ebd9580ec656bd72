// Package openhours answers "is this location open right now" from the
// weekly hours blob stored on a location.
package openhours

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// IsOpen reports whether a location is open at now, given its hours JSON:
// an object mapping lowercase weekday names to "HH:MM-HH:MM" or "closed".
// A missing weekday, the literal "closed", or anything unparseable all mean
// closed — bad data is never an error here, it just reads as closed.
// Overnight ranges (end before start) are not treated as open.
func IsOpen(hoursJSON string, now time.Time) bool {
	if strings.TrimSpace(hoursJSON) == "" {
		return false
	}
	var hours map[string]string
	if err := json.Unmarshal([]byte(hoursJSON), &hours); err != nil {
		return false
	}
	entry, ok := hours[strings.ToLower(now.Weekday().String())]
	if !ok {
		return false
	}
	entry = strings.TrimSpace(entry)
	if entry == "" || strings.EqualFold(entry, "closed") {
		return false
	}
	start, end, ok := parseRange(entry)
	if !ok {
		return false
	}
	cur := now.Hour()*60 + now.Minute()
	return cur >= start && cur <= end
}

// parseRange parses "HH:MM-HH:MM" into minutes since midnight.
func parseRange(s string) (start, end int, ok bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	start, ok = parseHHMM(strings.TrimSpace(parts[0]))
	if !ok {
		return 0, 0, false
	}
	end, ok = parseHHMM(strings.TrimSpace(parts[1]))
	if !ok {
		return 0, 0, false
	}
	return start, end, true
}

func parseHHMM(s string) (int, bool) {
	hm := strings.SplitN(s, ":", 2)
	if len(hm) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(hm[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(hm[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

package calendar

import "github.com/metrokids/kidsapp/models"

// VisibleLimit is how many events a day cell shows before collapsing into a
// "+N more" indicator. Presentation only; Bucket always returns the full set.
const VisibleLimit = 4

// Bucket returns the events whose date (date-only) equals day, preserving
// the input order.
func Bucket(events []models.Event, day string) []models.Event {
	var out []models.Event
	for _, ev := range events {
		if ev.Date == day {
			out = append(out, ev)
		}
	}
	return out
}

// More returns the "+N more" count for a day's bucket under VisibleLimit.
func More(bucket []models.Event) int {
	if n := len(bucket) - VisibleLimit; n > 0 {
		return n
	}
	return 0
}

// Package recurrence expands the admin event form's recurrence pattern into
// the concrete list of dates to persist as individual event rows.
package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

const dateLayout = "2006-01-02"

// maxOccurrences is a safety cap so a far-future until date cannot create an
// unbounded number of rows.
const maxOccurrences = 366

// Patterns accepted by the admin event form.
const (
	None     = "none"
	Daily    = "daily"
	Weekdays = "weekdays" // Monday through Friday
	Weekly   = "weekly"
	Biweekly = "biweekly"
	Monthly  = "monthly"
)

var ErrNoEndCondition = errors.New("recurrence: until date or count required")

// Expand returns the occurrence dates (YYYY-MM-DD, ascending) for pattern
// anchored at anchor. Exactly one of until (inclusive end date) or count
// (total occurrences) must be set for any pattern other than None. The
// result is truncated at maxOccurrences.
func Expand(anchor, pattern, until string, count int) ([]string, error) {
	start, err := time.Parse(dateLayout, anchor)
	if err != nil {
		return nil, fmt.Errorf("recurrence: invalid anchor date %q: %w", anchor, err)
	}
	if pattern == "" || pattern == None {
		return []string{anchor}, nil
	}

	opt := rrule.ROption{Dtstart: start}
	switch pattern {
	case Daily:
		opt.Freq = rrule.DAILY
	case Weekdays:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR}
	case Weekly:
		opt.Freq = rrule.WEEKLY
	case Biweekly:
		opt.Freq = rrule.WEEKLY
		opt.Interval = 2
	case Monthly:
		opt.Freq = rrule.MONTHLY
	default:
		return nil, fmt.Errorf("recurrence: unknown pattern %q", pattern)
	}

	switch {
	case count > 0:
		if count > maxOccurrences {
			count = maxOccurrences
		}
		opt.Count = count
	case until != "":
		u, err := time.Parse(dateLayout, until)
		if err != nil {
			return nil, fmt.Errorf("recurrence: invalid until date %q: %w", until, err)
		}
		if u.Before(start) {
			return nil, fmt.Errorf("recurrence: until %s is before anchor %s", until, anchor)
		}
		// End of the until day so the date itself is included.
		opt.Until = u.Add(24*time.Hour - time.Second)
	default:
		return nil, ErrNoEndCondition
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("recurrence: %w", err)
	}
	times := r.All()
	if len(times) > maxOccurrences {
		times = times[:maxOccurrences]
	}
	out := make([]string, 0, len(times))
	for _, t := range times {
		out = append(out, t.Format(dateLayout))
	}
	return out, nil
}

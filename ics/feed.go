// Package ics renders event query results as an iCalendar feed so users can
// subscribe from their own calendar apps.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/metrokids/kidsapp/models"
)

const dateLayout = "2006-01-02"

// Feed serializes events as a VCALENDAR. Cancelled events are skipped.
// Events without a start time are emitted as all-day; timed events are
// placed in loc (the region timezone) and default to one hour when no end
// time is set.
func Feed(events []models.Event, loc *time.Location) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//MetroKids//Kids App//EN")

	for _, ev := range events {
		if ev.Cancelled {
			continue
		}
		day, err := time.ParseInLocation(dateLayout, ev.Date, loc)
		if err != nil {
			continue
		}
		ve := cal.AddEvent(fmt.Sprintf("event-%d@kidsapp", ev.ID))
		ve.SetDtStampTime(ev.UpdatedAt)
		ve.SetSummary(ev.DisplayTitle())

		if start, ok := atTime(day, ev.StartTime); ok {
			ve.SetStartAt(start)
			if end, ok := atTime(day, ev.EndTime); ok && end.After(start) {
				ve.SetEndAt(end)
			} else {
				ve.SetEndAt(start.Add(time.Hour))
			}
		} else {
			ve.SetAllDayStartAt(day)
			ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
		}

		if desc := description(ev); desc != "" {
			ve.SetDescription(desc)
		}
		if ev.Activity != nil && ev.Activity.Location != nil {
			l := ev.Activity.Location
			if l.Address != "" {
				ve.SetLocation(fmt.Sprintf("%s, %s", l.Name, l.Address))
			} else {
				ve.SetLocation(l.Name)
			}
		}
	}
	return cal.Serialize()
}

func atTime(day time.Time, hhmm string) (time.Time, bool) {
	if hhmm == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), true
}

func description(ev models.Event) string {
	if ev.Description != "" {
		return ev.Description
	}
	if ev.Activity != nil {
		return ev.Activity.Description
	}
	return ""
}

package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/metrokids/kidsapp/models"
)

func TestFeed(t *testing.T) {
	act := &models.Activity{
		Name:        "Toddler Swim",
		Description: "Parent and child swim class.",
		Location:    &models.Location{Name: "Community Pool", Address: "12 Lake St"},
	}
	events := []models.Event{
		{ID: 7, Activity: act, Date: "2026-03-02", StartTime: "10:00", EndTime: "11:30"},
		{ID: 8, Activity: act, Date: "2026-03-03", Title: "Swim Meet"},
		{ID: 9, Activity: act, Date: "2026-03-04", Cancelled: true},
	}
	out := Feed(events, time.UTC)

	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "END:VCALENDAR") {
		t.Fatal("missing calendar envelope")
	}
	if !strings.Contains(out, "UID:event-7@kidsapp") {
		t.Error("missing uid for event 7")
	}
	if !strings.Contains(out, "SUMMARY:Toddler Swim") {
		t.Error("event without title override should use activity name")
	}
	if !strings.Contains(out, "SUMMARY:Swim Meet") {
		t.Error("title override not used")
	}
	if strings.Contains(out, "event-9@kidsapp") {
		t.Error("cancelled event included in feed")
	}
	if !strings.Contains(out, "LOCATION:Community Pool\\, 12 Lake St") &&
		!strings.Contains(out, "LOCATION:Community Pool, 12 Lake St") {
		t.Error("location missing")
	}
	// Event 8 has no start time: all-day, date-only DTSTART.
	if !strings.Contains(out, "VALUE=DATE:20260303") {
		t.Error("all-day event should have a date-only DTSTART")
	}
}

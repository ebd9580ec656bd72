package openhours

import (
	"testing"
	"time"
)

// 2026-03-02 is a Monday, 2026-03-03 a Tuesday.
func at(day int, hh, mm int) time.Time {
	return time.Date(2026, time.March, day, hh, mm, 0, 0, time.UTC)
}

func TestIsOpen(t *testing.T) {
	monOnly := `{"monday":"09:00-17:00"}`

	cases := []struct {
		name  string
		hours string
		now   time.Time
		want  bool
	}{
		{"within hours", monOnly, at(2, 10, 30), true},
		{"after close", monOnly, at(2, 18, 0), false},
		{"weekday missing", monOnly, at(3, 10, 30), false},
		{"at open boundary", monOnly, at(2, 9, 0), true},
		{"at close boundary", monOnly, at(2, 17, 0), true},
		{"explicit closed", `{"monday":"closed"}`, at(2, 10, 0), false},
		{"closed case-insensitive", `{"monday":"Closed"}`, at(2, 10, 0), false},
		{"empty blob", "", at(2, 10, 0), false},
		{"invalid json", `{monday 9-5}`, at(2, 10, 0), false},
		{"malformed range", `{"monday":"9am to 5pm"}`, at(2, 10, 0), false},
		{"missing minutes", `{"monday":"09-17"}`, at(2, 10, 0), false},
		{"hour out of range", `{"monday":"25:00-27:00"}`, at(2, 10, 0), false},
		{"overnight not open", `{"monday":"22:00-02:00"}`, at(2, 23, 0), false},
		{"second weekday entry", `{"monday":"closed","tuesday":"08:30-12:00"}`, at(3, 8, 30), true},
	}
	for _, tc := range cases {
		if got := IsOpen(tc.hours, tc.now); got != tc.want {
			t.Errorf("%s: IsOpen = %v, want %v", tc.name, got, tc.want)
		}
	}
}

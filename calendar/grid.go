package calendar

import "time"

const dateLayout = "2006-01-02"

// Day is one cell of the month grid.
type Day struct {
	Date           string `json:"date"` // YYYY-MM-DD
	IsToday        bool   `json:"is_today"`
	IsCurrentMonth bool   `json:"is_current_month"`
}

// Grid is the rectangular array of days displayed for one month: complete
// weeks from the Sunday on or before the 1st through the Saturday on or
// after the last day. Length is always 28, 35 or 42.
type Grid struct {
	Month     string `json:"month"` // YYYY-MM
	GridStart string `json:"grid_start"`
	GridEnd   string `json:"grid_end"`
	Days      []Day  `json:"days"`
}

// BuildGrid computes the grid for the month containing ref. today marks the
// IsToday cell (pass the current date in the region's timezone). Pure date
// arithmetic; month/year boundaries and leap years come from time package
// normalization.
func BuildGrid(ref, today time.Time) Grid {
	firstOfMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	gridStart := firstOfMonth.AddDate(0, 0, -int(firstOfMonth.Weekday()))
	gridEnd := lastOfMonth.AddDate(0, 0, 6-int(lastOfMonth.Weekday()))

	todayStr := today.Format(dateLayout)
	g := Grid{
		Month:     firstOfMonth.Format("2006-01"),
		GridStart: gridStart.Format(dateLayout),
		GridEnd:   gridEnd.Format(dateLayout),
	}
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		ds := d.Format(dateLayout)
		g.Days = append(g.Days, Day{
			Date:           ds,
			IsToday:        ds == todayStr,
			IsCurrentMonth: d.Month() == firstOfMonth.Month(),
		})
	}
	return g
}

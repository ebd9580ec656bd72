package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/metrokids/kidsapp/calendar"
	"github.com/metrokids/kidsapp/clock"
	"github.com/metrokids/kidsapp/models"
)

type CalendarHandler struct {
	clk clock.Clock
	tz  *time.Location
}

func NewCalendarHandler(clk clock.Clock, tz *time.Location) *CalendarHandler {
	return &CalendarHandler{clk: clk, tz: tz}
}

// calendarDay is one grid cell with its bucketed events. Events is the full
// set for the day; More is the "+N more" count past the 4 shown in a cell.
type calendarDay struct {
	calendar.Day
	Events []models.Event `json:"events"`
	More   int            `json:"more"`
}

type calendarResponse struct {
	Month     string        `json:"month"`
	GridStart string        `json:"grid_start"`
	GridEnd   string        `json:"grid_end"`
	Start     string        `json:"start"` // applied event-range start
	End       string        `json:"end"`
	Category  string        `json:"category,omitempty"`
	Location  string        `json:"location,omitempty"`
	Days      []calendarDay `json:"days"`
}

// Month backs GET /calendar. The reference date comes from ?date=YYYY-MM-DD
// (month navigation / "go to today" on the client) or ?month=YYYY-MM, and
// defaults to today in the region timezone. Events are fetched for the
// explicit ?start/?end when both are given, otherwise for the grid range.
// Omitting category/location/start/end is the cleared-filters state.
func (h *CalendarHandler) Month(c echo.Context) error {
	today := h.clk.Now().In(h.tz)
	ref := today
	if d := c.QueryParam("date"); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_DATE"})
		}
		ref = t
	} else if m := c.QueryParam("month"); m != "" {
		t, err := time.Parse("2006-01", m)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_MONTH"})
		}
		ref = t
	}

	grid := calendar.BuildGrid(ref, today)

	start, end := grid.GridStart, grid.GridEnd
	if s, e := c.QueryParam("start"), c.QueryParam("end"); s != "" && e != "" {
		if !isDateYYYYMMDD(s) || !isDateYYYYMMDD(e) || e < s {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_RANGE"})
		}
		start, end = s, e
	}
	category := strings.TrimSpace(c.QueryParam("category"))
	location := strings.TrimSpace(c.QueryParam("location"))

	events, err := fetchEvents(start, end, category, location)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	days := make([]calendarDay, 0, len(grid.Days))
	for _, d := range grid.Days {
		bucket := calendar.Bucket(events, d.Date)
		if bucket == nil {
			bucket = []models.Event{}
		}
		days = append(days, calendarDay{
			Day:    d,
			Events: bucket,
			More:   calendar.More(bucket),
		})
	}

	return c.JSON(http.StatusOK, calendarResponse{
		Month:     grid.Month,
		GridStart: grid.GridStart,
		GridEnd:   grid.GridEnd,
		Start:     start,
		End:       end,
		Category:  category,
		Location:  location,
		Days:      days,
	})
}

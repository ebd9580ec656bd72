package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/metrokids/kidsapp/database"
	"github.com/metrokids/kidsapp/ics"
	"github.com/metrokids/kidsapp/models"
	"github.com/metrokids/kidsapp/recurrence"
)

type EventHandler struct {
	tz *time.Location
}

func NewEventHandler(tz *time.Location) *EventHandler { return &EventHandler{tz: tz} }

// fetchEvents runs the shared event query: inclusive date range, optional
// category/location slug constraints, ordered date ASC then id ASC (insertion
// order as the tiebreak).
func fetchEvents(start, end, category, location string) ([]models.Event, error) {
	tx := database.DB.Model(&models.Event{}).
		Preload("Activity").Preload("Activity.Location").Preload("Activity.Categories").
		Joins("JOIN activities ON activities.id = events.activity_id").
		Where("events.date >= ? AND events.date <= ?", start, end)
	if location != "" {
		tx = tx.Joins("JOIN locations ON locations.id = activities.location_id").
			Where("locations.slug = ?", location)
	}
	if category != "" {
		tx = tx.Joins("JOIN activity_categories ac ON ac.activity_id = activities.id").
			Joins("JOIN categories cat ON cat.id = ac.category_id").
			Where("cat.slug = ?", category)
	}
	items := []models.Event{}
	err := tx.Order("events.date ASC, events.id ASC").Find(&items).Error
	return items, err
}

// Query backs GET /events: start/end are required YYYY-MM-DD dates;
// category/location slugs are optional.
func (h *EventHandler) Query(c echo.Context) error {
	start := c.QueryParam("start")
	end := c.QueryParam("end")
	if !isDateYYYYMMDD(start) || !isDateYYYYMMDD(end) || end < start {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_RANGE"})
	}
	items, err := fetchEvents(start, end, strings.TrimSpace(c.QueryParam("category")), strings.TrimSpace(c.QueryParam("location")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// Feed backs GET /events.ics: the same query surfaced as an iCalendar feed.
func (h *EventHandler) Feed(c echo.Context) error {
	start := c.QueryParam("start")
	end := c.QueryParam("end")
	if !isDateYYYYMMDD(start) || !isDateYYYYMMDD(end) || end < start {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_RANGE"})
	}
	items, err := fetchEvents(start, end, strings.TrimSpace(c.QueryParam("category")), strings.TrimSpace(c.QueryParam("location")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics.Feed(items, h.tz)))
}

func (h *EventHandler) Get(c echo.Context) error {
	var it models.Event
	err := database.DB.
		Preload("Activity").Preload("Activity.Location").Preload("Activity.Categories").
		First(&it, "id = ?", c.Param("id")).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, it)
}

// ===== Admin =====

type eventPayload struct {
	ActivityID  uint   `json:"activity_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Cancelled   *bool  `json:"cancelled"`
	Notes       string `json:"notes"`

	// Recurrence only applies on create; one row is persisted per occurrence.
	Recurrence      string `json:"recurrence"`
	RecurrenceUntil string `json:"recurrence_until"`
	RecurrenceCount int    `json:"recurrence_count"`
}

func (p *eventPayload) normalize() {
	p.Date = strings.TrimSpace(p.Date)
	p.StartTime = strings.TrimSpace(p.StartTime)
	p.EndTime = strings.TrimSpace(p.EndTime)
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.Notes = strings.TrimSpace(p.Notes)
	p.Recurrence = strings.TrimSpace(p.Recurrence)
	p.RecurrenceUntil = strings.TrimSpace(p.RecurrenceUntil)
}

func (p *eventPayload) validate() map[string]string {
	errs := map[string]string{}
	if p.ActivityID == 0 {
		errs["activity_id"] = "activity is required"
	}
	if !isDateYYYYMMDD(p.Date) {
		errs["date"] = "must be YYYY-MM-DD"
	}
	if p.StartTime != "" && !reHHMM.MatchString(p.StartTime) {
		errs["start_time"] = "must be HH:MM"
	}
	if p.EndTime != "" && (!reHHMM.MatchString(p.EndTime) || (p.StartTime != "" && p.EndTime <= p.StartTime)) {
		errs["end_time"] = "must be HH:MM after start_time"
	}
	if p.RecurrenceUntil != "" && !isDateYYYYMMDD(p.RecurrenceUntil) {
		errs["recurrence_until"] = "must be YYYY-MM-DD"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (h *EventHandler) List(c echo.Context) error {
	q, page, size := listParams(c)
	activityID := atoiOr(c.QueryParam("activity_id"), 0)

	tx := database.DB.Model(&models.Event{}).Preload("Activity")
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(notes) LIKE ?", like, like)
	}
	if activityID > 0 {
		tx = tx.Where("activity_id = ?", activityID)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Event
	if err := tx.Order("date DESC, id DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":  items,
		"page":  page,
		"size":  size,
		"total": total,
	})
}

// Create persists one event, or the whole expanded series when a recurrence
// pattern is given. Rows from one expansion share a series_id.
func (h *EventHandler) Create(c echo.Context) error {
	var p eventPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := p.validate(); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	var act models.Activity
	if err := database.DB.First(&act, "id = ?", p.ActivityID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusBadRequest, map[string]any{
				"error": "VALIDATION_ERROR", "fields": map[string]string{"activity_id": "unknown activity"},
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	dates, err := recurrence.Expand(p.Date, p.Recurrence, p.RecurrenceUntil, p.RecurrenceCount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"recurrence": err.Error()},
		})
	}
	seriesID := ""
	if len(dates) > 1 {
		seriesID = uuid.New().String()
	}
	cancelled := p.Cancelled != nil && *p.Cancelled
	rows := make([]models.Event, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, models.Event{
			ActivityID: p.ActivityID, Date: d,
			StartTime: p.StartTime, EndTime: p.EndTime,
			Title: p.Title, Description: p.Description,
			Cancelled: cancelled, Notes: p.Notes, SeriesID: seriesID,
		})
	}
	if err := database.DB.Create(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"created":   len(rows),
		"ids":       ids,
		"series_id": seriesID,
	})
}

// Update edits a single event row; recurrence fields are ignored here.
// Empty strings leave a field unchanged; cancelled is applied only when sent.
func (h *EventHandler) Update(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var it models.Event
	if err := database.DB.First(&it, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p eventPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()

	if p.Date != "" {
		if !isDateYYYYMMDD(p.Date) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "date invalid"})
		}
		it.Date = p.Date
	}
	if p.StartTime != "" {
		if !reHHMM.MatchString(p.StartTime) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "start_time invalid"})
		}
		it.StartTime = p.StartTime
	}
	if p.EndTime != "" {
		if !reHHMM.MatchString(p.EndTime) || (it.StartTime != "" && p.EndTime <= it.StartTime) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "end_time invalid"})
		}
		it.EndTime = p.EndTime
	}
	if p.Title != "" {
		it.Title = p.Title
	}
	if p.Description != "" {
		it.Description = p.Description
	}
	if p.Notes != "" {
		it.Notes = p.Notes
	}
	if p.Cancelled != nil {
		it.Cancelled = *p.Cancelled
	}

	if err := database.DB.Save(&it).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, it)
}

// Delete removes one event, or its whole series with ?series=1.
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	if c.QueryParam("series") == "1" {
		var it models.Event
		if err := database.DB.First(&it, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
		}
		if it.SeriesID != "" {
			tx := database.DB.Delete(&models.Event{}, "series_id = ?", it.SeriesID)
			if tx.Error != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
			}
			return c.JSON(http.StatusOK, map[string]any{"deleted": tx.RowsAffected})
		}
		// Fall through: a one-off has no series.
	}
	tx := database.DB.Delete(&models.Event{}, "id = ?", id)
	if tx.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if tx.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}

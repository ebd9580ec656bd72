package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/metrokids/kidsapp/models"
)

func TestEventCreateSingle(t *testing.T) {
	db := setupDB(t)
	act := seedActivity(t, db, "Toddler Swim", "toddler-swim")
	h := NewEventHandler(time.UTC)

	body := fmt.Sprintf(`{"activity_id":%d,"date":"2026-03-02","start_time":"10:00","end_time":"11:00"}`, act.ID)
	c, rec := newCtx(t, http.MethodPost, "/admin/events", body)
	if err := h.Create(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Created  int    `json:"created"`
		SeriesID string `json:"series_id"`
	}
	decode(t, rec, &resp)
	if resp.Created != 1 || resp.SeriesID != "" {
		t.Errorf("got created=%d series=%q, want 1 and empty", resp.Created, resp.SeriesID)
	}
}

func TestEventCreateRecurringSeries(t *testing.T) {
	db := setupDB(t)
	act := seedActivity(t, db, "Story Time", "story-time")
	h := NewEventHandler(time.UTC)

	body := fmt.Sprintf(`{"activity_id":%d,"date":"2026-03-02","recurrence":"weekly","recurrence_count":3}`, act.ID)
	c, rec := newCtx(t, http.MethodPost, "/admin/events", body)
	if err := h.Create(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Created  int    `json:"created"`
		SeriesID string `json:"series_id"`
	}
	decode(t, rec, &resp)
	if resp.Created != 3 {
		t.Fatalf("created = %d, want 3", resp.Created)
	}
	if resp.SeriesID == "" {
		t.Fatal("series_id empty for recurring create")
	}

	var rows []models.Event
	if err := db.Order("date ASC").Find(&rows).Error; err != nil {
		t.Fatal(err)
	}
	wantDates := []string{"2026-03-02", "2026-03-09", "2026-03-16"}
	for i, r := range rows {
		if r.Date != wantDates[i] {
			t.Errorf("row %d date %s, want %s", i, r.Date, wantDates[i])
		}
		if r.SeriesID != resp.SeriesID {
			t.Errorf("row %d series %q, want %q", i, r.SeriesID, resp.SeriesID)
		}
	}
}

func TestEventCreateRecurrenceNeedsEndCondition(t *testing.T) {
	db := setupDB(t)
	act := seedActivity(t, db, "Art Lab", "art-lab")
	h := NewEventHandler(time.UTC)

	body := fmt.Sprintf(`{"activity_id":%d,"date":"2026-03-02","recurrence":"daily"}`, act.ID)
	c, rec := newCtx(t, http.MethodPost, "/admin/events", body)
	if err := h.Create(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "recurrence") {
		t.Errorf("error should name the recurrence field: %s", rec.Body.String())
	}
}

func TestEventCreateUnknownActivity(t *testing.T) {
	setupDB(t)
	h := NewEventHandler(time.UTC)

	c, rec := newCtx(t, http.MethodPost, "/admin/events", `{"activity_id":42,"date":"2026-03-02"}`)
	if err := h.Create(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestEventQueryRangeOrderAndFilters(t *testing.T) {
	db := setupDB(t)
	swim := seedActivity(t, db, "Toddler Swim", "toddler-swim")
	art := seedActivity(t, db, "Art Lab", "art-lab")

	cat := models.Category{Name: "Swimming", Slug: "swimming"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Model(&swim).Association("Categories").Append(&cat); err != nil {
		t.Fatal(err)
	}

	for _, e := range []models.Event{
		{ActivityID: art.ID, Date: "2026-03-05"},
		{ActivityID: swim.ID, Date: "2026-03-02"},
		{ActivityID: swim.ID, Date: "2026-03-05"},
		{ActivityID: swim.ID, Date: "2026-04-01"}, // outside range
	} {
		ev := e
		if err := db.Create(&ev).Error; err != nil {
			t.Fatal(err)
		}
	}

	h := NewEventHandler(time.UTC)

	c, rec := newCtx(t, http.MethodGet, "/events?start=2026-03-01&end=2026-03-31", "")
	if err := h.Query(c); err != nil {
		t.Fatal(err)
	}
	var items []models.Event
	decode(t, rec, &items)
	if len(items) != 3 {
		t.Fatalf("got %d events, want 3", len(items))
	}
	// date ASC, id ASC within the day.
	if items[0].Date != "2026-03-02" || items[1].Date != "2026-03-05" || items[2].Date != "2026-03-05" {
		t.Errorf("order wrong: %s %s %s", items[0].Date, items[1].Date, items[2].Date)
	}
	if items[1].ID > items[2].ID {
		t.Errorf("same-day order not by id: %d then %d", items[1].ID, items[2].ID)
	}
	if items[0].Activity == nil || items[0].Activity.Location == nil {
		t.Error("activity/location not preloaded")
	}

	// Category filter keeps only the swim activity's events.
	c, rec = newCtx(t, http.MethodGet, "/events?start=2026-03-01&end=2026-03-31&category=swimming", "")
	if err := h.Query(c); err != nil {
		t.Fatal(err)
	}
	decode(t, rec, &items)
	if len(items) != 2 {
		t.Fatalf("category filter: got %d events, want 2", len(items))
	}

	// Location filter by slug.
	c, rec = newCtx(t, http.MethodGet, "/events?start=2026-03-01&end=2026-03-31&location=art-lab-venue", "")
	if err := h.Query(c); err != nil {
		t.Fatal(err)
	}
	decode(t, rec, &items)
	if len(items) != 1 || items[0].ActivityID != art.ID {
		t.Fatalf("location filter: got %d events", len(items))
	}

	// Bad range rejected.
	c, rec = newCtx(t, http.MethodGet, "/events?start=2026-03-31&end=2026-03-01", "")
	if err := h.Query(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("inverted range: status %d, want 400", rec.Code)
	}
}

func TestEventUpdatePartial(t *testing.T) {
	db := setupDB(t)
	act := seedActivity(t, db, "Toddler Swim", "toddler-swim")
	ev := models.Event{ActivityID: act.ID, Date: "2026-03-02", StartTime: "10:00", Notes: "bring towel"}
	if err := db.Create(&ev).Error; err != nil {
		t.Fatal(err)
	}
	h := NewEventHandler(time.UTC)

	c, rec := newCtx(t, http.MethodPut, "/admin/events/1", `{"cancelled":true,"title":"Pool closed session"}`)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(ev.ID))
	if err := h.Update(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var got models.Event
	if err := db.First(&got, ev.ID).Error; err != nil {
		t.Fatal(err)
	}
	if !got.Cancelled || got.Title != "Pool closed session" {
		t.Errorf("update not applied: %+v", got)
	}
	if got.Date != "2026-03-02" || got.StartTime != "10:00" || got.Notes != "bring towel" {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestEventDeleteSeries(t *testing.T) {
	db := setupDB(t)
	act := seedActivity(t, db, "Story Time", "story-time")
	h := NewEventHandler(time.UTC)

	body := fmt.Sprintf(`{"activity_id":%d,"date":"2026-03-02","recurrence":"daily","recurrence_count":4}`, act.ID)
	c, rec := newCtx(t, http.MethodPost, "/admin/events", body)
	if err := h.Create(c); err != nil {
		t.Fatal(err)
	}
	var resp struct {
		IDs []uint `json:"ids"`
	}
	decode(t, rec, &resp)
	if len(resp.IDs) != 4 {
		t.Fatalf("created %d, want 4", len(resp.IDs))
	}

	c, rec = newCtx(t, http.MethodDelete, "/admin/events/1?series=1", "")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(resp.IDs[0]))
	if err := h.Delete(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var n int64
	db.Model(&models.Event{}).Count(&n)
	if n != 0 {
		t.Fatalf("%d events left after series delete, want 0", n)
	}
}

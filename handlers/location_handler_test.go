package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/metrokids/kidsapp/clock"
	"github.com/metrokids/kidsapp/models"
)

func TestLocationPublicGetOpenNowAndMarkdown(t *testing.T) {
	db := setupDB(t)
	city := models.City{Name: "Riverton", Slug: "riverton"}
	if err := db.Create(&city).Error; err != nil {
		t.Fatal(err)
	}
	loc := models.Location{
		Name:        "Community Pool",
		Slug:        "community-pool",
		CityID:      city.ID,
		Description: "**Heated** pool with a toddler area.",
		Hours:       `{"monday":"09:00-17:00"}`,
	}
	if err := db.Create(&loc).Error; err != nil {
		t.Fatal(err)
	}

	// 2026-03-02 is a Monday.
	openClk := clock.NewFixed(time.Date(2026, time.March, 2, 10, 30, 0, 0, time.UTC))
	h := NewLocationHandler(openClk, time.UTC)

	c, rec := newCtx(t, http.MethodGet, "/locations/community-pool", "")
	c.SetParamNames("slug")
	c.SetParamValues("community-pool")
	if err := h.PublicGet(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		OpenNow         bool   `json:"open_now"`
		DescriptionHTML string `json:"description_html"`
	}
	decode(t, rec, &body)
	if !body.OpenNow {
		t.Error("open_now false at Monday 10:30 with 09:00-17:00 hours")
	}
	if !strings.Contains(body.DescriptionHTML, "<strong>Heated</strong>") {
		t.Errorf("markdown not rendered: %q", body.DescriptionHTML)
	}

	// Same location after closing time.
	closedClk := clock.NewFixed(time.Date(2026, time.March, 2, 18, 0, 0, 0, time.UTC))
	h = NewLocationHandler(closedClk, time.UTC)
	c, rec = newCtx(t, http.MethodGet, "/locations/community-pool", "")
	c.SetParamNames("slug")
	c.SetParamValues("community-pool")
	if err := h.PublicGet(c); err != nil {
		t.Fatal(err)
	}
	decode(t, rec, &body)
	if body.OpenNow {
		t.Error("open_now true at Monday 18:00")
	}
}

func TestLocationPublicGetMissing(t *testing.T) {
	setupDB(t)
	h := NewLocationHandler(clock.NewSystem(), time.UTC)

	c, rec := newCtx(t, http.MethodGet, "/locations/nope", "")
	c.SetParamNames("slug")
	c.SetParamValues("nope")
	if err := h.PublicGet(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}

func TestLocationCreateRejectsBadHours(t *testing.T) {
	db := setupDB(t)
	city := models.City{Name: "Riverton", Slug: "riverton"}
	if err := db.Create(&city).Error; err != nil {
		t.Fatal(err)
	}
	h := NewLocationHandler(clock.NewSystem(), time.UTC)

	c, rec := newCtx(t, http.MethodPost, "/admin/locations",
		`{"name":"Pool","city_id":1,"hours":"monday nine to five"}`)
	if err := h.Create(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "hours") {
		t.Errorf("error should name the hours field: %s", rec.Body.String())
	}
}

func TestLocationCreateWithCategories(t *testing.T) {
	db := setupDB(t)
	city := models.City{Name: "Riverton", Slug: "riverton"}
	if err := db.Create(&city).Error; err != nil {
		t.Fatal(err)
	}
	cat := models.Category{Name: "Swimming", Slug: "swimming"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatal(err)
	}
	h := NewLocationHandler(clock.NewSystem(), time.UTC)

	c, rec := newCtx(t, http.MethodPost, "/admin/locations",
		`{"name":"Community Pool","city_id":1,"category_ids":[1]}`)
	if err := h.Create(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var got models.Location
	if err := db.Preload("Categories").First(&got, "slug = ?", "community-pool").Error; err != nil {
		t.Fatal(err)
	}
	if len(got.Categories) != 1 || got.Categories[0].Slug != "swimming" {
		t.Errorf("categories not attached: %+v", got.Categories)
	}
}

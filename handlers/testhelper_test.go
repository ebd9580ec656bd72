package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/metrokids/kidsapp/database"
	"github.com/metrokids/kidsapp/models"
)

// setupDB points the package-global database.DB at a fresh in-memory sqlite
// database named after the test, so tests don't see each other's rows.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

func newCtx(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// seedActivity inserts the minimum graph (city, location, activity) most
// event tests need and returns the activity.
func seedActivity(t *testing.T, db *gorm.DB, name, slug string) models.Activity {
	t.Helper()
	city := models.City{Name: "Riverton", Slug: "riverton-" + slug}
	if err := db.Create(&city).Error; err != nil {
		t.Fatal(err)
	}
	loc := models.Location{Name: name + " venue", Slug: slug + "-venue", CityID: city.ID}
	if err := db.Create(&loc).Error; err != nil {
		t.Fatal(err)
	}
	act := models.Activity{Name: name, Slug: slug, LocationID: loc.ID}
	if err := db.Create(&act).Error; err != nil {
		t.Fatal(err)
	}
	return act
}

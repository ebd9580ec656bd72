package jobs

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/metrokids/kidsapp/models"
)

func TestPruneOldEvents(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:jobstest?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&models.Event{}); err != nil {
		t.Fatal(err)
	}
	for _, d := range []string{"2025-01-10", "2025-09-01", "2026-03-01"} {
		if err := db.Create(&models.Event{ActivityID: 1, Date: d}).Error; err != nil {
			t.Fatal(err)
		}
	}

	today := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	n, err := PruneOldEvents(db, today, 6) // cutoff 2025-09-15
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("pruned %d events, want 2", n)
	}
	var remaining []models.Event
	db.Find(&remaining)
	if len(remaining) != 1 || remaining[0].Date != "2026-03-01" {
		t.Fatalf("unexpected remaining events: %+v", remaining)
	}
}

func TestStartDisabled(t *testing.T) {
	if c := Start(nil, time.UTC, 0); c != nil {
		t.Fatal("scheduler started with retention disabled")
	}
}

package seed

import (
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/metrokids/kidsapp/models"
)

const sample = `
cities:
  - name: Riverton
    slug: riverton
  - name: Oak Hills
    slug: oak-hills
    description: Western suburbs
categories:
  - name: Swimming
    slug: swimming
age_groups:
  - name: Toddlers
    min_age: 1
    max_age: 3
tags:
  - name: Indoor
    slug: indoor
`

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:seedtest?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.City{}, &models.Category{}, &models.AgeGroup{}, &models.Tag{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestLoadAndApplyIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Cities) != 2 || len(d.Categories) != 1 || len(d.AgeGroups) != 1 || len(d.Tags) != 1 {
		t.Fatalf("unexpected parse result: %+v", d)
	}

	db := openTestDB(t)
	if err := Apply(db, d); err != nil {
		t.Fatal(err)
	}
	// Second apply must not duplicate.
	if err := Apply(db, d); err != nil {
		t.Fatal(err)
	}
	var n int64
	db.Model(&models.City{}).Count(&n)
	if n != 2 {
		t.Errorf("got %d cities, want 2", n)
	}
	db.Model(&models.AgeGroup{}).Count(&n)
	if n != 1 {
		t.Errorf("got %d age groups, want 1", n)
	}
	var city models.City
	if err := db.Where("slug = ?", "oak-hills").First(&city).Error; err != nil {
		t.Fatalf("oak-hills not seeded: %v", err)
	}
	if city.Description != "Western suburbs" {
		t.Errorf("description not stored: %q", city.Description)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/seed.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

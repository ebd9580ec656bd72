package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/metrokids/kidsapp/config"
	"github.com/metrokids/kidsapp/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Migrate runs AutoMigrate for every model. Split out so tests can run it
// against their own (sqlite) connection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.City{},
		&models.Category{},
		&models.AgeGroup{},
		&models.Organization{},
		&models.Tag{},
		&models.Location{},
		&models.Activity{},
		&models.Event{},
	)
}

package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/metrokids/kidsapp/clock"
	"github.com/metrokids/kidsapp/config"
	"github.com/metrokids/kidsapp/database"
	"github.com/metrokids/kidsapp/jobs"
	"github.com/metrokids/kidsapp/routes"
	"github.com/metrokids/kidsapp/seed"
)

func main() {
	cfg := config.Load()

	tz, err := time.LoadLocation(cfg.AppTZ)
	if err != nil {
		log.Fatalf("invalid APP_TZ %q: %v", cfg.AppTZ, err)
	}

	// Connect fails fast when the DB is not up.
	database.Connect(cfg)

	if cfg.SeedFile != "" {
		data, err := seed.Load(cfg.SeedFile)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		if err := seed.Apply(database.DB, data); err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Printf("seed applied from %s", cfg.SeedFile)
	}

	if c := jobs.Start(database.DB, tz, cfg.EventRetentionMonths); c != nil {
		defer c.Stop()
		log.Printf("event retention job scheduled (%d months)", cfg.EventRetentionMonths)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, clock.NewSystem(), tz)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// scripts/seed.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/metrokids/kidsapp/config"
	"github.com/metrokids/kidsapp/database"
	"github.com/metrokids/kidsapp/seed"
)

// One-shot importer: go run ./scripts seed.yaml
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: seed <file.yaml>")
		os.Exit(2)
	}
	cfg := config.Load()
	database.Connect(cfg)

	data, err := seed.Load(os.Args[1])
	if err != nil {
		log.Fatalf("load seed: %v", err)
	}
	if err := seed.Apply(database.DB, data); err != nil {
		log.Fatalf("apply seed: %v", err)
	}
	fmt.Printf("seeded %d cities, %d categories, %d age groups, %d tags\n",
		len(data.Cities), len(data.Categories), len(data.AgeGroups), len(data.Tags))
}

// Package seed loads reference data (cities, categories, age groups, tags)
// from a YAML file. Applying a seed is idempotent: rows are matched by slug
// (age groups by name) and only created when missing.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/metrokids/kidsapp/models"
)

type Data struct {
	Cities []struct {
		Name        string `yaml:"name"`
		Slug        string `yaml:"slug"`
		Description string `yaml:"description"`
	} `yaml:"cities"`
	Categories []struct {
		Name        string `yaml:"name"`
		Slug        string `yaml:"slug"`
		Description string `yaml:"description"`
	} `yaml:"categories"`
	AgeGroups []struct {
		Name   string `yaml:"name"`
		MinAge int    `yaml:"min_age"`
		MaxAge int    `yaml:"max_age"`
	} `yaml:"age_groups"`
	Tags []struct {
		Name string `yaml:"name"`
		Slug string `yaml:"slug"`
	} `yaml:"tags"`
}

func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("seed: parse %s: %w", path, err)
	}
	return &d, nil
}

func Apply(db *gorm.DB, d *Data) error {
	for _, c := range d.Cities {
		row := models.City{Name: c.Name, Slug: c.Slug, Description: c.Description}
		if err := db.Where("slug = ?", c.Slug).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("seed: city %s: %w", c.Slug, err)
		}
	}
	for _, c := range d.Categories {
		row := models.Category{Name: c.Name, Slug: c.Slug, Description: c.Description}
		if err := db.Where("slug = ?", c.Slug).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("seed: category %s: %w", c.Slug, err)
		}
	}
	for _, g := range d.AgeGroups {
		row := models.AgeGroup{Name: g.Name, MinAge: g.MinAge, MaxAge: g.MaxAge}
		if err := db.Where("name = ?", g.Name).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("seed: age group %s: %w", g.Name, err)
		}
	}
	for _, tg := range d.Tags {
		row := models.Tag{Name: tg.Name, Slug: tg.Slug}
		if err := db.Where("slug = ?", tg.Slug).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("seed: tag %s: %w", tg.Slug, err)
		}
	}
	return nil
}

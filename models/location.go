package models

import "time"

// Location is a physical or virtual venue hosting activities.
type Location struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:120;not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;size:140;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"` // markdown
	Address     string `gorm:"size:255" json:"address"`

	CityID uint  `gorm:"index" json:"city_id"`
	City   *City `json:"city,omitempty"`

	OrganizationID *uint         `gorm:"index" json:"organization_id"`
	Organization   *Organization `json:"organization,omitempty"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Website   string  `gorm:"size:255" json:"website"`
	Phone     string  `gorm:"size:30" json:"phone"`

	// Hours is a JSON object mapping lowercase weekday names to either
	// "HH:MM-HH:MM" or the literal "closed", e.g.
	// {"monday":"09:00-17:00","sunday":"closed"}.
	Hours string `gorm:"type:text" json:"hours"`

	Categories []Category `gorm:"many2many:location_categories" json:"categories,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

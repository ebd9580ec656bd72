package models

import "time"

// Activity is a bookable/attendable offering shown to end users. It owns
// zero or more dated events.
type Activity struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:120;not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;size:140;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"` // markdown

	LocationID uint      `gorm:"not null;index" json:"location_id"`
	Location   *Location `json:"location,omitempty"`

	OrganizationID *uint         `gorm:"index" json:"organization_id"`
	Organization   *Organization `json:"organization,omitempty"`

	AgeGroupID *uint     `gorm:"index" json:"age_group_id"`
	AgeGroup   *AgeGroup `json:"age_group,omitempty"`

	// CostCents 0 with an empty CostNote means free.
	CostCents int    `gorm:"not null;default:0" json:"cost_cents"`
	CostNote  string `gorm:"size:120" json:"cost_note"` // e.g. "per session", "donation"
	Website   string `gorm:"size:255" json:"website"`

	Categories []Category `gorm:"many2many:activity_categories" json:"categories,omitempty"`
	Tags       []Tag      `gorm:"many2many:activity_tags" json:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

// Event is a single dated occurrence of an activity. Title/Description are
// optional overrides; empty means fall back to the activity's own.
type Event struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ActivityID uint      `gorm:"not null;index" json:"activity_id"`
	Activity   *Activity `json:"activity,omitempty"`

	Date      string `gorm:"type:date;index" json:"date"` // YYYY-MM-DD
	StartTime string `gorm:"type:varchar(5)" json:"start_time"`
	EndTime   string `gorm:"type:varchar(5)" json:"end_time"`

	Title       string `gorm:"size:120" json:"title"`
	Description string `gorm:"size:2000" json:"description"`
	Cancelled   bool   `gorm:"not null;default:false" json:"cancelled"`
	Notes       string `gorm:"size:500" json:"notes"`

	// SeriesID groups events created together from one recurrence pattern.
	// Empty for one-off events.
	SeriesID string `gorm:"size:36;index" json:"series_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayTitle resolves the override-or-activity title used in listings and
// the ICS feed.
func (e *Event) DisplayTitle() string {
	if e.Title != "" {
		return e.Title
	}
	if e.Activity != nil {
		return e.Activity.Name
	}
	return ""
}

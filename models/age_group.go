package models

import "time"

type AgeGroup struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:60;not null" json:"name"` // e.g. "Toddlers"
	MinAge int    `gorm:"not null;default:0" json:"min_age"`
	MaxAge int    `gorm:"not null;default:0" json:"max_age"` // 0 = no upper bound

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

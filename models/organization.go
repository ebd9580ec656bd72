package models

import "time"

type Organization struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:120;not null" json:"name"`
	Slug    string `gorm:"uniqueIndex;size:140;not null" json:"slug"`
	Website string `gorm:"size:255" json:"website"`
	Email   string `gorm:"size:120" json:"email"`
	Phone   string `gorm:"size:30" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

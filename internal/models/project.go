package models

import "time"

// Project represents one construction project. Deleting a project removes
// all entries and files that reference it.
type Project struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Owner     string    `gorm:"size:128" json:"owner"`
	Location  string    `gorm:"size:255" json:"location"`
	StartDate string    `gorm:"size:10" json:"startDate"` // YYYY-MM-DD
	CreatedBy string    `gorm:"size:64" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

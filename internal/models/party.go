package models

import "time"

// Party is a supplier or labor contact. Parties are global across projects
// and deduplicated case-insensitively on (name, type).
type Party struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:128;index;not null" json:"name"`
	Type      string    `gorm:"size:16;index;not null" json:"type"` // supplier / labor
	CreatedAt time.Time `json:"-"`
}

package models

import "time"

// Backup records one project snapshot written to the backup directory.
type Backup struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	ProjectID string    `gorm:"index;size:64;not null" json:"projectId"`
	FileName  string    `gorm:"size:255" json:"fileName"`
	FilePath  string    `gorm:"size:512" json:"-"`
	Size      int64     `json:"size"`
	CreatedBy string    `gorm:"size:64" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

package models

import "time"

// File is an uploaded project document. Data holds the full content as a
// base64 data URL; files live independently of entries but are cascade
// deleted with their project.
type File struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	ProjectID  string    `gorm:"index;size:64;not null" json:"projectId"`
	Category   string    `gorm:"size:16;index" json:"category"` // cad / image / document / other
	Name       string    `gorm:"size:255" json:"name"`
	UploadedBy string    `gorm:"size:64" json:"uploadedBy"`
	Type       string    `gorm:"size:64" json:"type"` // MIME type
	Data       string    `gorm:"type:text" json:"data,omitempty"`
	UploadDate time.Time `gorm:"autoCreateTime" json:"uploadDate"`
}

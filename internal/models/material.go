package models

// Material is a catalog name for cash-out material entries. The catalog is
// global, referenced by name only, and append-only (no rename).
type Material struct {
	ID   uint   `gorm:"primaryKey" json:"-"`
	Name string `gorm:"size:64;uniqueIndex;not null" json:"name"`
}

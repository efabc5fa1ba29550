package models

import "time"

// Item is one catalog item definition persisted for reporting joins. The
// authoritative table lives in pkg/catalog; this row mirrors it.
type Item struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Code         string `gorm:"size:64;uniqueIndex;not null"`
	InternalName string `gorm:"size:255;index;not null"`
	DisplayName  string `gorm:"size:255;not null"`
	Category     string `gorm:"size:32;index"`
	Faction      string `gorm:"size:16"`
}

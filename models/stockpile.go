package models

import "time"

// Stockpile types as shown in game.
const (
	StockpileTypeSeaport      = "SEAPORT"
	StockpileTypeStorageDepot = "STORAGE_DEPOT"
)

// Stockpile is one tracked storage location.
type Stockpile struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Name         string `gorm:"size:255;not null;uniqueIndex"`
	Type         string `gorm:"size:32;not null"`
	Hex          string `gorm:"size:64;index"`
	LocationName string `gorm:"size:255"`
	// Code is the in-game reserve access code, when the regiment shares it.
	Code            string `gorm:"size:16"`
	LastRefreshedAt *time.Time
	Items           []StockpileItem `gorm:"constraint:OnDelete:CASCADE;"`
	ScanRecords     []StockpileScan `gorm:"constraint:OnDelete:CASCADE;"`
}

// StockpileItem is the current accepted inventory for one item at one
// stockpile. Saving a scan replaces the full set.
type StockpileItem struct {
	ID          uint `gorm:"primaryKey"`
	UpdatedAt   time.Time
	StockpileID uint    `gorm:"index;not null;uniqueIndex:idx_stockpile_item_crated"`
	ItemCode    string  `gorm:"size:64;index;not null;uniqueIndex:idx_stockpile_item_crated"`
	Crated      bool    `gorm:"default:false;uniqueIndex:idx_stockpile_item_crated"`
	Quantity    int     `gorm:"not null"`
	Confidence  *float64
}

// StockpileScan records one OCR scan against a stockpile, for history and
// leaderboard purposes.
type StockpileScan struct {
	ID            uint `gorm:"primaryKey"`
	CreatedAt     time.Time
	StockpileID   uint `gorm:"index;not null"`
	ScannedByID   uint `gorm:"index;not null"`
	ItemCount     int  `gorm:"default:0"`
	OCRConfidence *float64
	ScanItems     []StockpileScanItem `gorm:"constraint:OnDelete:CASCADE;"`
}

// StockpileScanItem is the audit copy of one item detected in a scan.
type StockpileScanItem struct {
	ID              uint   `gorm:"primaryKey"`
	StockpileScanID uint   `gorm:"index;not null"`
	ItemCode        string `gorm:"size:64;index;not null"`
	Quantity        int    `gorm:"not null"`
	Crated          bool   `gorm:"default:false"`
	Confidence      *float64
}

package main

import (
	"log"

	"quartermaster/models"
	"quartermaster/pkg/catalog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB() {
	if cfg.DSN == "" {
		log.Fatal("DB_DSN is not set. This service requires a Postgres DSN in DB_DSN.")
	}
	var err error
	db, err = gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}

	if cfg.AutoMigrate {
		// roles first so the users FK can be applied safely
		if err := db.AutoMigrate(&models.Role{}); err != nil {
			log.Printf("migration warning (roles): %v", err)
		}
	}
	seedRoles()

	if cfg.AutoMigrate {
		// migrate models individually so a failure on one doesn't block others
		for _, m := range []interface{}{
			&models.User{},
			&models.RefreshToken{},
			&models.Item{},
			&models.Stockpile{},
			&models.StockpileItem{},
			&models.StockpileScan{},
			&models.StockpileScanItem{},
		} {
			if err := db.AutoMigrate(m); err != nil {
				log.Printf("migration warning (%T): %v", m, err)
			}
		}
	}
	seedItems(catalog.Default())
}

func seedRoles() {
	roles := []models.Role{
		{Name: "officer", Description: "manages stockpiles and accepts scans"},
		{Name: "member", Description: "scans and views stockpiles"},
	}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}
}

// seedItems mirrors the static catalog into the items table so reporting
// queries can join on it. Idempotent; existing rows are refreshed in place.
func seedItems(cat *catalog.Catalog) {
	for _, e := range cat.Entries() {
		row := models.Item{
			Code:         e.Code,
			InternalName: e.InternalName,
			DisplayName:  e.DisplayName,
			Category:     string(e.Category),
			Faction:      string(e.Faction),
		}
		var existing models.Item
		if err := db.Where("code = ?", e.Code).First(&existing).Error; err == nil {
			row.ID = existing.ID
			row.CreatedAt = existing.CreatedAt
			if err := db.Save(&row).Error; err != nil {
				log.Printf("item seed update (%s): %v", e.Code, err)
			}
			continue
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("item seed (%s): %v", e.Code, err)
		}
	}
}

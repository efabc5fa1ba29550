package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"quartermaster/models"
	"quartermaster/pkg/catalog"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Seeds the item table from the built-in catalog. Safe to re-run: existing
// codes are left untouched.
func main() {
	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Item{}); err != nil {
		log.Fatalf("migrate items: %v", err)
	}

	created := 0
	for _, e := range catalog.Default().Entries() {
		var existing models.Item
		if err := db.Where("code = ?", e.Code).First(&existing).Error; err == nil {
			continue
		}
		item := models.Item{
			Code:         e.Code,
			InternalName: e.InternalName,
			DisplayName:  e.DisplayName,
			Category:     string(e.Category),
			Faction:      string(e.Faction),
		}
		if err := db.Create(&item).Error; err != nil {
			log.Printf("seed item %s: %v", e.Code, err)
			continue
		}
		created++
	}
	fmt.Printf("seeded %d new items\n", created)
}

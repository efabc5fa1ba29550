package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"quartermaster/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func mustDBFromEnv() *gorm.DB {
	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return gdb
}

// Prints the current contents of one stockpile, or a summary of all of them.
func main() {
	name := flag.String("name", "", "stockpile name (omit for a summary of all)")
	list := flag.Bool("list", false, "list individual item rows")
	flag.Parse()

	gdb := mustDBFromEnv()

	if *name == "" {
		var stockpiles []models.Stockpile
		if err := gdb.Order("name").Find(&stockpiles).Error; err != nil {
			log.Fatalf("fetch stockpiles failed: %v", err)
		}
		for _, sp := range stockpiles {
			var cnt int64
			gdb.Model(&models.StockpileItem{}).Where("stockpile_id = ?", sp.ID).Count(&cnt)
			refreshed := "never"
			if sp.LastRefreshedAt != nil {
				refreshed = sp.LastRefreshedAt.Format(time.RFC3339)
			}
			fmt.Printf("%s|%s|%s|items=%d|refreshed=%s\n", sp.Name, sp.Type, sp.Hex, cnt, refreshed)
		}
		return
	}

	var sp models.Stockpile
	if err := gdb.Where("name = ?", *name).First(&sp).Error; err != nil {
		log.Fatalf("stockpile not found: %v", err)
	}
	var cnt int64
	gdb.Model(&models.StockpileItem{}).Where("stockpile_id = ?", sp.ID).Count(&cnt)
	fmt.Printf("Stockpile %s (%s) in %s:\n", sp.Name, sp.Type, sp.Hex)
	fmt.Printf("  distinct_rows=%d\n", cnt)

	if *list {
		var rows []models.StockpileItem
		if err := gdb.Where("stockpile_id = ?", sp.ID).Order("item_code").Find(&rows).Error; err != nil {
			log.Fatalf("fetch rows failed: %v", err)
		}
		for _, r := range rows {
			crated := "loose"
			if r.Crated {
				crated = "crated"
			}
			fmt.Printf("%s|%d|%s\n", r.ItemCode, r.Quantity, crated)
		}
	}
}

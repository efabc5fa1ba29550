package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment. A local
// .env file is loaded first without overriding variables already set.
type Config struct {
	Addr        string
	DSN         string
	JWTSecret   string
	TemplateDir string
	ScanWorkers int
	OCRTimeout  time.Duration
	AutoMigrate bool
}

func loadConfig() Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded environment from .env")
	}
	cfg := Config{
		Addr:        envOr("ADDR", ":8001"),
		DSN:         os.Getenv("DB_DSN"),
		JWTSecret:   envOr("JWT_SECRET", "dev-insecure-secret-change"),
		TemplateDir: envOr("TEMPLATE_DIR", "templates/icons"),
		ScanWorkers: envInt("SCAN_WORKERS", 4),
		OCRTimeout:  time.Duration(envInt("OCR_TIMEOUT_SEC", 15)) * time.Second,
		AutoMigrate: true,
	}
	if v := strings.ToLower(os.Getenv("DB_AUTO_MIGRATE")); v == "false" || v == "0" || v == "no" {
		cfg.AutoMigrate = false
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

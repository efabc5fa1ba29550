package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"quartermaster/pkg/catalog"
	"quartermaster/pkg/scanner"
)

var (
	jwtSecret []byte
	cfg       Config
	scn       *scanner.Scanner
)

func main() {
	cfg = loadConfig()
	jwtSecret = []byte(cfg.JWTSecret)

	// `./quartermaster migrate` runs AutoMigrate and seeding then exits.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		log.Println("migration and seeding completed")
		return
	}

	initDB()

	cat := catalog.Default()
	lib, err := scanner.LoadTemplateLibrary(cfg.TemplateDir, cat)
	if err != nil {
		log.Printf("template library: %v (scans will report no templates)", err)
		lib = scanner.NewTemplateLibrary(nil)
	} else {
		log.Printf("loaded %d icon templates from %s", lib.Len(), cfg.TemplateDir)
		go func() {
			if werr := lib.Watch(context.Background()); werr != nil && !errors.Is(werr, context.Canceled) {
				log.Printf("template watcher stopped: %v", werr)
			}
		}()
	}
	scn = scanner.New(lib, cat)

	r := gin.Default()
	setupRoutes(r)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"flag"
	"log"
	"os"

	"eviden-bot/internal/model"
	"eviden-bot/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Indexes AutoMigrate cannot express from struct tags.
var postSQL = []string{
	`CREATE INDEX IF NOT EXISTS idx_rekap_data_created_at ON rekap_data (created_at DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_rekap_data_segment_designator ON rekap_data (segmentasi_id, designator_id);`,
}

func main() {
	dryRun := flag.Bool("dry-run", false, "only report which tables are missing")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	missing := report(db)
	if *dryRun {
		color.Cyan("Dry run: %d table(s) would be created", missing)
		return
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		color.Red("AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	for _, sql := range postSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: post-migration SQL failed: %v", err)
		}
	}

	color.Green("Migration completed!")
}

// report prints each bot table as present or missing and returns how many are missing.
func report(db *gorm.DB) int {
	missing := 0
	for _, m := range model.All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			log.Fatalf("Error: cannot parse model %T: %v", m, err)
		}
		table := stmt.Schema.Table
		if db.Migrator().HasTable(m) {
			color.White("  present  %s", table)
			continue
		}
		missing++
		color.Yellow("  missing  %s", table)
	}
	return missing
}

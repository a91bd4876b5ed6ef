package main

import (
	"flag"
	"log"
	"os"

	"github.com/cardinal-wishlist/wishlist-backend/internal/config"
	"github.com/cardinal-wishlist/wishlist-backend/internal/database"
	"github.com/cardinal-wishlist/wishlist-backend/internal/migration"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "configs/config.local.yaml", "config file path")
	verify := flag.Bool("verify", false, "verify data integrity (claim identities, relationship pairs)")
	rollback := flag.Bool("rollback", false, "drop all tables")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if loaded := config.LoadDotEnv(env); len(loaded) == 0 {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *verbose {
		cfg.Database.LogLevel = "info"
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying DB: %v", err)
	}
	defer sqlDB.Close()

	switch {
	case *rollback:
		if err := migration.Rollback(db); err != nil {
			log.Fatalf("Rollback failed: %v", err)
		}
		log.Println("All tables dropped")

	case *verify:
		report, err := migration.Verify(db)
		if err != nil {
			log.Fatalf("Verify failed: %v", err)
		}
		for table, count := range report.Counts {
			log.Printf("  %-22s %d rows", table, count)
		}
		log.Printf("  items with both claim identities: %d", report.BothClaimIdentities)
		log.Printf("  claims without timestamp:         %d", report.ClaimWithoutTimestamp)
		log.Printf("  self relationships:               %d", report.SelfRelationships)
		log.Printf("  duplicate relationship pairs:     %d", report.DuplicatePairs)
		if !report.OK() {
			sqlDB.Close()
			os.Exit(1)
		}
		log.Println("Verification passed")

	default:
		if err := migration.Run(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migration complete")
	}
}

// Prints the snapshot schema GORM generates on SQLite and, with -seed, the
// row a seeded snapshot produces.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/localnerve/visionfolio/internal/database"
	"github.com/localnerve/visionfolio/internal/logging"
	"github.com/localnerve/visionfolio/internal/models"
	"github.com/localnerve/visionfolio/internal/seed"
	"github.com/localnerve/visionfolio/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	dsn := flag.String("db", ":memory:", "SQLite database file")
	locale := flag.String("seed", "", "Save the default content for this locale and print the stored row")
	flag.Parse()

	log := logging.New(logging.Options{Format: "console"})

	db, err := gorm.Open(sqlite.Open(*dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatal().Err(err).Str("db", *dsn).Msg("failed to open database")
	}

	// Migrate exactly what the server migrates
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'").Scan(&tables)

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)
		var ddl string
		db.Raw("SELECT sql FROM sqlite_master WHERE name = ?", table).Scan(&ddl)
		fmt.Println(ddl)

		var indexes []string
		db.Raw("SELECT sql FROM sqlite_master WHERE type='index' AND tbl_name = ? AND sql IS NOT NULL", table).Scan(&indexes)
		for _, idx := range indexes {
			fmt.Println(idx)
		}
	}

	if *locale == "" {
		return
	}

	content, err := seed.NewEmbedded().Defaults(*locale)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load seed")
	}

	ctx := context.Background()
	if err := services.NewSnapshotRepository(db, log).Save(ctx, *locale, 1, content); err != nil {
		log.Fatal().Err(err).Msg("failed to save snapshot")
	}

	var doc models.ContentDocument
	if err := db.Where("locale = ?", *locale).First(&doc).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to read snapshot row")
	}

	fmt.Printf("\n=== Row: %s ===\n", *locale)
	fmt.Fprintf(os.Stdout, "document_id=%d document_version=%d payload_bytes=%d updated_at=%s\n",
		doc.DocumentID, doc.DocumentVersion, len(doc.Payload.JSON), doc.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"))
}

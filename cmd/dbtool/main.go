package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"smartroute-service/internal/adapters/repositories"
	"smartroute-service/internal/config"
	"smartroute-service/internal/platform/db"
	"strings"

	"github.com/joho/godotenv"
)

// dbtool prepares the Postgres dataset source: it creates the schema and,
// unless -schema-only is set, replaces the stored dataset with a workbook's.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	workbook := flag.String("workbook", config.Get("WORKBOOK_PATH", "data/SmartRoute Optimizer.xlsx"), "planning workbook to seed from")
	schemaOnly := flag.Bool("schema-only", false, "create tables without seeding")
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := db.Open(context.Background(), databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := initAndSeed(context.Background(), db, *workbook, *schemaOnly); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, db *sql.DB, workbookPath string, schemaOnly bool) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, db); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if schemaOnly {
		return nil
	}

	log.Printf("Seeding database from workbook=%q...", workbookPath)
	ds, err := repositories.NewWorkbookSource(workbookPath).LoadDataset(ctx)
	if err != nil {
		log.Fatalf("reading workbook failed: %v", err)
	}
	if err := repositories.SeedFromDataset(ctx, db, ds); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeding complete. shipments=%d vehicles=%d", len(ds.Shipments), len(ds.Vehicles))

	return nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"smartroute-service/internal/ports"
	"strings"
)

// Initialize the Postgres schema for the planning dataset and the latest plan.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDepotQuery := `
	CREATE TABLE IF NOT EXISTS depot (
		depot_id SMALLINT PRIMARY KEY CHECK (depot_id = 1),
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);
	`

	createShipmentsQuery := `
	CREATE TABLE IF NOT EXISTS shipments (
		shipment_id TEXT PRIMARY KEY,
		seq INTEGER NOT NULL UNIQUE,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		timeslot TEXT NOT NULL DEFAULT ''
	);
	`

	// Limits stay as text so the "Any" sentinel round-trips unchanged.
	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_type TEXT PRIMARY KEY,
		capacity TEXT NOT NULL,
		max_radius_km TEXT NOT NULL,
		vehicle_count TEXT NOT NULL
	);
	`

	// Holds at most one row: the latest plan.
	createLatestPlanQuery := `
	CREATE TABLE IF NOT EXISTS latest_plan (
		slot SMALLINT PRIMARY KEY CHECK (slot = 1),
		plan_id TEXT NOT NULL,
		body JSONB NOT NULL,
		saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	statements := []string{
		createDepotQuery,
		createShipmentsQuery,
		createVehiclesQuery,
		createLatestPlanQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Replace the stored dataset with ds in a single transaction.
func SeedFromDataset(ctx context.Context, db *sql.DB, ds *ports.Dataset) error {
	if ds == nil {
		return errors.New("seed dataset: dataset is nil")
	}

	for i, s := range ds.Shipments {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("seed dataset: shipment at index %d: id cannot be empty", i+1)
		}
	}

	if db == nil {
		return errors.New("seed dataset: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed dataset: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"depot", "shipments", "vehicles"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("seed dataset: clear %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO depot (depot_id, lat, lon) VALUES (1, $1, $2);`,
		ds.Depot.Lat, ds.Depot.Lon,
	); err != nil {
		return fmt.Errorf("seed dataset: insert depot: %w", err)
	}

	shipStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO shipments (
		shipment_id,
		seq,
		lat,
		lon,
		timeslot
	)
	VALUES ($1, $2, $3, $4, $5);
	`)
	if err != nil {
		return fmt.Errorf("seed dataset: prepare shipment insert: %w", err)
	}
	defer shipStmt.Close()

	for i, s := range ds.Shipments {
		if _, err := shipStmt.ExecContext(ctx, s.ID, i+1, s.Location.Lat, s.Location.Lon, s.Timeslot); err != nil {
			return fmt.Errorf("seed dataset: insert shipment_id=%s: %w", s.ID, err)
		}
	}

	vehicleStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO vehicles (
		vehicle_type,
		capacity,
		max_radius_km,
		vehicle_count
	)
	VALUES ($1, $2, $3, $4);
	`)
	if err != nil {
		return fmt.Errorf("seed dataset: prepare vehicle insert: %w", err)
	}
	defer vehicleStmt.Close()

	for _, v := range ds.Vehicles {
		if _, err := vehicleStmt.ExecContext(ctx, string(v.Type), v.Capacity, v.MaxRadiusKm, v.Count); err != nil {
			return fmt.Errorf("seed dataset: insert vehicle_type=%s: %w", v.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed dataset: commit tx: %w", err)
	}

	return nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"smartroute-service/internal/domain"
	"smartroute-service/internal/platform/obs"
	"smartroute-service/internal/ports"
)

// Postgres-backed implementation of the DatasetSource port.
type PostgresDatasetRepository struct{ DB *sql.DB }

func NewPostgresDatasetRepository(db *sql.DB) *PostgresDatasetRepository {
	return &PostgresDatasetRepository{DB: db}
}

// Return the depot, the shipments in input order and the raw roster.
func (s *PostgresDatasetRepository) LoadDataset(ctx context.Context) (_ *ports.Dataset, err error) {
	defer obs.Time(ctx, "postgres.LoadDataset")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres dataset repository: DB is nil")
	}

	var depot domain.Coordinates
	err = s.DB.QueryRowContext(ctx, `SELECT lat, lon FROM depot WHERE depot_id = 1;`).Scan(&depot.Lat, &depot.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.New("load dataset: depot location is not configured")
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset: query depot: %w", err)
	}

	shipments, err := s.listShipments(ctx)
	if err != nil {
		return nil, err
	}

	vehicles, err := s.listVehicles(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.Dataset{Depot: depot, Shipments: shipments, Vehicles: vehicles}, nil
}

func (s *PostgresDatasetRepository) listShipments(ctx context.Context) ([]domain.Shipment, error) {
	query := `
	SELECT
		shipment_id,
		lat,
		lon,
		timeslot
	FROM shipments
	ORDER BY seq;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list shipments: query shipments table: %w", err)
	}
	defer rows.Close()

	shipments := make([]domain.Shipment, 0, 64)
	for rows.Next() {
		var sh domain.Shipment
		if err := rows.Scan(&sh.ID, &sh.Location.Lat, &sh.Location.Lon, &sh.Timeslot); err != nil {
			return nil, fmt.Errorf("list shipments: scan row: %w", err)
		}
		shipments = append(shipments, sh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shipments: row iteration: %w", err)
	}

	return shipments, nil
}

func (s *PostgresDatasetRepository) listVehicles(ctx context.Context) ([]domain.RawVehicle, error) {
	query := `
	SELECT
		vehicle_type,
		capacity,
		max_radius_km,
		vehicle_count
	FROM vehicles
	ORDER BY vehicle_type;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query vehicles table: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.RawVehicle, 0, 8)
	for rows.Next() {
		var v domain.RawVehicle
		var typ string
		if err := rows.Scan(&typ, &v.Capacity, &v.MaxRadiusKm, &v.Count); err != nil {
			return nil, fmt.Errorf("list vehicles: scan row: %w", err)
		}
		v.Type = domain.VehicleType(typ)
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}

	return vehicles, nil
}

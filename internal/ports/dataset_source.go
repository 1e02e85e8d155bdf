package ports

import (
	"context"
	"smartroute-service/internal/domain"
)

// Dataset is the planning input: the depot, the shipment pool in input order
// and the raw fleet roster.
type Dataset struct {
	Depot     domain.Coordinates
	Shipments []domain.Shipment
	Vehicles  []domain.RawVehicle
}

// Port: a boundary for retrieving planning input from a data source.
type DatasetSource interface {
	// Load the depot, shipments and vehicle roster.
	LoadDataset(ctx context.Context) (*Dataset, error)
}

// DatasetSourceFunc adapts a function to DatasetSource.
type DatasetSourceFunc func(ctx context.Context) (*Dataset, error)

func (f DatasetSourceFunc) LoadDataset(ctx context.Context) (*Dataset, error) { return f(ctx) }

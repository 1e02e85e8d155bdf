package services

import (
	"context"
	"errors"
	"testing"

	"smartroute-service/internal/domain"
	"smartroute-service/internal/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticSource(ds *ports.Dataset) ports.DatasetSource {
	return ports.DatasetSourceFunc(func(ctx context.Context) (*ports.Dataset, error) {
		return ds, nil
	})
}

func TestPlanTripsFromSource(t *testing.T) {
	depot, shipments := randomDataset(7, 30)
	ds := &ports.Dataset{Depot: depot, Shipments: shipments, Vehicles: randomRoster()}

	plan, err := PlanTrips(context.Background(), PlanTripsRequest{}, staticSource(ds))
	require.NoError(t, err)

	_, err = uuid.Parse(plan.ID)
	assert.NoError(t, err)
	assert.False(t, plan.CreatedAt.IsZero())
	assert.Equal(t, depot, plan.Depot)
	assert.True(t, plan.Complete())
	assert.NotEmpty(t, plan.Trips)

	total := 0
	for _, n := range plan.TripsByVehicle() {
		total += n
	}
	assert.Equal(t, len(plan.Trips), total)
}

func TestPlanTripsInlineDatasetWins(t *testing.T) {
	failing := ports.DatasetSourceFunc(func(ctx context.Context) (*ports.Dataset, error) {
		return nil, errors.New("should not be called")
	})
	ds := &ports.Dataset{
		Depot:     domain.Coordinates{Lat: 0, Lon: 0},
		Shipments: shipmentsAt(domain.Coordinates{Lat: 0.001, Lon: 0}),
		Vehicles:  []domain.RawVehicle{{Type: "X", Capacity: "2", MaxRadiusKm: "10", Count: "1"}},
	}

	plan, err := PlanTrips(context.Background(), PlanTripsRequest{Dataset: ds, Priority: []domain.VehicleType{"X"}}, failing)
	require.NoError(t, err)
	require.Len(t, plan.Trips, 1)
}

func TestPlanTripsUnassignableKeepsPlan(t *testing.T) {
	ds := &ports.Dataset{
		Depot:     domain.Coordinates{Lat: 0, Lon: 0},
		Shipments: shipmentsAt(domain.Coordinates{Lat: 0.001, Lon: 0}, domain.Coordinates{Lat: 2, Lon: 0}),
		Vehicles:  []domain.RawVehicle{{Type: "X", Capacity: "2", MaxRadiusKm: "10", Count: "Any"}},
	}

	plan, err := PlanTrips(context.Background(), PlanTripsRequest{Dataset: ds, Priority: []domain.VehicleType{"X"}}, nil)

	var unErr *domain.UnassignableShipmentsError
	require.True(t, errors.As(err, &unErr))
	require.NotNil(t, plan)
	assert.Len(t, plan.Trips, 1)
	assert.Equal(t, []string{"S2"}, plan.Unassigned)
	assert.False(t, plan.Complete())
}

func TestPlanTripsConfigurationError(t *testing.T) {
	ds := &ports.Dataset{
		Vehicles: []domain.RawVehicle{{Type: "3W", Capacity: "2", MaxRadiusKm: "10", Count: "1"}},
	}

	plan, err := PlanTrips(context.Background(), PlanTripsRequest{Dataset: ds}, nil)

	var cfgErr *domain.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Nil(t, plan)
}

func TestPlanTripsSourceError(t *testing.T) {
	boom := errors.New("workbook missing")
	source := ports.DatasetSourceFunc(func(ctx context.Context) (*ports.Dataset, error) {
		return nil, boom
	})

	_, err := PlanTrips(context.Background(), PlanTripsRequest{}, source)
	assert.ErrorIs(t, err, boom)
}

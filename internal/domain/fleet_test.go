package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRoster() []RawVehicle {
	return []RawVehicle{
		{Type: "4W", Capacity: "Any", MaxRadiusKm: "Any", Count: "Any"},
		{Type: "3W", Capacity: "5", MaxRadiusKm: "15", Count: "50"},
		{Type: "4W-EV", Capacity: "8", MaxRadiusKm: "20", Count: "25"},
	}
}

func TestNormalizeFleetOrdersByPriority(t *testing.T) {
	fleet, err := NormalizeFleet(sampleRoster(), DefaultPriority)
	require.NoError(t, err)

	classes := fleet.Classes()
	require.Len(t, classes, 3)
	assert.Equal(t, ThreeWheeler, classes[0].Type)
	assert.Equal(t, FourWheelerEV, classes[1].Type)
	assert.Equal(t, FourWheeler, classes[2].Type)

	for i, c := range classes {
		assert.Equal(t, i, c.Priority)
	}

	capacity, ok := classes[0].Capacity.Value()
	require.True(t, ok)
	assert.Equal(t, 5, capacity)

	assert.True(t, classes[2].Capacity.IsUnbounded())
	assert.True(t, classes[2].MaxRadiusKm.IsUnbounded())
	assert.True(t, classes[2].Available.IsUnbounded())
}

func TestNormalizeFleetMissingPriorityType(t *testing.T) {
	roster := []RawVehicle{{Type: "3W", Capacity: "5", MaxRadiusKm: "15", Count: "1"}}

	_, err := NormalizeFleet(roster, DefaultPriority)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "want ConfigurationError, got %v", err)
	assert.Equal(t, []VehicleType{FourWheelerEV, FourWheeler}, cfgErr.MissingTypes)
}

func TestNormalizeFleetIgnoresUnlistedTypes(t *testing.T) {
	roster := append(sampleRoster(), RawVehicle{Type: "2W", Capacity: "2", MaxRadiusKm: "5", Count: "3"})

	fleet, err := NormalizeFleet(roster, DefaultPriority)
	require.NoError(t, err)

	_, ok := fleet.Availability("2W")
	assert.False(t, ok)
	assert.Len(t, fleet.Classes(), 3)
}

func TestNormalizeFleetRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		row  RawVehicle
	}{
		{"negative capacity", RawVehicle{Type: "3W", Capacity: "-1", MaxRadiusKm: "15", Count: "1"}},
		{"zero capacity", RawVehicle{Type: "3W", Capacity: "0", MaxRadiusKm: "15", Count: "1"}},
		{"fractional capacity", RawVehicle{Type: "3W", Capacity: "2.5", MaxRadiusKm: "15", Count: "1"}},
		{"text radius", RawVehicle{Type: "3W", Capacity: "2", MaxRadiusKm: "far", Count: "1"}},
		{"negative count", RawVehicle{Type: "3W", Capacity: "2", MaxRadiusKm: "15", Count: "-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeFleet([]RawVehicle{tt.row}, []VehicleType{ThreeWheeler})

			var inErr *InvalidInputError
			assert.True(t, errors.As(err, &inErr), "want InvalidInputError, got %v", err)
		})
	}
}

func TestNormalizeFleetRejectsDuplicateTypes(t *testing.T) {
	roster := []RawVehicle{
		{Type: "3W", Capacity: "5", MaxRadiusKm: "15", Count: "1"},
		{Type: " 3W ", Capacity: "6", MaxRadiusKm: "15", Count: "1"},
	}

	_, err := NormalizeFleet(roster, []VehicleType{ThreeWheeler})

	var inErr *InvalidInputError
	assert.True(t, errors.As(err, &inErr))
}

func TestFleetDecrement(t *testing.T) {
	roster := []RawVehicle{
		{Type: "3W", Capacity: "5", MaxRadiusKm: "15", Count: "1"},
		{Type: "4W", Capacity: "Any", MaxRadiusKm: "Any", Count: "unlimited"},
	}
	fleet, err := NormalizeFleet(roster, []VehicleType{ThreeWheeler, FourWheeler})
	require.NoError(t, err)

	require.NoError(t, fleet.Decrement(ThreeWheeler))
	avail, _ := fleet.Availability(ThreeWheeler)
	assert.True(t, avail.Exhausted())

	// an exhausted class never goes below zero
	assert.Error(t, fleet.Decrement(ThreeWheeler))
	avail, _ = fleet.Availability(ThreeWheeler)
	n, _ := avail.Value()
	assert.Equal(t, 0, n)

	for i := 0; i < 100; i++ {
		require.NoError(t, fleet.Decrement(FourWheeler))
	}
	avail, _ = fleet.Availability(FourWheeler)
	assert.True(t, avail.IsUnbounded())

	assert.Error(t, fleet.Decrement("bus"))
}

func TestFleetClassesAreSnapshots(t *testing.T) {
	fleet, err := NormalizeFleet(sampleRoster(), DefaultPriority)
	require.NoError(t, err)

	classes := fleet.Classes()
	classes[0].Available = Bounded(0)

	avail, _ := fleet.Availability(ThreeWheeler)
	n, _ := avail.Value()
	assert.Equal(t, 50, n)
}

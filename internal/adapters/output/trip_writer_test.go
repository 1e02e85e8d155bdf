package output

import (
	"bytes"
	"encoding/csv"
	"testing"

	"smartroute-service/internal/domain"
	"smartroute-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var (
	_ ports.TripWriter = CSVTripWriter{}
	_ ports.TripWriter = XLSXTripWriter{}
)

func testPlan() *domain.Plan {
	return &domain.Plan{
		ID: "p1",
		Trips: []domain.Trip{
			{
				TripID:      1,
				VehicleType: domain.ThreeWheeler,
				Stops: []domain.TripStop{
					{ShipmentID: "306", Location: domain.Coordinates{Lat: 19.1113, Lon: 72.8411}, Timeslot: "06:00-06:30", DepotDistanceKm: 5.59},
					{ShipmentID: "307", Location: domain.Coordinates{Lat: 19.1076, Lon: 72.8445}, DepotDistanceKm: 5.03},
				},
				MSTDistanceKm:   6.1,
				TripTimeMinutes: 50.5,
				Utilization:     domain.Utilization{Percent: 40},
			},
			{
				TripID:          2,
				VehicleType:     domain.FourWheeler,
				Stops:           []domain.TripStop{{ShipmentID: "308"}},
				MSTDistanceKm:   3.9,
				TripTimeMinutes: 29.5,
				Utilization:     domain.Utilization{Unbounded: true},
			},
		},
		Unassigned: []string{"309", "310"},
	}
}

func TestCSVTripWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSVTripWriter{}.WriteTrips(&buf, testPlan()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"Trip_ID", "Shipments", "Vehicle_Type", "MST_Distance", "Trip_Time", "Capacity_Utilization"},
		{"1", "306, 307", "3W", "6.10", "50.50", "40.00"},
		{"2", "308", "4W", "3.90", "29.50", "N/A"},
	}, records)
}

func TestCSVTripWriterEmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSVTripWriter{}.WriteTrips(&buf, &domain.Plan{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)

	require.Error(t, CSVTripWriter{}.WriteTrips(&buf, nil))
}

func TestXLSXTripWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSXTripWriter{}.WriteTrips(&buf, testPlan()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{TripsSheet, TripStopsSheet, UnassignedSheet}, f.GetSheetList())

	trips, err := f.GetRows(TripsSheet)
	require.NoError(t, err)
	require.Len(t, trips, 3)
	assert.Equal(t, tripHeader, trips[0])
	assert.Equal(t, []string{"1", "306, 307", "3W", "6.1", "50.5", "40"}, trips[1])
	assert.Equal(t, "N/A", trips[2][5])

	stops, err := f.GetRows(TripStopsSheet)
	require.NoError(t, err)
	require.Len(t, stops, 4)
	assert.Equal(t, []string{"1", "1", "306", "19.1113", "72.8411", "06:00-06:30", "5.59"}, stops[1])
	assert.Equal(t, "2", stops[2][1])

	unassigned, err := f.GetRows(UnassignedSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Shipment_ID"}, {"309"}, {"310"}}, unassigned)
}

func TestXLSXTripWriterCompletePlanHasNoUnassignedSheet(t *testing.T) {
	plan := testPlan()
	plan.Unassigned = nil

	var buf bytes.Buffer
	require.NoError(t, XLSXTripWriter{}.WriteTrips(&buf, plan))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{TripsSheet, TripStopsSheet}, f.GetSheetList())
}

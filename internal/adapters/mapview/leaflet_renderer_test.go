package mapview

import (
	"bytes"
	"strings"
	"testing"

	"smartroute-service/internal/config"
	"smartroute-service/internal/domain"
	"smartroute-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.MapRenderer = (*LeafletRenderer)(nil)

func TestLeafletRendererColoursTripsByVehicle(t *testing.T) {
	plan := &domain.Plan{
		ID:    "plan-1",
		Depot: domain.Coordinates{Lat: 19.075887, Lon: 72.877911},
		Trips: []domain.Trip{
			{TripID: 1, VehicleType: domain.ThreeWheeler, Stops: []domain.TripStop{{ShipmentID: "306", Location: domain.Coordinates{Lat: 19.1113, Lon: 72.8411}}}},
			{TripID: 2, VehicleType: "2W", Stops: []domain.TripStop{{ShipmentID: "</script>", Location: domain.Coordinates{Lat: 19.1, Lon: 72.85}}}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewLeafletRenderer(config.DefaultFleetPolicy()).RenderMap(&buf, plan))
	page := buf.String()

	assert.Contains(t, page, "<title>Trip plan plan-1</title>")
	assert.Contains(t, page, `"color":"red"`)
	assert.Contains(t, page, `"color":"green"`)
	assert.Contains(t, page, `"zoom":12`)
	assert.Contains(t, page, `[19.075887,72.877911]`)
	// Unknown vehicle types fall back to the default colour.
	assert.Contains(t, page, `"vehicle_type":"2W","color":"blue"`)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("</script>\n</body>")))
	assert.NotContains(t, page, `"id":"</script>"`)
}

func TestLeafletRendererUsesOrder(t *testing.T) {
	plan := &domain.Plan{
		ID: "p",
		Trips: []domain.Trip{{TripID: 1, VehicleType: domain.FourWheeler, Stops: []domain.TripStop{
			{ShipmentID: "a"}, {ShipmentID: "b"},
		}}},
	}
	r := NewLeafletRenderer(config.DefaultFleetPolicy())
	r.Order = func(_ domain.Coordinates, stops []domain.TripStop) []domain.TripStop {
		return []domain.TripStop{stops[1], stops[0]}
	}

	var buf bytes.Buffer
	require.NoError(t, r.RenderMap(&buf, plan))
	page := buf.String()
	assert.Less(t, strings.Index(page, `"id":"b"`), strings.Index(page, `"id":"a"`))
}

func TestLeafletRendererKeepsSelectionOrderWithoutOrder(t *testing.T) {
	plan := &domain.Plan{
		ID: "p",
		Trips: []domain.Trip{{TripID: 1, VehicleType: domain.FourWheeler, Stops: []domain.TripStop{
			{ShipmentID: "far", Location: domain.Coordinates{Lat: 0.02}},
			{ShipmentID: "near", Location: domain.Coordinates{Lat: 0.01}},
		}}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewLeafletRenderer(config.DefaultFleetPolicy()).RenderMap(&buf, plan))
	page := buf.String()
	assert.Less(t, strings.Index(page, `"id":"far"`), strings.Index(page, `"id":"near"`))
}

func TestLeafletRendererNilPlan(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, NewLeafletRenderer(config.DefaultFleetPolicy()).RenderMap(&buf, nil))
}

package output

import (
	"smartroute-service/internal/domain"
	"strconv"
	"strings"
)

// Column layout of the trip table, shared by every tabular format.
var tripHeader = []string{
	"Trip_ID",
	"Shipments",
	"Vehicle_Type",
	"MST_Distance",
	"Trip_Time",
	"Capacity_Utilization",
}

var stopHeader = []string{
	"Trip_ID",
	"Stop",
	"Shipment_ID",
	"Latitude",
	"Longitude",
	"Delivery_Timeslot",
	"Depot_Distance",
}

var unassignedHeader = []string{"Shipment_ID"}

func formatKm(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func tripRecord(t domain.Trip) []string {
	return []string{
		strconv.Itoa(t.TripID),
		strings.Join(t.ShipmentIDs(), ", "),
		string(t.VehicleType),
		formatKm(t.MSTDistanceKm),
		formatKm(t.TripTimeMinutes),
		t.Utilization.String(),
	}
}

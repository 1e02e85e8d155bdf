package dto

type ShipmentResponse struct {
	ShipmentID string  `json:"shipment_id"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Timeslot   string  `json:"timeslot"`
}

type VehicleResponse struct {
	VehicleType string `json:"vehicle_type"`
	Capacity    string `json:"capacity"`
	MaxRadiusKm string `json:"max_radius_km"`
	Available   string `json:"available"`
	Priority    int    `json:"priority"`
}

type ListShipmentsResponse struct {
	Depot     PointDTO           `json:"depot"`
	Shipments []ShipmentResponse `json:"shipments"`
	Vehicles  []VehicleResponse  `json:"vehicles"`
}

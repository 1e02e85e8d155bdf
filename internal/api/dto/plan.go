package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// PlanRequest optionally carries the planning input inline. When Dataset is
// nil the server's configured source is used.
type PlanRequest struct {
	Priority []string        `json:"priority"`
	Dataset  *DatasetRequest `json:"dataset"`
}

type DatasetRequest struct {
	Depot     PointRequest      `json:"depot"`
	Shipments []ShipmentRequest `json:"shipments"`
	Vehicles  []VehicleRequest  `json:"vehicles"`
}

type PointDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PointRequest uses pointers so an omitted coordinate is not read as 0.
type PointRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type ShipmentRequest struct {
	ID       string   `json:"id"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	Timeslot string   `json:"timeslot"`
}

// VehicleRequest limits accept a JSON number or a sentinel string such as "Any".
type VehicleRequest struct {
	Type        string   `json:"type"`
	Capacity    RawLimit `json:"capacity"`
	MaxRadiusKm RawLimit `json:"max_radius_km"`
	Count       RawLimit `json:"count"`
}

// RawLimit keeps a number or string limit as text for fleet normalization.
type RawLimit string

func (l *RawLimit) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = RawLimit(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("limit must be a number or string: %w", err)
	}
	*l = RawLimit(n.String())
	return nil
}

type StopResponse struct {
	ShipmentID      string  `json:"shipment_id"`
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
	Timeslot        string  `json:"timeslot,omitempty"`
	DepotDistanceKm float64 `json:"depot_distance_km"`
}

type TripResponse struct {
	TripID          int            `json:"trip_id"`
	Shipments       []string       `json:"shipments"`
	VehicleType     string         `json:"vehicle_type"`
	MSTDistanceKm   float64        `json:"mst_distance_km"`
	TripTimeMinutes float64        `json:"trip_time_minutes"`
	Utilization     any            `json:"capacity_utilization"` // percent, or "N/A"
	Stops           []StopResponse `json:"stops"`
}

type PlanResponse struct {
	ID         string         `json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	Depot      PointDTO       `json:"depot"`
	Passes     int            `json:"passes"`
	Complete   bool           `json:"complete"`
	Trips      []TripResponse `json:"trips"`
	Unassigned []string       `json:"unassigned"`
}

// UnassignableResponse is returned with 422 when some shipments could not be
// placed. The partial plan has been saved and can still be downloaded.
type UnassignableResponse struct {
	Error      string       `json:"error"`
	Unassigned []string     `json:"unassigned"`
	Plan       PlanResponse `json:"plan"`
}

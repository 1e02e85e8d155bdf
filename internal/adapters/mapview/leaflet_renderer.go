package mapview

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"smartroute-service/internal/config"
	"smartroute-service/internal/domain"
)

//go:embed templates/trips.html.tmpl
var templateFS embed.FS

var tripsTemplate = template.Must(template.ParseFS(templateFS, "templates/trips.html.tmpl"))

// LeafletRenderer draws a plan as a Leaflet page: the depot, every stop and a
// depot-to-depot polyline per trip, coloured by vehicle type.
type LeafletRenderer struct {
	Policy config.FleetPolicy
	// Order sequences a trip's stops for the polyline. Nil keeps selection order.
	Order func(depot domain.Coordinates, stops []domain.TripStop) []domain.TripStop
}

func NewLeafletRenderer(policy config.FleetPolicy) *LeafletRenderer {
	return &LeafletRenderer{Policy: policy}
}

type mapView struct {
	Zoom  int        `json:"zoom"`
	Depot depotView  `json:"depot"`
	Trips []tripView `json:"trips"`
}

type depotView struct {
	Coordinates [2]float64 `json:"coordinates"`
	Color       string     `json:"color"`
}

type tripView struct {
	ID          int        `json:"id"`
	VehicleType string     `json:"vehicle_type"`
	Color       string     `json:"color"`
	Stops       []stopView `json:"stops"`
}

type stopView struct {
	ID          string     `json:"id"`
	Coordinates [2]float64 `json:"coordinates"`
}

func (r *LeafletRenderer) RenderMap(w io.Writer, plan *domain.Plan) error {
	if plan == nil {
		return errors.New("render map: plan is nil")
	}

	view := mapView{
		Zoom:  r.Policy.Zoom,
		Depot: depotView{Coordinates: plan.Depot.LatLon(), Color: r.Policy.DepotColor},
		Trips: make([]tripView, 0, len(plan.Trips)),
	}
	for _, t := range plan.Trips {
		tv := tripView{
			ID:          t.TripID,
			VehicleType: string(t.VehicleType),
			Color:       r.Policy.ColorFor(t.VehicleType),
			Stops:       make([]stopView, 0, len(t.Stops)),
		}
		stops := t.Stops
		if r.Order != nil {
			stops = r.Order(plan.Depot, stops)
		}
		for _, s := range stops {
			tv.Stops = append(tv.Stops, stopView{ID: s.ShipmentID, Coordinates: s.Location.LatLon()})
		}
		view.Trips = append(view.Trips, tv)
	}

	data := struct {
		PlanID string
		View   mapView
	}{PlanID: plan.ID, View: view}

	if err := tripsTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render map: plan %s: %w", plan.ID, err)
	}
	return nil
}

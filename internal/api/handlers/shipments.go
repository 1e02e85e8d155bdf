package handlers

import (
	"log"
	"net/http"
	"smartroute-service/internal/api/dto"
	"smartroute-service/internal/domain"
	"smartroute-service/internal/platform/obs"
	"smartroute-service/internal/ports"
)

// ShipmentHandler exposes the current planning input read-only, so callers
// can check what the next POST /plans will work from.
type ShipmentHandler struct {
	Source   ports.DatasetSource
	Priority []domain.VehicleType
}

func (h *ShipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ds, err := h.Source.LoadDataset(r.Context())
	if err != nil {
		writePlanError(w, r, "list shipments", err)
		return
	}

	res := dto.ListShipmentsResponse{
		Depot:     dto.PointDTO{Lat: ds.Depot.Lat, Lon: ds.Depot.Lon},
		Shipments: make([]dto.ShipmentResponse, 0, len(ds.Shipments)),
		Vehicles:  []dto.VehicleResponse{},
	}
	for _, s := range ds.Shipments {
		res.Shipments = append(res.Shipments, dto.ShipmentResponse{
			ShipmentID: s.ID,
			Lat:        s.Location.Lat,
			Lon:        s.Location.Lon,
			Timeslot:   s.Timeslot,
		})
	}

	priority := h.Priority
	if len(priority) == 0 {
		priority = domain.DefaultPriority
	}

	// The roster is shown normalized; a roster that cannot plan is still listed
	// so the shipments remain visible.
	fleet, err := domain.NormalizeFleet(ds.Vehicles, priority)
	if err != nil {
		log.Printf("req_id=%s list shipments: fleet not plannable: %v", obs.RequestID(r.Context()), err)
		writeJSON(w, r, http.StatusOK, res)
		return
	}
	for _, c := range fleet.Classes() {
		res.Vehicles = append(res.Vehicles, dto.VehicleResponse{
			VehicleType: string(c.Type),
			Capacity:    c.Capacity.String(),
			MaxRadiusKm: c.MaxRadiusKm.String(),
			Available:   c.Available.String(),
			Priority:    c.Priority,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

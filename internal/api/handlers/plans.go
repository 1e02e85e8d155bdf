package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"smartroute-service/internal/api/dto"
	"smartroute-service/internal/domain"
	"smartroute-service/internal/platform/obs"
	"smartroute-service/internal/ports"
	"smartroute-service/internal/services"
	"strings"
	"time"
)

// PlanHandler composes trips and serves the latest plan in its output forms.
type PlanHandler struct {
	Source    ports.DatasetSource
	Store     ports.PlanStore
	Publisher ports.PlanPublisher // optional
	Renderer  ports.MapRenderer
	// Writers maps a download format name to its writer; DefaultFormat picks one
	// when the request names none.
	Writers       map[string]ports.TripWriter
	DefaultFormat string
	Priority      []domain.VehicleType
	Timeout       time.Duration
}

// Create composes a plan from the configured source or an inline dataset,
// saves it as the latest plan and announces it.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	// An empty body plans from the configured source.
	if err := dec.Decode(&req); err != nil && err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	svcReq := services.PlanTripsRequest{Priority: h.Priority}
	if len(req.Priority) > 0 {
		svcReq.Priority = make([]domain.VehicleType, 0, len(req.Priority))
		for _, p := range req.Priority {
			svcReq.Priority = append(svcReq.Priority, domain.VehicleType(strings.TrimSpace(p)))
		}
	}
	if req.Dataset != nil {
		ds, err := req.Dataset.ToDataset()
		if err != nil {
			writePlanError(w, r, "create plan", err)
			return
		}
		svcReq.Dataset = ds
	}

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	plan, err := services.PlanTrips(ctx, svcReq, h.Source)

	var unassignable *domain.UnassignableShipmentsError
	if err != nil && !errors.As(err, &unassignable) {
		writePlanError(w, r, "create plan", err)
		return
	}

	if err := h.Store.SavePlan(ctx, plan); err != nil {
		log.Printf("req_id=%s save plan failed: %v", obs.RequestID(ctx), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.Publisher != nil {
		if err := h.Publisher.PublishPlan(ctx, plan); err != nil {
			log.Printf("req_id=%s publish plan failed: plan=%s err=%v", obs.RequestID(ctx), plan.ID, err)
		}
	}

	res := dto.NewPlanResponse(plan)
	if unassignable != nil {
		writeJSON(w, r, http.StatusUnprocessableEntity, dto.UnassignableResponse{
			Error:      unassignable.Error(),
			Unassigned: unassignable.ShipmentIDs,
			Plan:       res,
		})
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Latest returns the most recently saved plan.
func (h *PlanHandler) Latest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	plan, err := h.Store.LatestPlan(r.Context())
	if err != nil {
		writePlanError(w, r, "latest plan", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewPlanResponse(plan))
}

// Download streams the latest plan as a file attachment (?format=xlsx|csv).
func (h *PlanHandler) Download(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = h.DefaultFormat
	}
	writer, ok := h.Writers[format]
	if !ok {
		writeError(w, r, http.StatusBadRequest, "unsupported format: "+format)
		return
	}

	plan, err := h.Store.LatestPlan(r.Context())
	if err != nil {
		writePlanError(w, r, "download plan", err)
		return
	}

	// Buffer the file so a writer failure can still become a 500.
	var buf bytes.Buffer
	if err := writer.WriteTrips(&buf, plan); err != nil {
		writePlanError(w, r, "download plan", err)
		return
	}

	w.Header().Set("Content-Type", writer.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+writer.FileName()+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("download write failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

// Map renders the latest plan as an HTML map.
func (h *PlanHandler) Map(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	plan, err := h.Store.LatestPlan(r.Context())
	if err != nil {
		writePlanError(w, r, "plan map", err)
		return
	}

	var buf bytes.Buffer
	if err := h.Renderer.RenderMap(&buf, plan); err != nil {
		writePlanError(w, r, "plan map", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("map write failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

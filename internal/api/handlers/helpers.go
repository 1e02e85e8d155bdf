package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"smartroute-service/internal/domain"
	"smartroute-service/internal/platform/obs"
	"smartroute-service/internal/ports"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writePlanError maps planning errors onto HTTP statuses. Caller mistakes are
// reported verbatim; anything else is logged and hidden.
func writePlanError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var (
		inErr  *domain.InvalidInputError
		cfgErr *domain.ConfigurationError
	)

	switch {
	case errors.As(err, &inErr):
		writeError(w, r, http.StatusBadRequest, inErr.Error())
	case errors.As(err, &cfgErr):
		writeError(w, r, http.StatusUnprocessableEntity, cfgErr.Error())
	case errors.Is(err, ports.ErrPlanNotFound):
		writeError(w, r, http.StatusNotFound, "no plan has been composed yet")
	case errors.Is(err, context.DeadlineExceeded):
		log.Printf("req_id=%s %s timed out: %v", obs.RequestID(r.Context()), op, err)
		writeError(w, r, http.StatusServiceUnavailable, "planning timed out, try again")
	default:
		log.Printf("req_id=%s %s failed: %v", obs.RequestID(r.Context()), op, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

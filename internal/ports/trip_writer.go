package ports

import (
	"io"
	"smartroute-service/internal/domain"
)

// Contract for serializing a plan into a downloadable tabular file.
type TripWriter interface {
	ContentType() string
	FileName() string
	// Write one row per trip, plus any format-specific detail.
	WriteTrips(w io.Writer, plan *domain.Plan) error
}

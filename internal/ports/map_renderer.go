package ports

import (
	"io"
	"smartroute-service/internal/domain"
)

// Contract for drawing a plan's trips around the depot.
type MapRenderer interface {
	RenderMap(w io.Writer, plan *domain.Plan) error
}

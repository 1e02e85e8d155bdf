package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"smartroute-service/internal/domain"
)

// CSVTripWriter writes one row per trip in the trip table layout.
type CSVTripWriter struct{}

func (CSVTripWriter) ContentType() string { return "text/csv; charset=utf-8" }

func (CSVTripWriter) FileName() string { return "Trip_Output.csv" }

func (CSVTripWriter) WriteTrips(w io.Writer, plan *domain.Plan) error {
	if plan == nil {
		return errors.New("write trips csv: plan is nil")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(tripHeader); err != nil {
		return fmt.Errorf("write trips csv: header: %w", err)
	}
	for _, t := range plan.Trips {
		if err := cw.Write(tripRecord(t)); err != nil {
			return fmt.Errorf("write trips csv: trip %d: %w", t.TripID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write trips csv: flush: %w", err)
	}
	return nil
}

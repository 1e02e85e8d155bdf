package output

import (
	"errors"
	"fmt"
	"io"
	"smartroute-service/internal/domain"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	TripsSheet      = "Trips"
	TripStopsSheet  = "Trip_Stops"
	UnassignedSheet = "Unassigned"
)

// XLSXTripWriter produces Trip_Output.xlsx: the trip table, a per-stop detail
// sheet and, for incomplete plans, the stranded shipments.
type XLSXTripWriter struct{}

func (XLSXTripWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXTripWriter) FileName() string { return "Trip_Output.xlsx" }

func (XLSXTripWriter) WriteTrips(w io.Writer, plan *domain.Plan) error {
	if plan == nil {
		return errors.New("write trips xlsx: plan is nil")
	}

	f := excelize.NewFile()
	defer f.Close()

	// The default sheet is renamed rather than deleted so the workbook is never empty.
	if err := f.SetSheetName("Sheet1", TripsSheet); err != nil {
		return fmt.Errorf("write trips xlsx: rename sheet: %w", err)
	}

	trips := make([][]any, 0, len(plan.Trips)+1)
	trips = append(trips, headerRow(tripHeader))
	for _, t := range plan.Trips {
		var util any = t.Utilization.Percent
		if t.Utilization.Unbounded {
			util = domain.UtilizationNA
		}
		trips = append(trips, []any{
			t.TripID,
			strings.Join(t.ShipmentIDs(), ", "),
			string(t.VehicleType),
			t.MSTDistanceKm,
			t.TripTimeMinutes,
			util,
		})
	}
	if err := writeSheet(f, TripsSheet, trips); err != nil {
		return err
	}

	stops := [][]any{headerRow(stopHeader)}
	for _, t := range plan.Trips {
		for i, s := range t.Stops {
			stops = append(stops, []any{
				t.TripID,
				i + 1,
				s.ShipmentID,
				s.Location.Lat,
				s.Location.Lon,
				s.Timeslot,
				s.DepotDistanceKm,
			})
		}
	}
	if _, err := f.NewSheet(TripStopsSheet); err != nil {
		return fmt.Errorf("write trips xlsx: add sheet %s: %w", TripStopsSheet, err)
	}
	if err := writeSheet(f, TripStopsSheet, stops); err != nil {
		return err
	}

	if len(plan.Unassigned) > 0 {
		rows := [][]any{headerRow(unassignedHeader)}
		for _, id := range plan.Unassigned {
			rows = append(rows, []any{id})
		}
		if _, err := f.NewSheet(UnassignedSheet); err != nil {
			return fmt.Errorf("write trips xlsx: add sheet %s: %w", UnassignedSheet, err)
		}
		if err := writeSheet(f, UnassignedSheet, rows); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write trips xlsx: %w", err)
	}
	return nil
}

func headerRow(ss []string) []any {
	row := make([]any, len(ss))
	for i, s := range ss {
		row[i] = s
	}
	return row
}

func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	for i := range rows {
		ref := "A" + strconv.Itoa(i+1)
		if err := f.SetSheetRow(sheet, ref, &rows[i]); err != nil {
			return fmt.Errorf("write trips xlsx: sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"smartroute-service/internal/adapters/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, shipments [][]any) string {
	t.Helper()

	sheets := map[string][][]any{
		repositories.DepotSheet: {
			{"Latitute", "Longitude"},
			{0.0, 0.0},
		},
		repositories.ShipmentsSheet: append([][]any{
			{"Shipment ID", "Latitude", "Longitude", "Delivery Timeslot"},
		}, shipments...),
		repositories.VehiclesSheet: {
			{"Vehicle Type", "Number", "Shipments_Capacity", "Max Trip Radius (in KM)"},
			{"3W", 2, 2, 10},
			{"4W-EV", 1, 6, 20},
			{"4W", 1, "Any", 30},
		},
	}

	f := excelize.NewFile()
	defer f.Close()
	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i := range rows {
			ref, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, ref, &rows[i]))
		}
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))

	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestRunWritesTripFile(t *testing.T) {
	in := writeWorkbook(t, [][]any{
		{1, 0.001, 0.0, "09:00-09:30"},
		{2, 0.002, 0.0, "09:00-09:30"},
		{3, 0.0, 0.002, "10:00-10:30"},
	})
	out := t.TempDir()

	code, err := run(in, out, "xlsx", "", true, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	assert.FileExists(t, filepath.Join(out, "Trip_Output.xlsx"))
	assert.FileExists(t, filepath.Join(out, "trip_visualization.html"))
}

func TestRunReportsUnassignable(t *testing.T) {
	in := writeWorkbook(t, [][]any{
		{1, 0.001, 0.0, ""},
		{2, 1.0, 0.0, ""},
	})
	out := t.TempDir()

	code, err := run(in, out, "csv", "", false, time.Minute)
	require.Error(t, err)
	assert.Equal(t, exitUnassignable, code)

	data, err := os.ReadFile(filepath.Join(out, "Trip_Output.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "1,1,3W,")
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	code, err := run("unused.xlsx", t.TempDir(), "pdf", "", false, time.Minute)
	require.Error(t, err)
	assert.Equal(t, 1, code)
}

func TestRunMissingWorkbook(t *testing.T) {
	code, err := run(filepath.Join(t.TempDir(), "missing.xlsx"), t.TempDir(), "xlsx", "", false, time.Minute)
	require.Error(t, err)
	assert.Equal(t, 1, code)
}

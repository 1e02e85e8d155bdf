package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"smartroute-service/internal/domain"
	"smartroute-service/internal/platform/obs"
	"smartroute-service/internal/ports"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet and column names of the planning workbook.
const (
	ShipmentsSheet = "Shipments_Data"
	VehiclesSheet  = "Vehicle_Information"
	DepotSheet     = "Store Location"

	ColShipmentID = "Shipment ID"
	ColLatitude   = "Latitude"
	ColLongitude  = "Longitude"
	ColTimeslot   = "Delivery Timeslot"

	ColVehicleType = "Vehicle Type"
	ColCount       = "Number"
	ColCapacity    = "Shipments_Capacity"
	ColMaxRadius   = "Max Trip Radius (in KM)"
)

// Older workbooks spell the depot latitude header this way.
const latitudeTypo = "Latitute"

// WorkbookSource reads the planning dataset from an .xlsx workbook on disk.
// The file is re-read on every load so edits are picked up without a restart.
type WorkbookSource struct {
	Path string
}

func NewWorkbookSource(path string) *WorkbookSource {
	return &WorkbookSource{Path: path}
}

func (s *WorkbookSource) LoadDataset(ctx context.Context) (_ *ports.Dataset, err error) {
	defer obs.Time(ctx, "workbook.LoadDataset")(&err)

	if strings.TrimSpace(s.Path) == "" {
		return nil, errors.New("load workbook: path must not be empty")
	}

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("load workbook: open %q: %w", s.Path, err)
	}
	defer f.Close()

	return readDataset(f)
}

// ReadWorkbook parses a workbook from r.
func ReadWorkbook(r io.Reader) (*ports.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	defer f.Close()

	return readDataset(f)
}

func readDataset(f *excelize.File) (*ports.Dataset, error) {
	depot, err := readDepot(f)
	if err != nil {
		return nil, err
	}

	shipments, err := readShipments(f)
	if err != nil {
		return nil, err
	}

	vehicles, err := readVehicles(f)
	if err != nil {
		return nil, err
	}

	return &ports.Dataset{Depot: depot, Shipments: shipments, Vehicles: vehicles}, nil
}

// sheetTable is a sheet's data rows addressed by header name.
type sheetTable struct {
	sheet string
	cols  map[string]int
	rows  [][]string
}

func readTable(f *excelize.File, sheet string) (*sheetTable, error) {
	// Raw values: display formats such as "0.00" must not truncate coordinates.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("load workbook: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("load workbook: sheet %q has no header row", sheet)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	data := make([][]string, 0, len(rows)-1)
	for _, r := range rows[1:] {
		if isBlankRow(r) {
			continue
		}
		data = append(data, r)
	}

	return &sheetTable{sheet: sheet, cols: cols, rows: data}, nil
}

func isBlankRow(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// column returns the index of the first header found among names.
func (t *sheetTable) column(names ...string) (int, error) {
	for _, n := range names {
		if i, ok := t.cols[strings.ToLower(n)]; ok {
			return i, nil
		}
	}
	return 0, fmt.Errorf("load workbook: sheet %q: missing column %q", t.sheet, names[0])
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseCoordinates(record, lat, lon string) (domain.Coordinates, error) {
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return domain.Coordinates{}, &domain.InvalidInputError{Record: record, Field: "latitude", Reason: fmt.Sprintf("not a number: %q", lat)}
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return domain.Coordinates{}, &domain.InvalidInputError{Record: record, Field: "longitude", Reason: fmt.Sprintf("not a number: %q", lon)}
	}

	c := domain.Coordinates{Lat: la, Lon: lo}
	if err := c.Validate(); err != nil {
		var inErr *domain.InvalidInputError
		if errors.As(err, &inErr) {
			inErr.Record = record
		}
		return domain.Coordinates{}, err
	}
	return c, nil
}

func readDepot(f *excelize.File) (domain.Coordinates, error) {
	t, err := readTable(f, DepotSheet)
	if err != nil {
		return domain.Coordinates{}, err
	}

	latCol, err := t.column(ColLatitude, latitudeTypo)
	if err != nil {
		return domain.Coordinates{}, err
	}
	lonCol, err := t.column(ColLongitude)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if len(t.rows) == 0 {
		return domain.Coordinates{}, fmt.Errorf("load workbook: sheet %q has no depot row", DepotSheet)
	}

	row := t.rows[0]
	return parseCoordinates("depot", cell(row, latCol), cell(row, lonCol))
}

func readShipments(f *excelize.File) ([]domain.Shipment, error) {
	t, err := readTable(f, ShipmentsSheet)
	if err != nil {
		return nil, err
	}

	idCol, err := t.column(ColShipmentID)
	if err != nil {
		return nil, err
	}
	latCol, err := t.column(ColLatitude, latitudeTypo)
	if err != nil {
		return nil, err
	}
	lonCol, err := t.column(ColLongitude)
	if err != nil {
		return nil, err
	}
	slotCol, err := t.column(ColTimeslot)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Shipment, 0, len(t.rows))
	for i, row := range t.rows {
		id := cell(row, idCol)
		if id == "" {
			return nil, &domain.InvalidInputError{Record: fmt.Sprintf("shipment row %d", i+2), Field: "id", Reason: "must not be empty"}
		}

		loc, err := parseCoordinates(fmt.Sprintf("shipment %q", id), cell(row, latCol), cell(row, lonCol))
		if err != nil {
			return nil, err
		}

		out = append(out, domain.Shipment{ID: id, Location: loc, Timeslot: cell(row, slotCol)})
	}

	return out, nil
}

func readVehicles(f *excelize.File) ([]domain.RawVehicle, error) {
	t, err := readTable(f, VehiclesSheet)
	if err != nil {
		return nil, err
	}

	typeCol, err := t.column(ColVehicleType)
	if err != nil {
		return nil, err
	}
	countCol, err := t.column(ColCount)
	if err != nil {
		return nil, err
	}
	capCol, err := t.column(ColCapacity)
	if err != nil {
		return nil, err
	}
	radiusCol, err := t.column(ColMaxRadius)
	if err != nil {
		return nil, err
	}

	out := make([]domain.RawVehicle, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, domain.RawVehicle{
			Type:        domain.VehicleType(cell(row, typeCol)),
			Capacity:    cell(row, capCol),
			MaxRadiusKm: cell(row, radiusCol),
			Count:       cell(row, countCol),
		})
	}

	return out, nil
}

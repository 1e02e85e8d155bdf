package domain

// VehicleType tags a vehicle class in the roster.
type VehicleType string

const (
	ThreeWheeler  VehicleType = "3W"
	FourWheelerEV VehicleType = "4W-EV"
	FourWheeler   VehicleType = "4W"
)

// DefaultPriority dispatches cheaper, greener vehicles first.
var DefaultPriority = []VehicleType{ThreeWheeler, FourWheelerEV, FourWheeler}

// RawVehicle is a roster row as supplied by a loader. Numeric fields are kept
// as text so that the unlimited sentinel survives until normalization.
type RawVehicle struct {
	Type        VehicleType
	Capacity    string
	MaxRadiusKm string
	Count       string
}

// VehicleClass is a normalized roster entry. Available is the only field that
// changes after normalization and is owned by the fleet that holds the class.
type VehicleClass struct {
	Type        VehicleType
	Capacity    Limit[int]
	MaxRadiusKm Limit[float64]
	Available   Limit[int]
	Priority    int
}

package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Validate reports an InvalidInputError when the pair is not a usable WGS-84 position.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || c.Lat < -90 || c.Lat > 90 {
		return &InvalidInputError{Field: "latitude", Reason: fmt.Sprintf("%v is outside [-90, 90]", c.Lat)}
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) || c.Lon < -180 || c.Lon > 180 {
		return &InvalidInputError{Field: "longitude", Reason: fmt.Sprintf("%v is outside [-180, 180]", c.Lon)}
	}
	return nil
}

// Return coordinates as [lat, lon], the order map libraries expect.
func (c Coordinates) LatLon() [2]float64 { return [2]float64{c.Lat, c.Lon} }

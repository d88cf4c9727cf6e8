package domain

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Immutable geographic coordinates in decimal degrees (WGS84).
// Ranges are not checked on construction; call Validate at input boundaries.
type Coordinates struct {
	Lat float64
	Lon float64
}

func NewCoordinates(lat, lon float64) Coordinates {
	return Coordinates{Lat: lat, Lon: lon}
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Point converts to an orb.Point, which is ordered [lon, lat].
func (c Coordinates) Point() orb.Point { return orb.Point{c.Lon, c.Lat} }

func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("validate coordinates: latitude %v out of range [-90, 90]: %w", c.Lat, ErrInvalidCoordinates)
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("validate coordinates: longitude %v out of range [-180, 180]: %w", c.Lon, ErrInvalidCoordinates)
	}
	return nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%g, %g)", c.Lat, c.Lon)
}

package domain

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// A single grid cell: its footprint and the hex identifier derived from the
// footprint's origin (bottom-left) corner.
// Cells are produced by the grid engine and never mutated.
type GridCell struct {
	Surface Surface
	HashID  string
}

func (g GridCell) Origin() Coordinates { return g.Surface.BottomLeft }

func (g GridCell) Center() Coordinates { return g.Surface.Center() }

// Polygon returns the footprint as a closed orb ring.
func (g GridCell) Polygon() orb.Polygon {
	return g.Surface.Bound().ToPolygon()
}

// AreaSquareMeters approximates the footprint area on a spherical earth.
func (g GridCell) AreaSquareMeters() float64 {
	return math.Abs(geo.Area(g.Polygon()))
}

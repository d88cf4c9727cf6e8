package domain

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Axis-aligned rectangle between two corners.
// BottomLeft is expected to be <= TopRight on both axes; this is not enforced.
type Surface struct {
	BottomLeft Coordinates
	TopRight   Coordinates
}

func NewSurface(bottomLeft, topRight Coordinates) Surface {
	return Surface{BottomLeft: bottomLeft, TopRight: topRight}
}

// Contains reports membership in the half-open box [BottomLeft, TopRight)
// on both axes. Points on the top or right edge are outside.
func (s Surface) Contains(c Coordinates) bool {
	return s.BottomLeft.Lat <= c.Lat && c.Lat < s.TopRight.Lat &&
		s.BottomLeft.Lon <= c.Lon && c.Lon < s.TopRight.Lon
}

// ContainsSurface reports whether other lies fully inside s, edges included.
func (s Surface) ContainsSurface(other Surface) bool {
	return s.BottomLeft.Lat <= other.BottomLeft.Lat &&
		s.BottomLeft.Lon <= other.BottomLeft.Lon &&
		s.TopRight.Lat >= other.TopRight.Lat &&
		s.TopRight.Lon >= other.TopRight.Lon
}

// Intersect returns the overlap of s and other. The second result is false
// when the overlap has no area.
func (s Surface) Intersect(other Surface) (Surface, bool) {
	out := Surface{
		BottomLeft: Coordinates{
			Lat: math.Max(s.BottomLeft.Lat, other.BottomLeft.Lat),
			Lon: math.Max(s.BottomLeft.Lon, other.BottomLeft.Lon),
		},
		TopRight: Coordinates{
			Lat: math.Min(s.TopRight.Lat, other.TopRight.Lat),
			Lon: math.Min(s.TopRight.Lon, other.TopRight.Lon),
		},
	}
	if out.BottomLeft.Lat >= out.TopRight.Lat || out.BottomLeft.Lon >= out.TopRight.Lon {
		return Surface{}, false
	}
	return out, true
}

// Height in degrees of latitude.
func (s Surface) Height() float64 { return s.TopRight.Lat - s.BottomLeft.Lat }

// Width in degrees of longitude.
func (s Surface) Width() float64 { return s.TopRight.Lon - s.BottomLeft.Lon }

func (s Surface) Center() Coordinates {
	return Coordinates{
		Lat: s.BottomLeft.Lat + s.Height()/2,
		Lon: s.BottomLeft.Lon + s.Width()/2,
	}
}

func (s Surface) Bound() orb.Bound {
	return orb.Bound{Min: s.BottomLeft.Point(), Max: s.TopRight.Point()}
}

func (s Surface) String() string {
	return fmt.Sprintf("Surface(bottom_left=%s, top_right=%s)", s.BottomLeft, s.TopRight)
}

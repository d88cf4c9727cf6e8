package distance

import (
	"context"
	"math"

	"github.com/tidwall/geodesic"

	"geo-grid/internal/domain"
	"geo-grid/internal/platform/obs"
	"geo-grid/internal/ports"
)

// Geodesic returns the shortest distance in meters between a and b on the
// WGS84 ellipsoid, using Karney's algorithm. It is symmetric and zero for
// coincident points.
func Geodesic(a, b domain.Coordinates) float64 {
	var s12 float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &s12, nil, nil)
	return s12
}

// Bearing returns the initial azimuth from a to b in degrees, clockwise from
// north, normalized to [0, 360).
func Bearing(a, b domain.Coordinates) float64 {
	var azi1 float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, nil, &azi1, nil)
	return normalizeDegrees(azi1)
}

func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// GeodesicDistanceProvider implements DistanceMatrixProvider on the WGS84
// ellipsoid. It holds no state and is safe for concurrent use.
type GeodesicDistanceProvider struct {
	ellipsoid *geodesic.Ellipsoid
}

func NewGeodesicDistanceProvider() *GeodesicDistanceProvider {
	return &GeodesicDistanceProvider{ellipsoid: geodesic.WGS84}
}

func (p *GeodesicDistanceProvider) GetDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.DistanceResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.DistanceResult{}, err
	}
	return p.inverse(origin, destination), nil
}

// Compute distances from a single origin to many destinations.
func (p *GeodesicDistanceProvider) GetDistances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ []ports.DistanceResult, err error) {
	defer obs.Time(ctx, "geodesic.GetDistances")(&err)

	out := make([]ports.DistanceResult, 0, len(destinations))
	for _, d := range destinations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, p.inverse(origin, d))
	}

	return out, nil
}

func (p *GeodesicDistanceProvider) inverse(a, b domain.Coordinates) ports.DistanceResult {
	var s12, azi1 float64
	p.ellipsoid.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &s12, &azi1, nil)
	return ports.DistanceResult{
		DistanceMeters: s12,
		BearingDegrees: normalizeDegrees(azi1),
	}
}

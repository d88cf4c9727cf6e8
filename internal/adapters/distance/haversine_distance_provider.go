package distance

import (
	"context"

	"github.com/paulmach/orb/geo"

	"geo-grid/internal/domain"
	"geo-grid/internal/ports"
)

// HaversineDistanceProvider measures great-circle distance on a sphere of
// radius orb.EarthRadius. It is off by up to ~0.5% against the ellipsoid and
// exists for comparison output.
type HaversineDistanceProvider struct{}

func NewHaversineDistanceProvider() *HaversineDistanceProvider {
	return &HaversineDistanceProvider{}
}

func (HaversineDistanceProvider) GetDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.DistanceResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.DistanceResult{}, err
	}

	return ports.DistanceResult{
		DistanceMeters: geo.DistanceHaversine(origin.Point(), destination.Point()),
		BearingDegrees: normalizeDegrees(geo.Bearing(origin.Point(), destination.Point())),
	}, nil
}

package services

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"

	"geo-grid/internal/domain"
	"geo-grid/internal/platform/obs"
	"geo-grid/internal/ports"
)

// Lower bounds on the length of one degree on WGS84, rounded down so the
// search box always encloses the radius.
const (
	minMetersPerDegreeLat = 110_000.0
	minMetersPerDegreeLon = 111_000.0
)

// A grid cell together with the distance from the query center to the
// cell's center.
type NearbyCell struct {
	Cell           domain.GridCell
	DistanceMeters float64
}

// CellsWithinRadius returns the cells whose centers lie within radiusMeters
// of center, nearest first. Ties are broken by hash so the order is stable.
//
// Candidates come from covering a bounding box around center, so the
// provider is only consulted for cells that can plausibly qualify.
func CellsWithinRadius(
	ctx context.Context,
	grid *GridSystem,
	center domain.Coordinates,
	radiusMeters float64,
	provider ports.DistanceProvider,
) (_ []NearbyCell, err error) {
	defer obs.Time(ctx, "grid.CellsWithinRadius")(&err)

	if grid == nil {
		return nil, fmt.Errorf("cells within radius: grid must be non-nil")
	}
	if !(radiusMeters >= 0) || math.IsInf(radiusMeters, 1) {
		return nil, fmt.Errorf("cells within radius: radius %v must be a non-negative finite number", radiusMeters)
	}
	if !grid.Surface().Contains(center) {
		return nil, fmt.Errorf("cells within radius: center %s: %w", center, ErrOutOfBounds)
	}

	box, ok := searchBox(center, radiusMeters).Intersect(grid.Surface())
	if !ok {
		return []NearbyCell{}, nil
	}

	candidates := make([]domain.GridCell, 0)
	for _, row := range grid.CellsForSurface(box) {
		for _, c := range row {
			// Coverage clips cells to the box; measure against the full footprint.
			full, ok := grid.CellAt(c.Origin().Lat, c.Origin().Lon)
			if !ok {
				continue
			}
			candidates = append(candidates, full)
		}
	}
	if len(candidates) == 0 {
		return []NearbyCell{}, nil
	}

	centers := make([]domain.Coordinates, 0, len(candidates))
	for _, c := range candidates {
		centers = append(centers, c.Center())
	}

	var results []ports.DistanceResult

	// Prefer a single origin->many lookup when supported.
	if mp, ok := provider.(ports.DistanceMatrixProvider); ok {
		results, err = mp.GetDistances(ctx, center, centers)
		if err != nil {
			return nil, fmt.Errorf("cells within radius: get distances from %s: %w", center, err)
		}
		if len(results) != len(centers) {
			return nil, fmt.Errorf("cells within radius: got %d distances for %d cells", len(results), len(centers))
		}
	} else {
		results = make([]ports.DistanceResult, 0, len(centers))
		for _, c := range centers {
			r, e := provider.GetDistance(ctx, center, c)
			if e != nil {
				return nil, fmt.Errorf("cells within radius: get distance from %s to %s: %w", center, c, e)
			}
			results = append(results, r)
		}
	}

	out := make([]NearbyCell, 0, len(candidates))
	for i, c := range candidates {
		if results[i].DistanceMeters <= radiusMeters {
			out = append(out, NearbyCell{Cell: c, DistanceMeters: results[i].DistanceMeters})
		}
	}

	slices.SortFunc(out, func(a, b NearbyCell) int {
		if c := cmp.Compare(a.DistanceMeters, b.DistanceMeters); c != 0 {
			return c
		}
		return cmp.Compare(a.Cell.HashID, b.Cell.HashID)
	})

	return out, nil
}

// searchBox returns a surface that encloses every point within radiusMeters
// of center.
func searchBox(center domain.Coordinates, radiusMeters float64) domain.Surface {
	dLat := radiusMeters / minMetersPerDegreeLat
	maxLat := math.Min(math.Abs(center.Lat)+dLat, 89.9)
	dLon := math.Min(radiusMeters/(minMetersPerDegreeLon*math.Cos(maxLat*math.Pi/180)), 180)

	return domain.NewSurface(
		domain.NewCoordinates(center.Lat-dLat, center.Lon-dLon),
		domain.NewCoordinates(center.Lat+dLat, center.Lon+dLon),
	)
}

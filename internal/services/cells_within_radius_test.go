package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geo-grid/internal/adapters/distance"
	"geo-grid/internal/domain"
	"geo-grid/internal/ports"
)

// singleDistanceProvider hides the matrix extension of the geodesic provider.
type singleDistanceProvider struct {
	inner *distance.GeodesicDistanceProvider
}

func (p singleDistanceProvider) GetDistance(ctx context.Context, a, b domain.Coordinates) (ports.DistanceResult, error) {
	return p.inner.GetDistance(ctx, a, b)
}

func TestCellsWithinRadius(t *testing.T) {
	g := hongKongGrid(t)
	home, ok := g.CellAt(22.283, 114.160)
	require.True(t, ok)
	center := home.Center()

	tests := []struct {
		name      string
		radius    float64
		wantCount int
	}{
		{name: "only the home cell", radius: 60, wantCount: 1},
		{name: "home plus edge neighbours", radius: 120, wantCount: 5},
		{name: "home plus all eight neighbours", radius: 160, wantCount: 9},
		{name: "zero radius", radius: 0, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CellsWithinRadius(context.Background(), g, center, tt.radius, distance.NewGeodesicDistanceProvider())
			require.NoError(t, err)
			require.Len(t, got, tt.wantCount)

			for i, n := range got {
				assert.LessOrEqual(t, n.DistanceMeters, tt.radius)
				if i > 0 {
					assert.GreaterOrEqual(t, n.DistanceMeters, got[i-1].DistanceMeters, "results are ordered nearest first")
				}
			}
			if tt.wantCount > 0 {
				assert.Equal(t, home.HashID, got[0].Cell.HashID)
				assert.InDelta(t, 0, got[0].DistanceMeters, 1e-6)
			}
		})
	}
}

func TestCellsWithinRadiusUsesFullFootprints(t *testing.T) {
	g := hongKongGrid(t)
	home, ok := g.CellAt(22.283, 114.160)
	require.True(t, ok)

	got, err := CellsWithinRadius(context.Background(), g, home.Center(), 160, distance.NewGeodesicDistanceProvider())
	require.NoError(t, err)

	for _, n := range got {
		full, ok := g.CellAt(n.Cell.Origin().Lat, n.Cell.Origin().Lon)
		require.True(t, ok)
		assert.Equal(t, full, n.Cell)
	}
}

func TestCellsWithinRadiusFallsBackToSingleLookups(t *testing.T) {
	g := hongKongGrid(t)
	center := domain.NewCoordinates(22.2835, 114.1605)

	matrix, err := CellsWithinRadius(context.Background(), g, center, 200, distance.NewGeodesicDistanceProvider())
	require.NoError(t, err)

	single, err := CellsWithinRadius(context.Background(), g, center, 200, singleDistanceProvider{inner: distance.NewGeodesicDistanceProvider()})
	require.NoError(t, err)

	assert.Equal(t, matrix, single)
}

func TestCellsWithinRadiusErrors(t *testing.T) {
	g := hongKongGrid(t)
	ctx := context.Background()
	geodesic := distance.NewGeodesicDistanceProvider()

	_, err := CellsWithinRadius(ctx, g, domain.NewCoordinates(0, 0), 100, geodesic)
	assert.True(t, errors.Is(err, ErrOutOfBounds), "got %v", err)

	_, err = CellsWithinRadius(ctx, g, domain.NewCoordinates(22.3, 114.0), -1, geodesic)
	assert.Error(t, err)

	_, err = CellsWithinRadius(ctx, nil, domain.NewCoordinates(22.3, 114.0), 100, geodesic)
	assert.Error(t, err)

	_, err = CellsWithinRadius(ctx, g, domain.NewCoordinates(22.3, 114.0), 100, distance.NewMockDistanceProvider(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing pair")
}

func TestCellsWithinRadiusNearSurfaceEdge(t *testing.T) {
	g := hongKongGrid(t)
	corner, ok := g.CellAt(22.15, 113.80)
	require.True(t, ok)

	got, err := CellsWithinRadius(context.Background(), g, corner.Center(), 160, distance.NewGeodesicDistanceProvider())
	require.NoError(t, err)

	// Only the corner cell and its three in-surface neighbours exist.
	assert.Len(t, got, 4)
}

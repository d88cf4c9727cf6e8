package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridCellGeometry(t *testing.T) {
	cell := GridCell{
		Surface: NewSurface(NewCoordinates(22.283, 114.16), NewCoordinates(22.284, 114.161)),
		HashID:  "abc",
	}

	assert.Equal(t, NewCoordinates(22.283, 114.16), cell.Origin())

	c := cell.Center()
	assert.InDelta(t, 22.2835, c.Lat, 1e-12)
	assert.InDelta(t, 114.1605, c.Lon, 1e-12)

	poly := cell.Polygon()
	require.Len(t, poly, 1)
	ring := poly[0]
	require.GreaterOrEqual(t, len(ring), 5)
	assert.Equal(t, ring[0], ring[len(ring)-1], "ring must be closed")

	// 0.001 deg squared near 22N is roughly 111m x 103m.
	area := cell.AreaSquareMeters()
	assert.InDelta(t, 11500, area, 1000)
}

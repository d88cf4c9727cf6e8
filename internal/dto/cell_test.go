package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geo-grid/internal/domain"
)

func testCell() domain.GridCell {
	return domain.GridCell{
		Surface: domain.NewSurface(domain.NewCoordinates(22.283, 114.16), domain.NewCoordinates(22.284, 114.161)),
		HashID:  "a40510a8cd8265597a5554f6416a77ee",
	}
}

func TestCellResponseJSON(t *testing.T) {
	b, err := json.Marshal(NewCellResponse(testCell()))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"hash_id": "a40510a8cd8265597a5554f6416a77ee",
		"bottom_left": {"lat": 22.283, "lon": 114.16},
		"top_right": {"lat": 22.284, "lon": 114.161}
	}`, string(b))
}

func TestNearbyCellResponseCarriesDistance(t *testing.T) {
	r := NewNearbyCellResponse(testCell(), 12.5)
	require.NotNil(t, r.DistanceMeters)
	assert.Equal(t, 12.5, *r.DistanceMeters)
}

func TestNewCoverResponse(t *testing.T) {
	r := NewCoverResponse([][]domain.GridCell{{testCell(), testCell()}, {testCell()}})
	assert.Equal(t, 2, r.Rows)
	assert.Equal(t, 2, r.Cols)
	assert.Len(t, r.Cells[1], 1)

	empty := NewCoverResponse(nil)
	assert.Equal(t, 0, empty.Rows)
	assert.NotNil(t, empty.Cells)
}

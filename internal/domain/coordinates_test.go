package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinatesValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      Coordinates
		wantErr bool
	}{
		{name: "hong kong", in: NewCoordinates(22.283, 114.16)},
		{name: "south west extreme", in: NewCoordinates(-90, -180)},
		{name: "north east extreme", in: NewCoordinates(90, 180)},
		{name: "latitude too large", in: NewCoordinates(90.0001, 0), wantErr: true},
		{name: "longitude too small", in: NewCoordinates(0, -180.5), wantErr: true},
		{name: "NaN latitude", in: NewCoordinates(math.NaN(), 0), wantErr: true},
		{name: "infinite longitude", in: NewCoordinates(0, math.Inf(1)), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidCoordinates)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCoordinatesOrdering(t *testing.T) {
	c := NewCoordinates(22.283, 114.16)

	assert.Equal(t, []float64{114.16, 22.283}, c.CoordsToList())

	p := c.Point()
	assert.Equal(t, 114.16, p.Lon())
	assert.Equal(t, 22.283, p.Lat())
}

func TestCoordinatesString(t *testing.T) {
	assert.Equal(t, "(22.283, 114.16)", NewCoordinates(22.283, 114.16).String())
}

package ports

import (
	"context"

	"geo-grid/internal/domain"
)

// Distance between two coordinates and the initial bearing from the first
// to the second.
type DistanceResult struct {
	DistanceMeters float64
	BearingDegrees float64
}

// Contract for measuring the distance between two coordinates.
type DistanceProvider interface {
	// Return the distance from origin to destination.
	GetDistance(ctx context.Context, origin, destination domain.Coordinates) (DistanceResult, error)
}

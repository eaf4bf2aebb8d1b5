package ports

import (
	"context"

	"hub-route-service/internal/domain"
)

// Contract for the external navigation oracle.
type LegProvider interface {
	// Return one real-world travel leg between two coordinate pairs.
	// A failed or malformed lookup is an error, never a zero leg.
	ComputeLeg(ctx context.Context, origin, destination domain.Coordinates) (domain.RouteLeg, error)
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// RouteLeg is one travel segment with raw oracle units. A zero value is the
// "already at center" leg.
type RouteLeg struct {
	DistanceMeters  int
	DurationSeconds int
}

// Add returns the component-wise sum of two legs.
func (l RouteLeg) Add(o RouteLeg) RouteLeg {
	return RouteLeg{
		DistanceMeters:  l.DistanceMeters + o.DistanceMeters,
		DurationSeconds: l.DurationSeconds + o.DurationSeconds,
	}
}

// ResolvedRoute is the aggregated, presentation-ready result of one route
// resolution. EstimatedArrivalAt is relative to the moment of computation.
type ResolvedRoute struct {
	DistanceKm         float64
	EstimatedArrivalAt time.Time
}

// HubRoute is the persisted inter-hub delivery route.
// Hub names are snapshots taken at the last successful resolution.
type HubRoute struct {
	RouteID      uuid.UUID
	StartHubID   uuid.UUID
	EndHubID     uuid.UUID
	StartHubName string
	EndHubName   string

	DistanceKm         float64
	EstimatedArrivalAt time.Time

	CreatedAt time.Time
	CreatedBy string
	UpdatedAt time.Time
	UpdatedBy string
	DeletedAt *time.Time
	DeletedBy *string
}

// Deleted reports whether the route has been soft-deleted.
func (r *HubRoute) Deleted() bool { return r.DeletedAt != nil }
